package collection

import (
	"github.com/go-json-experiment/json"
)

// Car is a record of the collection. Members not covered by the known fields
// are kept in Extra and written back after them.
type Car struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Manufacturer string         `json:"manufacturer"`
	TopSpeed     string         `json:"top_speed"`
	Colour       string         `json:"colour"`
	Extra        map[string]any `json:",unknown"`
}

type plainCar Car

// MarshalJSON lets encoding/json callers (box serializer, test asserts) see
// the same document the store writes.
func (c Car) MarshalJSON() ([]byte, error) {
	return json.Marshal(plainCar(c))
}

func (c *Car) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, (*plainCar)(c))
}

// Clone returns a shallow copy, Extra values are shared.
func (c *Car) Clone() *Car {
	clone := *c
	if c.Extra != nil {
		clone.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}
