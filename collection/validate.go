package collection

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ValidationError is returned for any input rejected before touching the
// collection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CarInput is the body accepted on creation. TopSpeed stays untyped because
// both numbers and strings are valid.
type CarInput struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	TopSpeed     any    `json:"top_speed"`
	Colour       string `json:"colour"`
}

// MissingFields lists, in a stable order, the required fields that are absent
// or empty.
func MissingFields(input *CarInput) []string {
	missing := []string{}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Manufacturer) == "" {
		missing = append(missing, "manufacturer")
	}
	if isBlank(input.TopSpeed) {
		missing = append(missing, "top_speed")
	}
	if strings.TrimSpace(input.Colour) == "" {
		missing = append(missing, "colour")
	}
	return missing
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	}
	return false
}

// NewCar validates input and returns the car to be inserted, without id.
func NewCar(input *CarInput) (*Car, error) {
	if missing := MissingFields(input); len(missing) > 0 {
		return nil, &ValidationError{
			Field:   missing[0],
			Message: "Missing required field(s): " + strings.Join(missing, ", "),
		}
	}

	topSpeed, err := ValidateTopSpeed(input.TopSpeed)
	if err != nil {
		return nil, err
	}

	return &Car{
		Name:         input.Name,
		Manufacturer: input.Manufacturer,
		TopSpeed:     topSpeed,
		Colour:       input.Colour,
	}, nil
}

// FindDuplicate returns the car with the same name and manufacturer, ignoring
// case, if any.
func (c Collection) FindDuplicate(name, manufacturer string) *Car {
	for _, car := range c {
		if strings.EqualFold(car.Name, name) && strings.EqualFold(car.Manufacturer, manufacturer) {
			return car
		}
	}
	return nil
}

// CarPatch is a partial update. An empty Value means the field was not sent,
// so an explicit null can be told apart and rejected. ID is decoded only to
// keep it out of Extra: the id of a car never changes.
type CarPatch struct {
	ID           jsontext.Value `json:"id,omitzero"`
	Name         jsontext.Value `json:"name,omitzero"`
	Manufacturer jsontext.Value `json:"manufacturer,omitzero"`
	TopSpeed     jsontext.Value `json:"top_speed,omitzero"`
	Colour       jsontext.Value `json:"colour,omitzero"`
	Extra        map[string]any `json:",unknown"`
}

// Merge applies patch over a copy of existing. Nothing is returned unless the
// whole patch is valid.
func Merge(existing *Car, patch *CarPatch) (*Car, error) {
	merged := existing.Clone()

	fields := []struct {
		name  string
		value jsontext.Value
		dst   *string
	}{
		{"name", patch.Name, &merged.Name},
		{"manufacturer", patch.Manufacturer, &merged.Manufacturer},
		{"colour", patch.Colour, &merged.Colour},
	}
	for _, f := range fields {
		if len(f.value) == 0 {
			continue
		}
		value, err := patchString(f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dst = value
	}

	if len(patch.TopSpeed) > 0 {
		var raw any
		if err := json.Unmarshal(patch.TopSpeed, &raw); err != nil {
			return nil, &ValidationError{Field: "top_speed", Message: "top_speed: " + err.Error()}
		}
		topSpeed, err := ValidateTopSpeed(raw)
		if err != nil {
			return nil, err
		}
		merged.TopSpeed = topSpeed
	}

	if len(patch.Extra) > 0 && merged.Extra == nil {
		merged.Extra = make(map[string]any, len(patch.Extra))
	}
	for k, v := range patch.Extra {
		merged.Extra[k] = v
	}

	return merged, nil
}

// patchString decodes a required text field of a patch. null and blank
// strings are rejected.
func patchString(field string, value jsontext.Value) (string, error) {
	if value.Kind() == 'n' {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not be empty", field),
		}
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be a string", field),
		}
	}
	if strings.TrimSpace(s) == "" {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not be empty", field),
		}
	}
	return s, nil
}
