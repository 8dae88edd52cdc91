package collection

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"
	"github.com/go-json-experiment/json"
)

func TestMissingFields(t *testing.T) {

	AssertEqual(MissingFields(&CarInput{}), []string{"name", "manufacturer", "top_speed", "colour"})
	AssertEqual(MissingFields(&CarInput{Name: "A", TopSpeed: float64(0), Colour: "red"}), []string{"manufacturer", "top_speed"})
	AssertEqual(MissingFields(&CarInput{Name: "A", Manufacturer: "B", TopSpeed: "1 mph", Colour: "red"}), []string{})
}

func TestNewCar(t *testing.T) {

	car, err := NewCar(&CarInput{Name: "Model X", Manufacturer: "Acme", TopSpeed: float64(200), Colour: "red"})
	AssertNil(err)
	AssertEqual(car.TopSpeed, "200 mph")
	AssertEqual(car.ID, 0)

	_, err = NewCar(&CarInput{Name: "Model X", Manufacturer: "Acme", TopSpeed: "fast", Colour: "red"})
	var validationErr *ValidationError
	AssertTrue(errors.As(err, &validationErr))

	_, err = NewCar(&CarInput{Name: "Model X"})
	AssertEqual(err.Error(), "Missing required field(s): manufacturer, top_speed, colour")
}

func TestFindDuplicate(t *testing.T) {

	c := Collection{{ID: 1, Name: "model x", Manufacturer: "ACME"}}

	AssertNotNil(c.FindDuplicate("Model X", "Acme"))
	AssertNil(c.FindDuplicate("Model X", "Zoom"))
	AssertNil(c.FindDuplicate("Model Y", "Acme"))
}

func decodePatch(t *testing.T, body string) *CarPatch {
	t.Helper()
	patch := &CarPatch{}
	if err := json.Unmarshal([]byte(body), patch); err != nil {
		t.Fatalf("decode patch: %v", err)
	}
	return patch
}

func TestMerge_OnlyColour(t *testing.T) {

	existing := &Car{ID: 7, Name: "Model X", Manufacturer: "Acme", TopSpeed: "210 mph", Colour: "red"}

	merged, err := Merge(existing, decodePatch(t, `{"colour":"black"}`))
	AssertNil(err)
	AssertEqualJson(merged, Car{ID: 7, Name: "Model X", Manufacturer: "Acme", TopSpeed: "210 mph", Colour: "black"})
	AssertEqual(existing.Colour, "red")
}

func TestMerge_TopSpeed(t *testing.T) {

	existing := &Car{ID: 7, TopSpeed: "210 mph"}

	merged, err := Merge(existing, decodePatch(t, `{"top_speed":"220MPH"}`))
	AssertNil(err)
	AssertEqual(merged.TopSpeed, "220 mph")

	merged, err = Merge(existing, decodePatch(t, `{"top_speed":230}`))
	AssertNil(err)
	AssertEqual(merged.TopSpeed, "230 mph")

	_, err = Merge(existing, decodePatch(t, `{"top_speed":"fast"}`))
	AssertNotNil(err)

	_, err = Merge(existing, decodePatch(t, `{"top_speed":true}`))
	AssertNotNil(err)
}

func TestMerge_IgnoresIDAndKeepsExtra(t *testing.T) {

	existing := &Car{ID: 7, Name: "Model X", Extra: map[string]any{"doors": 2.0}}

	merged, err := Merge(existing, decodePatch(t, `{"id":99,"seats":5}`))
	AssertNil(err)
	AssertEqual(merged.ID, 7)
	AssertEqual(merged.Extra, map[string]any{"doors": 2.0, "seats": 5.0})
	AssertEqual(existing.Extra, map[string]any{"doors": 2.0})
}

func TestMerge_RejectsEmptyName(t *testing.T) {

	_, err := Merge(&Car{ID: 1, Name: "A"}, decodePatch(t, `{"name":"  "}`))
	AssertEqual(err.Error(), "name must not be empty")
}

func TestMerge_RejectsNull(t *testing.T) {

	existing := &Car{ID: 1, Name: "A", Manufacturer: "B", TopSpeed: "1 mph", Colour: "C"}

	for _, field := range []string{"name", "manufacturer", "colour"} {
		_, err := Merge(existing, decodePatch(t, `{"`+field+`":null}`))
		AssertEqual(err.Error(), field+" must not be empty")
	}

	_, err := Merge(existing, decodePatch(t, `{"top_speed":null}`))
	AssertNotNil(err)

	_, err = Merge(existing, decodePatch(t, `{"name":42}`))
	AssertEqual(err.Error(), "name must be a string")

	AssertEqual(existing.Name, "A")
}

func TestMerge_RejectsNegativeTopSpeed(t *testing.T) {

	_, err := Merge(&Car{ID: 1, TopSpeed: "210 mph"}, decodePatch(t, `{"top_speed":-5}`))
	AssertEqual(err.Error(), "top_speed must not be negative")
}
