package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/fulldump/biff"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/blurcars/collection"
	"github.com/fulldump/blurcars/database"
)

const seed = `[
  {"id": 1, "name": "Model X", "manufacturer": "Acme", "top_speed": "210 mph", "colour": "red"},
  {"id": 2, "name": "Roadster", "manufacturer": "Zoom", "top_speed": "180 mph", "colour": "blue"}
]`

func newTestService(t *testing.T) (*Service, *database.Database) {
	t.Helper()
	db := database.NewDatabaseWithStorage(database.NewMemoryStorage([]byte(seed)))
	return NewService(db), db
}

func TestCreateCar(t *testing.T) {

	ctx := context.Background()
	s, db := newTestService(t)

	car, err := s.CreateCar(ctx, &collection.CarInput{
		Name:         "Beetle",
		Manufacturer: "VW",
		TopSpeed:     float64(200),
		Colour:       "yellow",
	})
	AssertNil(err)
	AssertEqual(car.ID, 3)
	AssertEqual(car.TopSpeed, "200 mph")

	cars, err := db.Load(ctx)
	AssertNil(err)
	AssertEqual(len(cars), 3)
	AssertEqual(cars.FindByID(3).Name, "Beetle")
}

func TestCreateCar_Duplicate(t *testing.T) {

	ctx := context.Background()
	s, db := newTestService(t)

	_, err := s.CreateCar(ctx, &collection.CarInput{
		Name:         "model x",
		Manufacturer: "ACME",
		TopSpeed:     "200 mph",
		Colour:       "red",
	})
	AssertTrue(errors.Is(err, ErrCarAlreadyExists))

	cars, _ := db.Load(ctx)
	AssertEqual(len(cars), 2)
}

func TestCreateCar_InvalidTopSpeedWritesNothing(t *testing.T) {

	ctx := context.Background()
	s, db := newTestService(t)

	_, err := s.CreateCar(ctx, &collection.CarInput{
		Name:         "Beetle",
		Manufacturer: "VW",
		TopSpeed:     "fast",
		Colour:       "yellow",
	})
	var validationErr *collection.ValidationError
	AssertTrue(errors.As(err, &validationErr))

	cars, _ := db.Load(ctx)
	AssertEqual(len(cars), 2)
}

func TestGetCar_ConversionDoesNotPersist(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)

	car, err := s.GetCar(ctx, 1, collection.UnitKmh)
	AssertNil(err)
	AssertEqual(car.TopSpeed, "338 km/h")

	car, err = s.GetCar(ctx, 1, collection.UnitMph)
	AssertNil(err)
	AssertEqual(car.TopSpeed, "210 mph")

	cars, err := s.ListCars(ctx, collection.UnitKmh)
	AssertNil(err)
	AssertEqual(cars[1].TopSpeed, "290 km/h")
}

func TestUpdateCar(t *testing.T) {

	ctx := context.Background()
	s, db := newTestService(t)

	colour := jsontext.Value(`"black"`)
	car, err := s.UpdateCar(ctx, 1, &collection.CarPatch{Colour: colour})
	AssertNil(err)
	AssertEqualJson(car, collection.Car{ID: 1, Name: "Model X", Manufacturer: "Acme", TopSpeed: "210 mph", Colour: "black"})

	cars, _ := db.Load(ctx)
	AssertEqual(cars.FindByID(1).Colour, "black")

	_, err = s.UpdateCar(ctx, 42, &collection.CarPatch{Colour: colour})
	AssertTrue(errors.Is(err, ErrCarNotFound))

	_, err = s.UpdateCar(ctx, 1, &collection.CarPatch{TopSpeed: jsontext.Value(`-5`)})
	var validationErr *collection.ValidationError
	AssertTrue(errors.As(err, &validationErr))
	cars, _ = db.Load(ctx)
	AssertEqual(cars.FindByID(1).TopSpeed, "210 mph")
}

func TestDeleteThenGet(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)

	AssertNil(s.DeleteCar(ctx, 2))

	_, err := s.GetCar(ctx, 2, collection.UnitMph)
	AssertTrue(errors.Is(err, ErrCarNotFound))

	AssertTrue(errors.Is(s.DeleteCar(ctx, 2), ErrCarNotFound))
}

func TestDeleteMax_ReusesID(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)

	AssertNil(s.DeleteCar(ctx, 2))
	car, err := s.CreateCar(ctx, &collection.CarInput{Name: "Golf", Manufacturer: "VW", TopSpeed: "120", Colour: "grey"})
	AssertNil(err)
	AssertEqual(car.ID, 2)
}

func TestFindByColours(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)

	result, err := s.FindByColours(ctx, "red,green", collection.UnitMph)
	AssertNil(err)
	AssertEqual(result.Outcome, collection.PartialMatch)
	AssertEqual(result.Message, "No cars found in the colours: green")
	AssertEqual(len(result.Cars), 1)

	_, err = s.FindByColours(ctx, "green", collection.UnitMph)
	AssertTrue(errors.Is(err, ErrCarNotFound))
	AssertEqual(err.Error(), "No cars found in the colours: green")

	result, err = s.FindByColours(ctx, "red,blue", collection.UnitMph)
	AssertNil(err)
	AssertEqual(result.Outcome, collection.FullMatch)
	AssertEqual(result.Message, "")

	_, err = s.FindByColours(ctx, " ", collection.UnitMph)
	var validationErr *collection.ValidationError
	AssertTrue(errors.As(err, &validationErr))
}

func TestFindByIDs(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)

	result, err := s.FindByIDs(ctx, "1,7", collection.UnitKmh)
	AssertNil(err)
	AssertEqual(result.Outcome, collection.PartialMatch)
	AssertEqual(result.Message, "No car found for ID(s): 7")
	AssertEqual(result.Cars[0].TopSpeed, "338 km/h")

	_, err = s.FindByIDs(ctx, "7,8", collection.UnitMph)
	AssertTrue(errors.Is(err, ErrCarNotFound))

	_, err = s.FindByIDs(ctx, "1,x", collection.UnitMph)
	AssertNotNil(err)
}

func TestRandomCar(t *testing.T) {

	ctx := context.Background()
	s, _ := newTestService(t)
	s.intN = func(n int) int { return 1 }

	car, err := s.RandomCar(ctx, collection.UnitMph)
	AssertNil(err)
	AssertEqual(car.ID, 2)

	empty := NewService(database.NewDatabaseWithStorage(database.NewMemoryStorage(nil)))
	_, err = empty.RandomCar(ctx, collection.UnitMph)
	AssertTrue(errors.Is(err, ErrCarNotFound))
}
