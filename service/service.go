package service

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/fulldump/blurcars/collection"
)

// Service runs every operation against a fresh Load and, for mutations, a
// full Save. Two concurrent mutations race and the last Save wins.
type Service struct {
	store Store
	intN  func(n int) int
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		intN:  rand.Intn,
	}
}

// FilterResult is a classified filter with the message to show when some
// requested values were not found.
type FilterResult struct {
	*collection.Result
	Message string
}

func (s *Service) ListCars(ctx context.Context, unit collection.Unit) ([]*collection.Car, error) {
	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Convert(cars, unit), nil
}

func (s *Service) RandomCar(ctx context.Context, unit collection.Unit) (*collection.Car, error) {
	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	car := cars.Random(s.intN)
	if car == nil {
		return nil, &NoMatchError{Message: "no cars available"}
	}
	return collection.ConvertOne(car, unit), nil
}

func (s *Service) GetCar(ctx context.Context, id int, unit collection.Unit) (*collection.Car, error) {
	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	car := cars.FindByID(id)
	if car == nil {
		return nil, ErrCarNotFound
	}
	return collection.ConvertOne(car, unit), nil
}

func (s *Service) FindByManufacturers(ctx context.Context, manufacturers string, unit collection.Unit) (*FilterResult, error) {

	tokens := collection.ParseTokens(manufacturers)
	if len(tokens) == 0 {
		return nil, &collection.ValidationError{
			Field:   "manufacturers",
			Message: "Please provide one or more manufacturers in the query",
		}
	}

	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := cars.FilterByManufacturers(tokens)
	if err != nil {
		return nil, err
	}

	return shape(result, unit,
		"No cars found for manufacturers: "+strings.Join(tokens, ", "),
		"Some manufacturers not found: ")
}

func (s *Service) FindByColours(ctx context.Context, colours string, unit collection.Unit) (*FilterResult, error) {

	tokens := collection.ParseTokens(colours)
	if len(tokens) == 0 {
		return nil, &collection.ValidationError{
			Field:   "colours",
			Message: "Please provide one or more colours in the query",
		}
	}

	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := cars.FilterByColours(tokens)
	if err != nil {
		return nil, err
	}

	return shape(result, unit,
		"No cars found in the colours: "+strings.Join(tokens, ", "),
		"No cars found in the colours: ")
}

func (s *Service) FindByIDs(ctx context.Context, ids string, unit collection.Unit) (*FilterResult, error) {

	requested, err := collection.ParseIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(requested) == 0 {
		return nil, &collection.ValidationError{
			Field:   "ids",
			Message: "Please provide one or more IDs in the query",
		}
	}

	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := cars.FilterByIDs(requested)

	return shape(result, unit,
		"No car found for ID(s): "+joinInts(requested),
		"No car found for ID(s): ")
}

func joinInts(ids []int) string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, strconv.Itoa(id))
	}
	return strings.Join(s, ", ")
}

func shape(result *collection.Result, unit collection.Unit, noMatch, partialPrefix string) (*FilterResult, error) {
	if result.Outcome == collection.NoMatch {
		return nil, &NoMatchError{Message: noMatch}
	}

	result.Cars = collection.Convert(result.Cars, unit)
	filtered := &FilterResult{Result: result}
	if result.Outcome == collection.PartialMatch {
		filtered.Message = partialPrefix + strings.Join(result.Unmatched, ", ")
	}
	return filtered, nil
}

func (s *Service) CreateCar(ctx context.Context, input *collection.CarInput) (*collection.Car, error) {

	car, err := collection.NewCar(input)
	if err != nil {
		return nil, err
	}

	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if cars.FindDuplicate(car.Name, car.Manufacturer) != nil {
		return nil, ErrCarAlreadyExists
	}

	cars.Insert(car)

	if err := s.store.Save(ctx, cars); err != nil {
		return nil, err
	}

	return car, nil
}

func (s *Service) UpdateCar(ctx context.Context, id int, patch *collection.CarPatch) (*collection.Car, error) {

	cars, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	existing := cars.FindByID(id)
	if existing == nil {
		return nil, ErrCarNotFound
	}

	merged, err := collection.Merge(existing, patch)
	if err != nil {
		return nil, err
	}
	cars.Replace(merged)

	if err := s.store.Save(ctx, cars); err != nil {
		return nil, err
	}

	return merged, nil
}

func (s *Service) DeleteCar(ctx context.Context, id int) error {

	cars, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	if !cars.RemoveByID(id) {
		return ErrCarNotFound
	}

	return s.store.Save(ctx, cars)
}
