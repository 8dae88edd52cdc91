package service

import (
	"context"
	"errors"

	"github.com/fulldump/blurcars/collection"
)

var (
	ErrCarNotFound      = errors.New("car not found")
	ErrCarAlreadyExists = errors.New("car already exists")
)

// NoMatchError is returned by filters when no car matches any requested
// value. It is a not-found error.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string {
	return e.Message
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrCarNotFound
}

// Store is the load/save boundary the service works against.
type Store interface {
	Load(ctx context.Context) (collection.Collection, error)
	Save(ctx context.Context, cars collection.Collection) error
}

type Servicer interface {
	ListCars(ctx context.Context, unit collection.Unit) ([]*collection.Car, error)
	RandomCar(ctx context.Context, unit collection.Unit) (*collection.Car, error)
	GetCar(ctx context.Context, id int, unit collection.Unit) (*collection.Car, error)
	FindByManufacturers(ctx context.Context, manufacturers string, unit collection.Unit) (*FilterResult, error)
	FindByColours(ctx context.Context, colours string, unit collection.Unit) (*FilterResult, error)
	FindByIDs(ctx context.Context, ids string, unit collection.Unit) (*FilterResult, error)
	CreateCar(ctx context.Context, input *collection.CarInput) (*collection.Car, error)
	UpdateCar(ctx context.Context, id int, patch *collection.CarPatch) (*collection.Car, error)
	DeleteCar(ctx context.Context, id int) error
}
