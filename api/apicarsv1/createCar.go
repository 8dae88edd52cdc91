package apicarsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/blurcars/collection"
)

func createCar(ctx context.Context, w http.ResponseWriter, r *http.Request) (*carResponse, error) {

	input := &collection.CarInput{}
	err := decodeBody(r, input)
	if err != nil {
		return nil, err
	}

	car, err := GetServicer(ctx).CreateCar(ctx, input)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return &carResponse{
		Message: "Car added successfully",
		Car:     car,
	}, nil
}
