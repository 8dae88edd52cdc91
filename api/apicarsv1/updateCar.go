package apicarsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/blurcars/collection"
)

// updateCar merges the body into the stored car. PUT and PATCH behave the
// same: fields not sent are kept.
func updateCar(ctx context.Context, r *http.Request) (*carResponse, error) {

	id, err := getCarID(ctx)
	if err != nil {
		return nil, err
	}

	patch := &collection.CarPatch{}
	err = decodeBody(r, patch)
	if err != nil {
		return nil, err
	}

	car, err := GetServicer(ctx).UpdateCar(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	return &carResponse{
		Message: "Car updated successfully",
		Car:     car,
	}, nil
}
