package apicarsv1

import (
	"context"
)

func deleteCar(ctx context.Context) (*messageResponse, error) {

	id, err := getCarID(ctx)
	if err != nil {
		return nil, err
	}

	err = GetServicer(ctx).DeleteCar(ctx, id)
	if err != nil {
		return nil, err
	}

	return &messageResponse{Message: "Car deleted successfully"}, nil
}
