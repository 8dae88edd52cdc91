package apicarsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/blurcars/collection"
)

func getCar(ctx context.Context, r *http.Request) (*collection.Car, error) {

	id, err := getCarID(ctx)
	if err != nil {
		return nil, err
	}

	unit, err := getUnit(r)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).GetCar(ctx, id, unit)
}
