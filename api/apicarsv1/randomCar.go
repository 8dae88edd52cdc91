package apicarsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/blurcars/collection"
)

func randomCar(ctx context.Context, r *http.Request) (*collection.Car, error) {

	unit, err := getUnit(r)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).RandomCar(ctx, unit)
}
