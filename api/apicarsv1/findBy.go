package apicarsv1

import (
	"context"
	"net/http"

	"github.com/fulldump/blurcars/collection"
	"github.com/fulldump/blurcars/service"
)

type finder func(s service.Servicer, ctx context.Context, values string, unit collection.Unit) (*service.FilterResult, error)

// findBy serves a multi-value filter: 200 with the cars when every value
// matched, 206 with cars and the unmatched values otherwise. No match at all
// is an error.
func findBy(param string, find finder) func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {

		unit, err := getUnit(r)
		if err != nil {
			return nil, err
		}

		result, err := find(GetServicer(ctx), ctx, r.URL.Query().Get(param), unit)
		if err != nil {
			return nil, err
		}

		if result.Outcome == collection.PartialMatch {
			w.WriteHeader(http.StatusPartialContent)
			return &partialResponse{
				Cars:      result.Cars,
				Message:   result.Message,
				Unmatched: result.Unmatched,
			}, nil
		}

		return result.Cars, nil
	}
}

var findByManufacturer = findBy("manufacturers", service.Servicer.FindByManufacturers)

var findByColour = findBy("colours", service.Servicer.FindByColours)

var findByIDs = findBy("ids", service.Servicer.FindByIDs)
