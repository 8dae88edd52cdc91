package api

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
	"github.com/fulldump/box/boxopenapi"

	"github.com/fulldump/blurcars/api/apicarsv1"
	"github.com/fulldump/blurcars/service"
)

// Build returns the whole HTTP API. Authentication is only enforced when
// apiKey is not empty.
func Build(s service.Servicer, version string, apiKey, apiSecret string) *box.B {

	b := box.NewBox()

	cars := apicarsv1.BuildV1Cars(b.R, s).
		WithInterceptors(
			box.SetResponseHeader("Content-Type", "application/json"),
			injectServicer(s),
		)
	if apiKey != "" {
		cars.WithInterceptors(Authenticate(apiKey, apiSecret))
	}

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}).WithName("release"))

	spec := boxopenapi.Spec(b)
	spec.Info.Title = "Blur Cars"
	spec.Info.Description = "List, filter, create, update and delete cars stored in a JSON document."
	spec.Info.Version = version
	b.Resource("/openapi.json").
		WithActions(box.Get(func(r *http.Request) any {

			spec.Servers = []boxopenapi.Server{
				{
					Url: "https://" + r.Host,
				},
				{
					Url: "http://" + r.Host,
				},
			}

			return spec
		}).WithName("openapi"))

	return b
}

func injectServicer(s service.Servicer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apicarsv1.SetServicer(ctx, s))
		}
	}
}
