package apicarsv1

import (
	"context"

	"github.com/fulldump/blurcars/service"
)

const ContextServicerKey = "3b1f6c2e-7d2a-11ef-9a61-5f0c2d8e4b17"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}
