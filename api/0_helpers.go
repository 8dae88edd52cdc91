package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/blurcars/collection"
	"github.com/fulldump/blurcars/database"
	"github.com/fulldump/blurcars/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

type statuser interface {
	GetStatus() string
}

var (
	errOpening = errors.New("temporary unavailable: opening")
	errClosing = errors.New("temporary unavailable: closing")
)

func InterceptorUnavailable(db statuser) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, errOpening)
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, errClosing)
				return
			}
			next(ctx)
		}
	}
}

// errorStatus classifies err. It is the only place where domain errors are
// turned into HTTP statuses.
func errorStatus(ctx context.Context, err error) (int, string) {

	var validationErr *collection.ValidationError

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "user is not authenticated"
	case errors.Is(err, box.ErrResourceNotFound):
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case errors.Is(err, box.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.Is(err, errOpening), errors.Is(err, errClosing):
		return http.StatusServiceUnavailable, "service is not operating, retry later"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, database.ErrCorruptCollection):
		return http.StatusInternalServerError, "stored collection can not be read"
	case errors.Is(err, service.ErrCarAlreadyExists):
		return http.StatusBadRequest, "a car with the same name and manufacturer already exists"
	case errors.Is(err, service.ErrCarNotFound):
		return http.StatusNotFound, "no car matches the request"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := errorStatus(ctx, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
