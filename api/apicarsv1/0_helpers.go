package apicarsv1

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/blurcars/collection"
)

type messageResponse struct {
	Message string `json:"message"`
}

type carResponse struct {
	Message string          `json:"message"`
	Car     *collection.Car `json:"car"`
}

type partialResponse struct {
	Cars      []*collection.Car `json:"cars"`
	Message   string            `json:"message"`
	Unmatched []string          `json:"unmatched"`
}

func getUnit(r *http.Request) (collection.Unit, error) {
	return collection.ParseUnit(r.URL.Query().Get("unit"))
}

func getCarID(ctx context.Context) (int, error) {
	raw := strings.TrimSpace(box.GetUrlParameter(ctx, "id"))
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &collection.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("invalid id '%s', must be an integer", raw),
		}
	}
	return id, nil
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		return &collection.ValidationError{
			Field:   "body",
			Message: "malformed JSON body: " + err.Error(),
		}
	}

	return nil
}
