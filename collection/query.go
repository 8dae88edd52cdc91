package collection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SierraSoftworks/connor"
)

type Outcome int

const (
	NoMatch Outcome = iota
	PartialMatch
	FullMatch
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case PartialMatch:
		return "partial-match"
	case FullMatch:
		return "full-match"
	}
	return "unknown"
}

// Result of a multi-value filter. Unmatched holds the requested tokens no car
// corresponds to, in request order.
type Result struct {
	Cars      []*Car
	Unmatched []string
	Outcome   Outcome
}

func classify(cars []*Car, unmatched []string) *Result {
	r := &Result{
		Cars:      cars,
		Unmatched: unmatched,
		Outcome:   FullMatch,
	}
	switch {
	case len(cars) == 0:
		r.Outcome = NoMatch
	case len(unmatched) > 0:
		r.Outcome = PartialMatch
	}
	return r
}

// ParseTokens splits a comma separated filter into trimmed, lower-cased,
// unique tokens. Empty tokens are dropped.
func ParseTokens(raw string) []string {
	tokens := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// ParseIDs splits a comma separated list of ids. Any token that is not an
// integer makes the whole list invalid.
func ParseIDs(raw string) ([]int, error) {
	ids := []int{}
	seen := map[int]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ValidationError{
				Field:   "ids",
				Message: fmt.Sprintf("invalid id '%s', ids must be integers", part),
			}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (c Collection) FilterByManufacturers(tokens []string) (*Result, error) {
	return c.filterByField("manufacturer", tokens, func(car *Car) string {
		return car.Manufacturer
	})
}

func (c Collection) FilterByColours(tokens []string) (*Result, error) {
	return c.filterByField("colour", tokens, func(car *Car) string {
		return car.Colour
	})
}

// filterByField keeps cars whose field, lower-cased, is one of tokens. A token
// is unmatched when no kept car carries it; since every car carrying a token
// is kept, this is the same as checking the whole collection.
func (c Collection) filterByField(field string, tokens []string, value func(*Car) string) (*Result, error) {

	in := make([]interface{}, 0, len(tokens))
	for _, token := range tokens {
		in = append(in, token)
	}
	conditions := map[string]interface{}{
		field: map[string]interface{}{"$in": in},
	}

	matched := []*Car{}
	present := map[string]bool{}
	for _, car := range c {
		v := strings.ToLower(value(car))
		match, err := connor.Match(conditions, map[string]interface{}{field: v})
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", field, err)
		}
		if !match {
			continue
		}
		matched = append(matched, car)
		present[v] = true
	}

	unmatched := []string{}
	for _, token := range tokens {
		if !present[token] {
			unmatched = append(unmatched, token)
		}
	}

	return classify(matched, unmatched), nil
}

func (c Collection) FilterByIDs(ids []int) *Result {

	requested := map[int]bool{}
	for _, id := range ids {
		requested[id] = true
	}

	matched := []*Car{}
	found := map[int]bool{}
	for _, car := range c {
		if requested[car.ID] {
			matched = append(matched, car)
			found[car.ID] = true
		}
	}

	missing := []string{}
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, strconv.Itoa(id))
		}
	}

	return classify(matched, missing)
}
