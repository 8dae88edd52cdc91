package collection

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fulldump/blurcars/utils"
)

const KmhPerMph = 1.60934

var (
	speedWithUnit = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*mph$`)
	bareSpeed     = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
	leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ValidateTopSpeed returns the canonical "<number> mph" form of raw. Numbers,
// "<number> mph" strings (any case, any spacing) and bare numeric strings are
// accepted. The number must be non negative and small enough to be shown in
// km/h.
func ValidateTopSpeed(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		m := speedWithUnit.FindStringSubmatch(s)
		if m == nil {
			m = bareSpeed.FindStringSubmatch(s)
		}
		if m == nil {
			return "", &ValidationError{
				Field:   "top_speed",
				Message: "top_speed must be a number followed by 'mph', e.g. '210 mph'",
			}
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return "", errTopSpeedTooLarge
		}
		if err := checkRange(f); err != nil {
			return "", err
		}
		return m[1] + " mph", nil
	case float64:
		return formatMph(v)
	case float32:
		return formatMph(float64(v))
	case int:
		return formatMph(float64(v))
	case int64:
		return formatMph(float64(v))
	}
	return "", &ValidationError{
		Field:   "top_speed",
		Message: "top_speed must be a string ending with 'mph' or a number",
	}
}

var errTopSpeedTooLarge = &ValidationError{
	Field:   "top_speed",
	Message: "top_speed is too large",
}

func checkRange(mph float64) error {
	if math.IsInf(mph*KmhPerMph, 0) {
		return errTopSpeedTooLarge
	}
	return nil
}

func formatMph(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", &ValidationError{
			Field:   "top_speed",
			Message: "top_speed must be a finite number",
		}
	}
	if v < 0 {
		return "", &ValidationError{
			Field:   "top_speed",
			Message: "top_speed must not be negative",
		}
	}
	if err := checkRange(v); err != nil {
		return "", err
	}
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " mph", nil
}

// ToKmh reformats a stored "<number> mph" value as "<int> km/h". Values
// without a usable leading number are returned untouched.
func ToKmh(topSpeed string) string {
	n := leadingNumber.FindString(strings.TrimSpace(topSpeed))
	if n == "" {
		return topSpeed
	}
	mph, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return topSpeed
	}
	kmh := math.Floor(mph*KmhPerMph + 0.5)
	if math.IsInf(kmh, 0) || math.IsNaN(kmh) {
		return topSpeed
	}
	return strconv.FormatFloat(kmh, 'f', 0, 64) + " km/h"
}

type Unit string

const (
	UnitMph Unit = "mph"
	UnitKmh Unit = "kmh"
)

var units = map[string]Unit{
	"mph":  UnitMph,
	"kmh":  UnitKmh,
	"km/h": UnitKmh,
}

// ParseUnit reads the `unit` query option. Empty means mph.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UnitMph, nil
	}
	unit, ok := units[s]
	if !ok {
		return "", &ValidationError{
			Field:   "unit",
			Message: fmt.Sprintf("bad unit '%s', must be [%s]", s, strings.Join(utils.GetKeys(units), "|")),
		}
	}
	return unit, nil
}

// Convert returns cars expressed in unit. Stored cars are never modified,
// converted entries are copies.
func Convert(cars []*Car, unit Unit) []*Car {
	if unit != UnitKmh {
		return cars
	}
	result := make([]*Car, 0, len(cars))
	for _, car := range cars {
		result = append(result, ConvertOne(car, unit))
	}
	return result
}

func ConvertOne(car *Car, unit Unit) *Car {
	if car == nil || unit != UnitKmh {
		return car
	}
	converted := *car
	converted.TopSpeed = ToKmh(car.TopSpeed)
	return &converted
}
