package utils

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestGetKeys(t *testing.T) {

	keys := GetKeys(map[string]int{
		"mph":  1,
		"kmh":  2,
		"km/h": 3,
	})

	AssertEqual(keys, []string{"km/h", "kmh", "mph"})
	AssertEqual(len(GetKeys(map[string]bool{})), 0)
}
