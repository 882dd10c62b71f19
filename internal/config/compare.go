package config

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// looseValues compares free-form maps (head attributes, Extra keys) by their JSON encoding.
// YAML decodes 3 as an int and JSON as a float64; both mean the same config.
var looseValues = cmp.Comparer(func(x, y map[string]any) bool {
	jx, errX := json.Marshal(x)
	jy, errY := json.Marshal(y)
	if errX != nil || errY != nil {
		return reflect.DeepEqual(x, y)
	}
	return bytes.Equal(jx, jy)
})

// Diff reports how b differs from a, or "" when both describe the same site config, even
// when they were read from different formats.
func Diff(a, b *SiteConfig) string {
	return cmp.Diff(a, b, looseValues)
}
