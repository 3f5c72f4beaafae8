package apiclient

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one element of a collection returned by the remote API.
// Numbers are kept as json.Number so identifiers survive the round trip.
type Record map[string]any

// ID returns the record identifier as a string, or "" when absent.
func (r Record) ID() string { return Text(r["id"]) }

// Lookup resolves a dotted path such as "category.title" through nested objects.
func (r Record) Lookup(path string) any {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			cur = m[part]
		case Record:
			cur = m[part]
		default:
			return nil
		}
	}
	return cur
}

// Text renders a scalar JSON value for display. Objects, arrays and null render as "".
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Truthy reports whether a JSON value reads as a set flag.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case json.Number:
		return t.String() != "0"
	case float64:
		return t != 0
	}
	return false
}
