package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
)

func TestFilter(t *testing.T) {
	res := &Resource{Fields: []Field{
		{Key: "title", Kind: Text},
		{Key: "ram", Kind: Number},
		{Key: "active", Kind: Checkbox},
	}}
	records := []apiclient.Record{
		{"id": 1, "title": "Galaxy S24", "ram": 8},
		{"id": 2, "title": "iPhone", "ram": 6},
		{"id": 3, "title": "galaxy tab", "ram": 12, "active": true},
	}

	ids := func(rs []apiclient.Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID())
		}
		return out
	}

	assert.Equal(t, []string{"1", "3"}, ids(Filter(res, records, "GALAXY")))
	assert.Equal(t, []string{"3"}, ids(Filter(res, records, "12")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Filter(res, records, "  ")))
	assert.Empty(t, Filter(res, records, "true"))
}

func TestFilterSearchKeys(t *testing.T) {
	res := &Resource{SearchKeys: []string{"product.title"}}
	records := []apiclient.Record{
		{"id": 1, "product": map[string]any{"title": "Phone"}},
		{"id": 2, "product": map[string]any{"title": "Laptop"}},
		{"id": 3},
	}
	got := Filter(res, records, "pho")
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID())
}
