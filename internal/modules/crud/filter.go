package crud

import (
	"strings"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
)

// Filter keeps the records where any searchable value contains term,
// ignoring case. An empty term keeps everything.
func Filter(res *Resource, records []apiclient.Record, term string) []apiclient.Record {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	keys := res.Searchable()
	out := make([]apiclient.Record, 0, len(records))
	for _, rec := range records {
		for _, key := range keys {
			if strings.Contains(strings.ToLower(apiclient.Text(rec.Lookup(key))), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
