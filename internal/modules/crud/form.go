package crud

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
)

// Submission is a posted form: its values and any attached files keyed by field.
type Submission struct {
	Values url.Values
	Files  map[string]apiclient.File
}

func (s Submission) Get(key string) string { return strings.TrimSpace(s.Values.Get(key)) }

func (s Submission) Checked(key string) bool {
	v, ok := s.Values[key]
	if !ok || len(v) == 0 {
		return false
	}
	b, err := strconv.ParseBool(v[len(v)-1])
	return err != nil || b // "on" from a plain checkbox counts as set
}

func (s Submission) HasFile(key string) bool {
	_, ok := s.Files[key]
	return ok
}

// BuildPayload converts a submission into the record sent to the API.
// Number fields always become JSON numbers; select ids become integers
// when they look like one; checkboxes become booleans.
func BuildPayload(res *Resource, sub Submission, creating bool) (Payload, error) {
	p := Payload{}
	for _, f := range res.Fields {
		if f.CreateOnly && !creating {
			continue
		}
		raw := sub.Get(f.Key)
		switch f.Kind {
		case FileInput:
			if f.RequiredOnCreate && creating && !sub.HasFile(f.Key) {
				return nil, apperr.InvalidErr(fmt.Sprintf("%s is required", f.Label))
			}
		case Checkbox:
			p[f.Key] = sub.Checked(f.Key)
		case Number:
			n, err := parseNumber(raw)
			if err != nil {
				return nil, apperr.InvalidErr(fmt.Sprintf("%s must be a number", f.Label))
			}
			p[f.Key] = n
		case Select:
			if raw == "" {
				if f.Required {
					return nil, apperr.InvalidErr(fmt.Sprintf("%s is required", f.Label))
				}
				continue
			}
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				p[f.Key] = id
			} else {
				p[f.Key] = raw
			}
		default:
			if raw == "" {
				if f.Required {
					return nil, apperr.InvalidErr(fmt.Sprintf("%s is required", f.Label))
				}
				if f.OmitEmpty {
					continue
				}
			}
			if f.Pattern != "" && raw != "" {
				ok, err := regexp.MatchString(f.Pattern, raw)
				if err != nil {
					return nil, apperr.Wrap(fmt.Errorf("field %s pattern: %w", f.Key, err))
				}
				if !ok {
					return nil, apperr.InvalidErr(fmt.Sprintf("%s has an invalid format", f.Label))
				}
			}
			p[f.Key] = raw
		}
	}
	return p, nil
}

// parseNumber reads an integer or decimal; blank reads as 0.
func parseNumber(raw string) (any, error) {
	if raw == "" {
		return int64(0), nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return f, nil
}

// Encode picks the wire format: multipart when the resource takes files,
// JSON otherwise.
func Encode(res *Resource, p Payload, sub Submission) apiclient.Body {
	if !res.Multipart() {
		return apiclient.JSON(map[string]any(p))
	}
	fields := make(map[string]string, len(p))
	for k, v := range p {
		fields[k] = apiclient.Text(v)
	}
	var files []apiclient.File
	for _, f := range res.Fields {
		if file, ok := sub.Files[f.Key]; ok {
			files = append(files, file)
		}
	}
	return apiclient.Multipart(fields, files...)
}
