// Package crud is the configuration-driven list/form component: a Resource
// declaration is enough to list, search, create, edit and delete the records
// of one remote REST collection.
package crud

import (
	"fmt"
	"strings"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
)

// Kind is the input control rendered for a Field.
type Kind string

const (
	Text      Kind = "text"
	Number    Kind = "number"
	Textarea  Kind = "textarea"
	Select    Kind = "select"
	Checkbox  Kind = "checkbox"
	FileInput Kind = "file"
	Color     Kind = "color"
	Password  Kind = "password"
)

// Related names the collection that populates a select field's options.
type Related struct {
	Endpoint    string
	API         string // defaults to the owning resource's API
	ValueKey    string // defaults to "id"
	LabelKey    string // defaults to "title"; dotted paths allowed
	LabelSuffix string
	ExcludeSelf bool // drop the record being edited (self-referencing trees)
}

// Field describes one form input.
type Field struct {
	Key         string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	Suffix      string
	Pattern     string // anchored regular expression the value must match
	InputMode   string
	Accept      string // file inputs only
	Related     *Related

	// CreateOnly fields are neither shown nor sent when editing.
	CreateOnly bool
	// OmitEmpty drops blank text values from the payload.
	OmitEmpty bool
	// RequiredOnCreate makes a file input mandatory for new records only.
	RequiredOnCreate bool
}

type ColumnKind string

const (
	ColumnText   ColumnKind = "text"
	ColumnImage  ColumnKind = "image"
	ColumnSwatch ColumnKind = "swatch"
	ColumnFlag   ColumnKind = "flag"
)

// Column describes one table column.
type Column struct {
	Key      string
	Label    string
	ValueKey string // read Key.ValueKey from a nested object
	Suffix   string
	Fallback string // shown when the value is empty
	Kind     ColumnKind
	Format   func(v any) string
	// Compose renders the cell from the whole record, ignoring Key.
	Compose func(rec apiclient.Record) string
	// FlagLabels are the texts for a set and an unset ColumnFlag value.
	FlagLabels [2]string
}

// Scope restricts a resource to the children of one selected parent record.
// The list is fetched only once a parent is selected.
type Scope struct {
	Param string // query parameter sent to the API and kept in console URLs
	Field string // select field holding the parent id
	Label string
}

// Resource declares one administrable REST collection.
type Resource struct {
	Slug        string
	Endpoint    string
	API         string
	Title       string
	Description string
	ItemName    string
	MenuLabel   string // sidebar text, defaults to Title

	Fields     []Field
	Columns    []Column
	SearchKeys []string
	Scope      *Scope

	// Validate runs before the payload is built.
	Validate func(sub Submission, creating bool) error
	// Derive adds computed values to a valid payload.
	Derive func(p Payload) error
	// TranslateError rewrites remote validation messages for display.
	TranslateError func(msg string) string
	// Messages replaces the generated notification texts; empty fields keep
	// the generated wording.
	Messages Messages
}

// Messages holds the per-resource notification texts.
type Messages struct {
	Created       string
	Updated       string
	Deleted       string
	DeleteFailed  string
	ConfirmDelete string
}

// Payload is the record sent to the remote API.
type Payload map[string]any

// Path is the console URL of the resource list.
func (r *Resource) Path() string { return "/dashboard/" + r.Slug }

func (r *Resource) Menu() string {
	if r.MenuLabel != "" {
		return r.MenuLabel
	}
	return r.Title
}

// Multipart reports whether submissions carry files.
func (r *Resource) Multipart() bool {
	for _, f := range r.Fields {
		if f.Kind == FileInput {
			return true
		}
	}
	return false
}

// Searchable returns the record keys matched by the search box: the explicit
// SearchKeys, or every text, textarea and number field.
func (r *Resource) Searchable() []string {
	if len(r.SearchKeys) > 0 {
		return r.SearchKeys
	}
	var keys []string
	for _, f := range r.Fields {
		switch f.Kind {
		case Text, Textarea, Number:
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (r *Resource) Field(key string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func (r *Resource) lowerItem() string { return strings.ToLower(r.ItemName) }

func (r *Resource) savedMessage(updated bool) string {
	if updated {
		return orDefault(r.Messages.Updated, r.ItemName+" updated successfully!")
	}
	return orDefault(r.Messages.Created, r.ItemName+" created successfully!")
}

func (r *Resource) deletedMessage() string {
	return orDefault(r.Messages.Deleted, r.ItemName+" deleted successfully!")
}

func (r *Resource) deleteFailedMessage() string {
	return orDefault(r.Messages.DeleteFailed, "Failed to delete "+r.lowerItem())
}

func (r *Resource) confirmMessage() string {
	return orDefault(r.Messages.ConfirmDelete, "Are you sure you want to delete this "+r.lowerItem()+"?")
}

// Registry holds the declared resources in menu order.
type Registry struct {
	order  []*Resource
	bySlug map[string]*Resource
}

func NewRegistry(resources ...*Resource) (*Registry, error) {
	reg := &Registry{bySlug: make(map[string]*Resource, len(resources))}
	for _, res := range resources {
		if res.Slug == "" || res.Endpoint == "" {
			return nil, fmt.Errorf("resource %q: slug and endpoint are required", res.Title)
		}
		if _, dup := reg.bySlug[res.Slug]; dup {
			return nil, fmt.Errorf("resource %q declared twice", res.Slug)
		}
		if res.Scope != nil {
			if f, ok := res.Field(res.Scope.Field); !ok || f.Kind != Select {
				return nil, fmt.Errorf("resource %q: scope field %q must be a select field", res.Slug, res.Scope.Field)
			}
		}
		reg.order = append(reg.order, res)
		reg.bySlug[res.Slug] = res
	}
	return reg, nil
}

func (reg *Registry) Get(slug string) (*Resource, bool) {
	res, ok := reg.bySlug[slug]
	return res, ok
}

func (reg *Registry) All() []*Resource { return reg.order }

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

func findRecord(records []apiclient.Record, id string) (apiclient.Record, bool) {
	for _, rec := range records {
		if rec.ID() == id {
			return rec, true
		}
	}
	return nil, false
}
