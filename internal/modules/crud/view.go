package crud

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ListView is the body of the crud page template.
type ListView struct {
	Title       string
	Description string
	ItemName    string
	Base        string
	Query       string
	Headers     []string
	ColSpan     int
	Rows        []RowView
	LoadError   string
	CanCreate   bool
	NewURL      string
	Scope       *ScopeView
	Dialog      *DialogView
	Confirm     *ConfirmView
}

type RowView struct {
	ID        string
	Cells     []CellView
	EditURL   string
	DeleteURL string
}

type CellView struct {
	Kind  string
	Text  string
	URL   string
	Color string
	On    bool
}

type ScopeView struct {
	Param    string
	Label    string
	Selected string
	Options  []Option
}

type DialogView struct {
	Title       string
	Description string
	Action      string
	Submit      string
	Error       string
	Multipart   bool
	CancelURL   string
	Inputs      []InputView
}

type InputView struct {
	Key         string
	Label       string
	Kind        string
	Required    bool
	Placeholder string
	Pattern     string
	InputMode   string
	Accept      string
	Suffix      string
	Value       string
	Checked     bool
	Options     []Option
}

type ConfirmView struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
}

// pageState is what the console URL carries besides the resource itself.
type pageState struct {
	scope string
	query string
}

// listURL builds a console URL under the resource, keeping the scope
// selection and adding extra parameters.
func listURL(res *Resource, suffix string, st pageState, extra url.Values) string {
	q := url.Values{}
	if res.Scope != nil && st.scope != "" {
		q.Set(res.Scope.Param, st.scope)
	}
	if st.query != "" {
		q.Set("q", st.query)
	}
	for k, v := range extra {
		q[k] = v
	}
	u := res.Path() + suffix
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func newListView(res *Resource, records []apiclient.Record, st pageState, opts map[string][]Option) *ListView {
	v := &ListView{
		Title:       res.Title,
		Description: res.Description,
		ItemName:    res.ItemName,
		Base:        res.Path(),
		Query:       st.query,
		ColSpan:     len(res.Columns) + 1,
		CanCreate:   res.Scope == nil || st.scope != "",
		NewURL:      listURL(res, "", st, url.Values{"dialog": {"new"}}),
	}
	for _, c := range res.Columns {
		v.Headers = append(v.Headers, c.Label)
	}
	if res.Scope != nil {
		v.Scope = &ScopeView{
			Param:    res.Scope.Param,
			Label:    res.Scope.Label,
			Selected: st.scope,
			Options:  opts[res.Scope.Field],
		}
	}
	for _, rec := range Filter(res, records, st.query) {
		id := rec.ID()
		row := RowView{
			ID:        id,
			EditURL:   listURL(res, "", st, url.Values{"edit": {id}}),
			DeleteURL: listURL(res, "", st, url.Values{"delete": {id}}),
		}
		for _, c := range res.Columns {
			row.Cells = append(row.Cells, cellFor(c, rec))
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

func cellFor(c Column, rec apiclient.Record) CellView {
	path := c.Key
	if c.ValueKey != "" {
		path += "." + c.ValueKey
	}
	raw := rec.Lookup(path)
	kind := c.Kind
	if kind == "" {
		kind = ColumnText
	}
	cell := CellView{Kind: string(kind)}

	switch kind {
	case ColumnFlag:
		cell.On = apiclient.Truthy(raw)
		if cell.On {
			cell.Text = c.FlagLabels[0]
		} else {
			cell.Text = c.FlagLabels[1]
		}
		return cell
	case ColumnImage:
		cell.URL = apiclient.Text(raw)
		cell.Text = apiclient.Text(rec["title"])
		return cell
	}

	text := apiclient.Text(raw)
	if c.Compose != nil {
		text = c.Compose(rec)
	}
	switch {
	case c.Compose != nil:
		if text == "" {
			text = c.Fallback
		}
	case text == "":
		text = c.Fallback
	case c.Format != nil:
		text = c.Format(raw)
	default:
		text += c.Suffix
	}
	cell.Text = text
	if kind == ColumnSwatch && hexColor.MatchString(apiclient.Text(raw)) {
		cell.Color = apiclient.Text(raw)
	}
	return cell
}

// newDialog builds the create (rec == nil) or edit form.
func newDialog(res *Resource, rec apiclient.Record, st pageState, opts map[string][]Option) *DialogView {
	editing := rec != nil
	d := &DialogView{
		Multipart: res.Multipart(),
		CancelURL: listURL(res, "", st, nil),
	}
	if editing {
		d.Title = "Edit " + res.ItemName
		d.Description = fmt.Sprintf("Update %s information", res.lowerItem())
		d.Submit = "Update"
		d.Action = listURL(res, "/"+url.PathEscape(rec.ID()), pageState{scope: st.scope}, nil)
	} else {
		d.Title = "Add New " + res.ItemName
		d.Description = fmt.Sprintf("Create a new %s", res.lowerItem())
		d.Submit = "Create"
		d.Action = listURL(res, "", pageState{scope: st.scope}, nil)
	}

	for _, f := range res.Fields {
		if f.CreateOnly && editing {
			continue
		}
		in := inputFor(f, !editing)
		in.Options = opts[f.Key]
		switch {
		case editing && f.Kind == Checkbox:
			in.Checked = apiclient.Truthy(rec[f.Key])
		case editing && f.Kind != FileInput:
			if v := apiclient.Text(rec[f.Key]); v != "" {
				in.Value = v
			}
		case !editing && res.Scope != nil && f.Key == res.Scope.Field:
			in.Value = st.scope
		}
		d.Inputs = append(d.Inputs, in)
	}
	return d
}

// inputFor returns the input with its blank-form default value.
func inputFor(f Field, creating bool) InputView {
	in := InputView{
		Key:         f.Key,
		Label:       f.Label,
		Kind:        string(f.Kind),
		Required:    f.Required || (creating && f.RequiredOnCreate),
		Placeholder: f.Placeholder,
		Pattern:     f.Pattern,
		InputMode:   f.InputMode,
		Accept:      f.Accept,
		Suffix:      f.Suffix,
	}
	switch f.Kind {
	case Number:
		in.Value = "0"
	case Color:
		in.Value = "#000000"
	}
	return in
}

// refill puts the submitted values back into a dialog after a failed save.
func refill(d *DialogView, sub Submission) {
	for i := range d.Inputs {
		in := &d.Inputs[i]
		switch in.Kind {
		case string(FileInput), string(Password):
		case string(Checkbox):
			in.Checked = sub.Checked(in.Key)
		default:
			in.Value = sub.Values.Get(in.Key)
		}
	}
}

func newConfirm(res *Resource, id string, st pageState) *ConfirmView {
	return &ConfirmView{
		Title:     "Delete " + res.ItemName,
		Message:   res.confirmMessage(),
		Action:    listURL(res, "/"+url.PathEscape(id)+"/delete", pageState{scope: st.scope}, nil),
		CancelURL: listURL(res, "", st, nil),
	}
}
