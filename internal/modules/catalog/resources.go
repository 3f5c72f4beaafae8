// Package catalog declares the catalog resources administered by the console.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
)

// MediaAPI names the second API host, which serves colors and product images.
const MediaAPI = "media"

// Resources returns every resource in sidebar order.
func Resources() []*crud.Resource {
	return []*crud.Resource{
		Products(),
		Categories(),
		Admins(),
		Colors(),
		simple("brands", "/brand", "Brands", "Manage brands in the system", "Brand",
			crud.Field{Key: "title", Label: "Brand Name", Kind: crud.Text, Required: true, Placeholder: "Enter brand name"},
			crud.Field{Key: "description", Label: "Description", Kind: crud.Textarea, Required: true, Placeholder: "Enter brand description"},
		),
		sizeResource("ram", "/ram", "RAM", "Manage RAM options in the system", "RAM", "ram", "RAM Size",
			"Enter RAM size in GB (e.g., 4, 8, 16)"),
		withMenu(sizeResource("memory", "/memory", "Memory Options", "Manage storage memory options", "Memory", "memory",
			"Memory Size", "Enter memory size in GB (e.g., 256, 512)"), "Memory"),
		simple("screen-types", "/screen-type", "Screen Types", "Manage screen type options", "Screen Type",
			crud.Field{Key: "title", Label: "Screen Type", Kind: crud.Text, Required: true, Placeholder: "e.g., AMOLED, LCD, IPS"},
		),
		ScreenDiagonals(),
		simple("car-brands", "/car-brand", "Car Brands", "Manage car brand options", "Car Brand",
			crud.Field{Key: "title", Label: "Brand Name", Kind: crud.Text, Required: true, Placeholder: "e.g., Toyota, BMW, Mercedes"},
		),
		simple("navigation-systems", "/navigation-system", "Navigation Systems", "Manage navigation system options", "Navigation System",
			crud.Field{Key: "title", Label: "Navigation System", Kind: crud.Text, Required: true, Placeholder: "e.g., GPS, GLONASS, Beidou"},
			crud.Field{Key: "description", Label: "Description", Kind: crud.Textarea, Required: true, Placeholder: "System description..."},
		),
		ProductImages(),
	}
}

func Products() *crud.Resource {
	const pricePattern = `^\d+(\.\d{0,2})?$`
	optional := func(key, label, endpoint, labelKey, suffix string) crud.Field {
		return crud.Field{
			Key:         key,
			Label:       label,
			Kind:        crud.Select,
			Placeholder: "Select " + label,
			Related:     &crud.Related{Endpoint: endpoint, LabelKey: labelKey, LabelSuffix: suffix},
		}
	}
	return &crud.Resource{
		Slug:        "products",
		Endpoint:    "/product",
		Title:       "Products",
		Description: "Manage products",
		ItemName:    "Product",
		Fields: []crud.Field{
			{Key: "title", Label: "Product Name", Kind: crud.Text, Required: true, Placeholder: "Enter product name"},
			{Key: "description", Label: "Description", Kind: crud.Textarea, Required: true, Placeholder: "Enter product description"},
			{Key: "old_price", Label: "Old Price", Kind: crud.Text, Required: true, Placeholder: "e.g., 199.99", Pattern: pricePattern, InputMode: "decimal"},
			{Key: "price", Label: "Price", Kind: crud.Text, Required: true, Placeholder: "e.g., 149.99", Pattern: pricePattern, InputMode: "decimal"},
			{Key: "uzum_link", Label: "Uzum Link", Kind: crud.Text, Required: true, Placeholder: "Enter Uzum marketplace link"},
			{Key: "category_id", Label: "Category", Kind: crud.Select, Required: true, Placeholder: "Select category",
				Related: &crud.Related{Endpoint: "/category"}},
			optional("screen_diagonal_id", "Screen Diagonal", "/screen-diagonal", "screen_size", `"`),
			optional("brand_id", "Brand", "/brand", "title", ""),
			optional("color_id", "Color", "/color", "title", ""),
			optional("memory_id", "Memory", "/memory", "memory", " GB"),
			optional("car_brand_id", "Car Brand", "/car-brand", "title", ""),
			optional("navigation_system_id", "Navigation System", "/navigation-system", "title", ""),
			optional("ram_id", "RAM", "/ram", "ram", " GB"),
			optional("screen_type_id", "Screen Type", "/screen-type", "title", ""),
			{Key: "wifi", Label: "WiFi", Kind: crud.Checkbox},
			{Key: "bluetooth", Label: "Bluetooth", Kind: crud.Checkbox},
			{Key: "remote_control", Label: "Remote Control", Kind: crud.Checkbox},
		},
		Columns: []crud.Column{
			{Key: "title", Label: "Product Name"},
			{Key: "old_price", Label: "Old Price", Format: Price},
			{Key: "price", Label: "Price", Format: Price},
			{Key: "category", Label: "Category", ValueKey: "title"},
			{Key: "brand", Label: "Brand", ValueKey: "title"},
		},
	}
}

func Categories() *crud.Resource {
	return &crud.Resource{
		Slug:        "categories",
		Endpoint:    "/category",
		Title:       "Categories",
		Description: "Manage product categories",
		ItemName:    "Category",
		Fields: []crud.Field{
			{Key: "title", Label: "Title", Kind: crud.Text, Required: true},
			{Key: "description", Label: "Description", Kind: crud.Textarea, Required: true},
			{Key: "parent_category_id", Label: "Parent Category", Kind: crud.Select,
				Placeholder: "Select parent category (optional)",
				Related:     &crud.Related{Endpoint: "/category", ExcludeSelf: true}},
			{Key: "image", Label: "Category Image", Kind: crud.FileInput, Accept: "image/*"},
		},
		Columns: []crud.Column{
			{Key: "image_url", Label: "Image", Kind: crud.ColumnImage},
			{Key: "title", Label: "Title"},
			{Key: "description", Label: "Description"},
			{Key: "parent_category", Label: "Parent Category", ValueKey: "title", Fallback: "Root"},
		},
	}
}

func ScreenDiagonals() *crud.Resource {
	return &crud.Resource{
		Slug:        "screen-diagonal",
		Endpoint:    "/screen-diagonal",
		Title:       "Screen Diagonal",
		Description: "Manage screen diagonal sizes",
		ItemName:    "Screen Diagonal",
		Fields: []crud.Field{
			{Key: "screen_size", Label: "Screen Size", Kind: crud.Text, Required: true,
				Placeholder: "Enter screen size in inches (e.g., 6.1)", Suffix: `"`},
		},
		Columns: []crud.Column{{Key: "screen_size", Label: "Screen Size", Suffix: `"`}},
	}
}

// simple declares a resource whose columns mirror its fields.
func simple(slug, endpoint, title, description, item string, fields ...crud.Field) *crud.Resource {
	res := &crud.Resource{
		Slug:        slug,
		Endpoint:    endpoint,
		Title:       title,
		Description: description,
		ItemName:    item,
		Fields:      fields,
	}
	for _, f := range fields {
		res.Columns = append(res.Columns, crud.Column{Key: f.Key, Label: f.Label})
	}
	return res
}

// sizeResource declares a single numeric size measured in GB.
func sizeResource(slug, endpoint, title, description, item, key, label, placeholder string) *crud.Resource {
	return &crud.Resource{
		Slug:        slug,
		Endpoint:    endpoint,
		Title:       title,
		Description: description,
		ItemName:    item,
		Fields: []crud.Field{
			{Key: key, Label: label + " (GB)", Kind: crud.Number, Required: true, Placeholder: placeholder},
		},
		Columns: []crud.Column{{Key: key, Label: label, Suffix: " GB"}},
	}
}

func withMenu(res *crud.Resource, label string) *crud.Resource {
	res.MenuLabel = label
	return res
}

// Price renders a price value as dollars with two decimals. Values that are
// not numbers are shown as they are.
func Price(v any) string {
	s := apiclient.Text(v)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return "$" + d.StringFixed(2)
}
