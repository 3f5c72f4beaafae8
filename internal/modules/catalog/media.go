package catalog

import (
	"strconv"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
)

func Colors() *crud.Resource {
	return &crud.Resource{
		Slug:        "colors",
		Endpoint:    "/color",
		API:         MediaAPI,
		Title:       "Colors",
		Description: "Manage color options",
		ItemName:    "Color",
		Fields: []crud.Field{
			{Key: "title", Label: "Color Name", Kind: crud.Text, Required: true, Placeholder: "e.g., Red, Blue"},
			{Key: "hex", Label: "Color", Kind: crud.Color, Required: true, Pattern: `^#?[0-9a-fA-F]{6}$`},
		},
		Columns: []crud.Column{
			{Key: "title", Label: "Name"},
			{Key: "hex", Label: "Hex", Kind: crud.ColumnSwatch},
			{Key: "rgb", Label: "RGB"},
		},
		SearchKeys: []string{"title", "hex"},
		Derive: func(p crud.Payload) error {
			hex, _ := p["hex"].(string)
			rgb, ok := HexToRGB(hex)
			if !ok {
				return apperr.InvalidErr("Invalid hex color")
			}
			if hex[0] != '#' {
				p["hex"] = "#" + hex
			}
			p["rgb"] = rgb
			return nil
		},
	}
}

func ProductImages() *crud.Resource {
	return &crud.Resource{
		Slug:        "product-images",
		Endpoint:    "/product-image",
		API:         MediaAPI,
		Title:       "Product Images",
		Description: "Manage product images and galleries",
		ItemName:    "Product Image",
		MenuLabel:   "Product Images",
		Fields: []crud.Field{
			{Key: "product_id", Label: "Product", Kind: crud.Select, Required: true, Placeholder: "Select a product",
				Related: &crud.Related{Endpoint: "/product"}},
			{Key: "image", Label: "Image", Kind: crud.FileInput, Accept: "image/*", RequiredOnCreate: true},
			{Key: "is_main", Label: "Set as main image", Kind: crud.Checkbox},
		},
		Columns: []crud.Column{
			{Key: "image_url", Label: "Image", Kind: crud.ColumnImage},
			{Label: "Product", Compose: productLabel},
			{Key: "is_main", Label: "Status", Kind: crud.ColumnFlag, FlagLabels: [2]string{"Main Image", "Gallery"}},
		},
		SearchKeys: []string{"product.title"},
		Messages: crud.Messages{
			Created:       "Product image uploaded successfully!",
			Updated:       "Product image updated successfully!",
			Deleted:       "Product image deleted successfully!",
			DeleteFailed:  "Failed to delete product image",
			ConfirmDelete: "Are you sure you want to delete this image?",
		},
		Scope:      &crud.Scope{Param: "productId", Field: "product_id", Label: "Product"},
		Validate:   validateProductImage,
	}
}

func validateProductImage(sub crud.Submission, creating bool) error {
	id, err := strconv.Atoi(sub.Get("product_id"))
	if err != nil || id < 1 {
		return apperr.InvalidErr("Please select a product")
	}
	if creating && !sub.HasFile("image") {
		return apperr.InvalidErr("Please select an image file")
	}
	return nil
}

// productLabel falls back to the bare id when the API did not embed the product.
func productLabel(rec apiclient.Record) string {
	if title := apiclient.Text(rec.Lookup("product.title")); title != "" {
		return title
	}
	return "Product ID: " + apiclient.Text(rec["product_id"])
}
