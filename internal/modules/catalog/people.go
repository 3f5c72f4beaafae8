package catalog

import (
	"strings"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/apperr"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
)

const duplicateAdmin = "An admin with this email already exists"

func Admins() *crud.Resource {
	return &crud.Resource{
		Slug:        "admins",
		Endpoint:    "/admin",
		Title:       "Administrators",
		Description: "Manage system administrators",
		ItemName:    "Admin",
		MenuLabel:   "Admins",
		Fields: []crud.Field{
			{Key: "first_name", Label: "First Name", Kind: crud.Text, Required: true},
			{Key: "last_name", Label: "Last Name", Kind: crud.Text, Required: true},
			{Key: "phone", Label: "Phone", Kind: crud.Text, Required: true},
			{Key: "username", Label: "Username", Kind: crud.Text, OmitEmpty: true},
			{Key: "email", Label: "Email", Kind: crud.Text, Required: true, InputMode: "email",
				Pattern: `^[^@\s]+@[^@\s]+\.[^@\s]+$`},
			{Key: "password", Label: "Password", Kind: crud.Password, Required: true, CreateOnly: true},
			{Key: "confirm_password", Label: "Confirm Password", Kind: crud.Password, Required: true, CreateOnly: true},
			{Key: "image", Label: "Profile Image", Kind: crud.FileInput, Accept: "image/*"},
			{Key: "is_creator", Label: "Creator privileges", Kind: crud.Checkbox},
		},
		Columns: []crud.Column{
			{Key: "image_url", Label: "Avatar", Kind: crud.ColumnImage},
			{Label: "Name", Compose: fullName},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
			{Key: "username", Label: "Username", Fallback: "N/A"},
			{Key: "is_creator", Label: "Role", Kind: crud.ColumnFlag, FlagLabels: [2]string{"Creator", "Admin"}},
		},
		SearchKeys: []string{"first_name", "last_name", "email"},
		Validate:   validateAdmin,
		TranslateError: func(msg string) string {
			if strings.Contains(msg, "Unique constraint failed") {
				return duplicateAdmin
			}
			return msg
		},
	}
}

func validateAdmin(sub crud.Submission, creating bool) error {
	if creating && sub.Values.Get("password") != sub.Values.Get("confirm_password") {
		return apperr.InvalidErr("Passwords do not match")
	}
	return nil
}

func fullName(rec apiclient.Record) string {
	return strings.TrimSpace(apiclient.Text(rec["first_name"]) + " " + apiclient.Text(rec["last_name"]))
}
