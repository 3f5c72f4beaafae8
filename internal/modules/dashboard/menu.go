package dashboard

import (
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
	"github.com/georgemunganga/autek-admin/internal/web"
)

const Path = "/dashboard"

// Menu lists the overview page followed by every resource in registry order.
func Menu(reg *crud.Registry) []web.MenuItem {
	items := []web.MenuItem{{Href: Path, Label: "Dashboard"}}
	for _, res := range reg.All() {
		items = append(items, web.MenuItem{Href: res.Path(), Label: res.Menu()})
	}
	return items
}
