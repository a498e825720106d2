package models

import "strings"

// CategoryKey names one of the catalog categories.
type CategoryKey string

const (
	CategoryPropiedades CategoryKey = "propiedades"
	CategorySolares     CategoryKey = "solares"
	CategoryOficinas    CategoryKey = "oficinas"
)

// ParseCategoryKey normalizes a raw key, defaulting to propiedades.
func ParseCategoryKey(raw string) CategoryKey {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return CategoryPropiedades
	}
	return CategoryKey(key)
}

// Catalog is the root document every page loads.
type Catalog struct {
	Featured   []Listing            `json:"featured"`
	Categories map[string]*Category `json:"categories"`
}

// Category holds either a list of listings (propiedades, oficinas) or a list
// of location groups (solares).
type Category struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	IsListFormat bool            `json:"isListFormat,omitempty"`
	Properties   []Listing       `json:"properties,omitempty"`
	Data         []LocationGroup `json:"data,omitempty"`
}

// Category returns the category stored under key, or nil. Safe on a nil
// catalog.
func (c *Catalog) Category(key CategoryKey) *Category {
	if c == nil || c.Categories == nil {
		return nil
	}
	return c.Categories[string(key)]
}

// Listings returns the listings of a category, nil when it is missing.
func (c *Catalog) Listings(key CategoryKey) []Listing {
	category := c.Category(key)
	if category == nil {
		return nil
	}
	return category.Properties
}

// LocationGroups returns the solares data, nil when it is missing.
func (c *Catalog) LocationGroups() []LocationGroup {
	category := c.Category(CategorySolares)
	if category == nil {
		return nil
	}
	return category.Data
}

// CountParcels returns the number of parcels across groups.
func CountParcels(groups []LocationGroup) int {
	total := 0
	for _, group := range groups {
		total += len(group.Solares)
	}
	return total
}
