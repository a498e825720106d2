// Package views turns catalog entries into the view-models the static pages
// render.
package views

import (
	"net/url"

	"github.com/JAOCruz/nayib/internal/models"
)

const (
	// PriceOnRequestLabel replaces the price of listings that hide it.
	PriceOnRequestLabel = "Solicitar Precio"
	// PriceUnknownLabel is shown when a visible price is missing.
	PriceUnknownLabel = "Precio: " + models.OnRequest

	detailPage = "property-detail.html"
)

// ListingItem is one card of a propiedades, oficinas or featured grid.
type ListingItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	Type           string   `json:"type"`
	Image          string   `json:"image"`
	Badge          string   `json:"badge,omitempty"`
	Area           string   `json:"area"`
	ROI            string   `json:"roi,omitempty"`
	Features       []string `json:"features"`
	PriceLabel     string   `json:"price_label"`
	PriceOnRequest bool     `json:"price_on_request"`
	DetailHref     string   `json:"detail_href"`
}

// ListingView is the rendered grid of a listing category.
type ListingView struct {
	Category    models.CategoryKey `json:"category"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []ListingItem      `json:"items"`
}

// DetailHref links a listing to its detail page. An empty key leaves the
// category to the detail page default.
func DetailHref(id string, key models.CategoryKey) string {
	values := url.Values{}
	values.Set("id", id)
	if key != "" {
		values.Set("type", string(key))
	}
	return detailPage + "?" + values.Encode()
}

// PriceLabel formats the price of a listing. A hidden price never leaks into
// the label.
func PriceLabel(l models.Listing) (string, bool) {
	if !l.PriceVisible() {
		return PriceOnRequestLabel, true
	}
	if l.Price == nil {
		return PriceUnknownLabel, true
	}
	price, ok := l.Price.Float()
	if !ok {
		return PriceUnknownLabel, true
	}

	currency := l.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return newFormatter().money(price) + " " + currency, false
}

// NewListingItem builds the card of a listing shown under key.
func NewListingItem(l models.Listing, key models.CategoryKey) ListingItem {
	label, onRequest := PriceLabel(l)
	features := l.Features
	if features == nil {
		features = []string{}
	}

	return ListingItem{
		ID:             l.ID,
		Title:          l.Title,
		Location:       l.Location,
		Type:           l.Type,
		Image:          l.Image,
		Badge:          l.Badge,
		Area:           l.Area,
		ROI:            l.ROI,
		Features:       features,
		PriceLabel:     label,
		PriceOnRequest: onRequest,
		DetailHref:     DetailHref(l.ID, key),
	}
}

// RenderListings renders a propiedades or oficinas category. A missing
// category renders as an empty view.
func RenderListings(catalog *models.Catalog, key models.CategoryKey) ListingView {
	view := ListingView{Category: key, Items: []ListingItem{}}

	category := catalog.Category(key)
	if category == nil {
		return view
	}

	view.Name = category.Name
	view.Description = category.Description
	for _, listing := range category.Properties {
		view.Items = append(view.Items, NewListingItem(listing, key))
	}
	return view
}

// RenderFeatured renders the landing page highlights.
func RenderFeatured(catalog *models.Catalog) []ListingItem {
	items := []ListingItem{}
	if catalog == nil {
		return items
	}
	for _, listing := range catalog.Featured {
		items = append(items, NewListingItem(listing, ""))
	}
	return items
}
