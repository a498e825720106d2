// Package detail resolves the subject of a property-detail page.
package detail

import (
	"fmt"
	"strings"

	"github.com/JAOCruz/nayib/internal/models"
	"github.com/JAOCruz/nayib/internal/views"
)

// Kind discriminates the Result variants.
type Kind string

const (
	KindResolved Kind = "resolved"
	KindContact  Kind = "contact"
	KindNotFound Kind = "not_found"
)

// Reason explains a NotFound result.
type Reason string

const (
	ReasonMissingID          Reason = "missing-id"
	ReasonCatalogUnavailable Reason = "catalog-unavailable"
	ReasonNoMatch            Reason = "no-match"
)

const (
	// ListingsPage is where a not-found panel sends the visitor.
	ListingsPage = "propiedades.html"

	messageNotFound    = "No se encontró la propiedad solicitada."
	messageUnavailable = "No se pudo cargar la información de propiedades."
)

// Result is one of Resolved, ContactFallback or NotFound.
type Result interface {
	Kind() Kind
}

// Resolved carries a listing found in the catalog.
type Resolved struct {
	Category models.CategoryKey `json:"category"`
	Listing  models.Listing     `json:"listing"`
}

func (Resolved) Kind() Kind { return KindResolved }

// ContactFallback replaces the detail page with a prefilled inquiry form.
type ContactFallback struct {
	Prefill Prefill `json:"prefill"`
}

func (ContactFallback) Kind() Kind { return KindContact }

// NotFound is rendered as a panel linking back to the listings.
type NotFound struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

func (NotFound) Kind() Kind { return KindNotFound }

func (n NotFound) Error() string {
	return fmt.Sprintf("listing not found (%s)", n.Reason)
}

func notFound(reason Reason) NotFound {
	message := messageNotFound
	if reason == ReasonCatalogUnavailable {
		message = messageUnavailable
	}
	return NotFound{Reason: reason, Message: message, Link: ListingsPage}
}

// Prefill is the data a solar inquiry form starts with.
type Prefill struct {
	FormType   string            `json:"form_type"`
	SubjectID  string            `json:"subject_id"`
	Location   string            `json:"subject_location"`
	Heading    string            `json:"heading"`
	Message    string            `json:"message"`
	PriceLabel string            `json:"price_label,omitempty"`
	Parcel     *views.ParcelItem `json:"parcel,omitempty"`
}

func newPrefill(id, location string) Prefill {
	return Prefill{
		FormType:  models.FormSolarInquiry,
		SubjectID: id,
		Location:  location,
		Heading:   "Solicitar Información sobre Solar en " + location,
		Message:   "Estoy interesado en obtener más información sobre este solar en " + location,
	}
}

// Resolve finds the subject of a detail page. Listings are searched in their
// category and then among the featured ones; solares identifiers point at a
// parcel, which always resolves to a contact form.
func Resolve(catalog *models.Catalog, key models.CategoryKey, id string) Result {
	id = strings.TrimSpace(id)
	if id == "" {
		return notFound(ReasonMissingID)
	}
	if catalog == nil {
		return notFound(ReasonCatalogUnavailable)
	}

	if key == models.CategorySolares {
		return resolveParcel(catalog, id)
	}

	if key == models.CategoryPropiedades || key == models.CategoryOficinas {
		if listing, ok := findListing(catalog.Listings(key), id); ok {
			return Resolved{Category: key, Listing: listing}
		}
	}
	if listing, ok := findListing(catalog.Featured, id); ok {
		return Resolved{Category: key, Listing: listing}
	}
	return notFound(ReasonNoMatch)
}

func findListing(listings []models.Listing, id string) (models.Listing, bool) {
	for _, listing := range listings {
		if listing.ID == id {
			return listing, true
		}
	}
	return models.Listing{}, false
}

func resolveParcel(catalog *models.Catalog, id string) Result {
	ref, ok := ParseParcelID(id)
	if !ok {
		return notFound(ReasonNoMatch)
	}

	for _, group := range catalog.LocationGroups() {
		if !ref.Matches(group.Ubicacion) {
			continue
		}
		if ref.Index >= len(group.Solares) {
			return notFound(ReasonNoMatch)
		}

		parcel := group.Solares[ref.Index]
		item := views.NewParcelItem(group.Ubicacion, ref.Index, group.CurrencyFor(parcel), parcel)

		prefill := newPrefill(id, group.Ubicacion)
		prefill.Parcel = &item
		prefill.PriceLabel = ParcelPriceLabel(item)
		return ContactFallback{Prefill: prefill}
	}
	return notFound(ReasonNoMatch)
}

// ParcelPriceLabel is the headline price of a parcel inquiry.
func ParcelPriceLabel(item views.ParcelItem) string {
	if !strings.HasPrefix(item.UnitPrice, "$") {
		return views.PriceUnknownLabel
	}
	return fmt.Sprintf("%s %s/m²", item.UnitPrice, item.Currency)
}

// Fallback converts a failed resolution into what the page shows instead:
// solares get an inquiry form for the location named in the identifier,
// everything else a not-found panel.
func Fallback(key models.CategoryKey, id string, reason Reason) Result {
	if key == models.CategorySolares {
		return ContactFallback{Prefill: newPrefill(id, locationHint(strings.TrimSpace(id)))}
	}
	return notFound(reason)
}
