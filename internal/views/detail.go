package views

import "github.com/JAOCruz/nayib/internal/models"

// ListingDetail is the body of a property-detail page.
type ListingDetail struct {
	ID             string                 `json:"id"`
	Category       models.CategoryKey     `json:"category"`
	Title          string                 `json:"title"`
	Location       string                 `json:"location"`
	Type           string                 `json:"type"`
	Badge          string                 `json:"badge,omitempty"`
	Area           string                 `json:"area"`
	PriceLabel     string                 `json:"price_label"`
	PriceOnRequest bool                   `json:"price_on_request"`
	Features       []string               `json:"features"`
	ROI            string                 `json:"roi,omitempty"`
	Units          string                 `json:"units,omitempty"`
	ApartmentTypes []models.ApartmentType `json:"apartment_types,omitempty"`
	PaymentPlan    *models.PaymentPlan    `json:"payment_plan,omitempty"`
	Delivery       string                 `json:"delivery,omitempty"`
	Description    string                 `json:"description"`
}

func NewListingDetail(l models.Listing, key models.CategoryKey) ListingDetail {
	label, onRequest := PriceLabel(l)
	features := l.Features
	if features == nil {
		features = []string{}
	}

	return ListingDetail{
		ID:             l.ID,
		Category:       key,
		Title:          l.Title,
		Location:       l.Location,
		Type:           l.Type,
		Badge:          l.Badge,
		Area:           l.Area,
		PriceLabel:     label,
		PriceOnRequest: onRequest,
		Features:       features,
		ROI:            l.ROI,
		Units:          units(l.Units),
		ApartmentTypes: l.ApartmentTypes,
		PaymentPlan:    l.PaymentPlan,
		Delivery:       l.Delivery,
		Description:    l.Description,
	}
}

func units(m *models.Measure) string {
	if m == nil {
		return ""
	}
	return newFormatter().measure(*m)
}
