package models

// Listing is a sellable unit of the propiedades and oficinas categories.
type Listing struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Location       string          `json:"location"`
	Type           string          `json:"type"`
	Image          string          `json:"image"`
	Badge          string          `json:"badge,omitempty"`
	Gallery        []string        `json:"gallery,omitempty"`
	Price          *Measure        `json:"price,omitempty"`
	Currency       string          `json:"currency,omitempty"`
	ShowPrice      *bool           `json:"showPrice,omitempty"`
	Area           string          `json:"area"`
	Features       []string        `json:"features"`
	ROI            string          `json:"roi,omitempty"`
	Units          *Measure        `json:"units,omitempty"`
	ApartmentTypes []ApartmentType `json:"apartment_types,omitempty"`
	PaymentPlan    *PaymentPlan    `json:"payment_plan,omitempty"`
	Delivery       string          `json:"delivery,omitempty"`
	Description    string          `json:"description"`
}

// PriceVisible reports whether the listing price may be shown. A missing
// showPrice flag means the price is public.
func (l Listing) PriceVisible() bool {
	return l.ShowPrice == nil || *l.ShowPrice
}

// ApartmentType describes one unit layout of a development.
type ApartmentType struct {
	Type     string   `json:"type"`
	Area     string   `json:"area"`
	Features []string `json:"features"`
}

// PaymentPlan holds the staged payment terms of a pre-construction listing.
type PaymentPlan struct {
	Reservation  string `json:"reservation"`
	Contract     string `json:"contract"`
	Construction string `json:"construction"`
	Delivery     string `json:"delivery"`
}

// PriceBasis tells whether a parcel price is quoted per square meter or for
// the whole parcel.
type PriceBasis string

const (
	PerSquareMeter PriceBasis = "per_m2"
	WholeParcel    PriceBasis = "total"
)

// DefaultCurrency is used when neither the parcel nor its group names one.
const DefaultCurrency = "USD"

// Parcel is a unit of land ("solar") listed inside a LocationGroup.
type Parcel struct {
	AreaM2      Measure    `json:"area_m2"`
	FrenteM     *Measure   `json:"frente_m,omitempty"`
	FondoM      *Measure   `json:"fondo_m,omitempty"`
	Price       Measure    `json:"precio_usd_m2"`
	LegalStatus string     `json:"estatus_legal"`
	Currency    string     `json:"currency,omitempty"`
	PriceBasis  PriceBasis `json:"price_basis,omitempty"`
}

// Basis returns the declared price basis, per square meter when unset.
func (p Parcel) Basis() PriceBasis {
	if p.PriceBasis == WholeParcel {
		return WholeParcel
	}
	return PerSquareMeter
}

// Total computes the full parcel price. It is only defined when every operand
// it needs is numeric; any sentinel suppresses the computation.
func (p Parcel) Total() (float64, bool) {
	price, ok := p.Price.Float()
	if !ok {
		return 0, false
	}
	if p.Basis() == WholeParcel {
		return price, true
	}
	area, ok := p.AreaM2.Float()
	if !ok {
		return 0, false
	}
	return area * price, true
}

// UnitPrice returns the price per square meter.
func (p Parcel) UnitPrice() (float64, bool) {
	price, ok := p.Price.Float()
	if !ok {
		return 0, false
	}
	if p.Basis() == PerSquareMeter {
		return price, true
	}
	area, ok := p.AreaM2.Float()
	if !ok || area <= 0 {
		return 0, false
	}
	return price / area, true
}

// LocationGroup is the set of parcels located in one named area.
type LocationGroup struct {
	Ubicacion string   `json:"ubicacion"`
	Currency  string   `json:"currency,omitempty"`
	Solares   []Parcel `json:"solares"`
}

// CurrencyFor resolves the currency of a parcel in this group.
func (g LocationGroup) CurrencyFor(p Parcel) string {
	switch {
	case p.Currency != "":
		return p.Currency
	case g.Currency != "":
		return g.Currency
	default:
		return DefaultCurrency
	}
}
