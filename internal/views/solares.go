package views

import (
	"fmt"
	"sort"

	"github.com/JAOCruz/nayib/internal/filter"
	"github.com/JAOCruz/nayib/internal/models"
)

// ParcelItem is one row of a solares table.
type ParcelItem struct {
	DetailID    string `json:"detail_id"`
	Location    string `json:"location"`
	Index       int    `json:"index"`
	Area        string `json:"area"`
	Frontage    string `json:"frontage"`
	Depth       string `json:"depth"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
	LegalStatus string `json:"legal_status"`
	BadgeClass  string `json:"badge_class"`
}

// ParcelGroupView is one location block of the solares table.
type ParcelGroupView struct {
	Location string       `json:"location"`
	Items    []ParcelItem `json:"items"`
}

// SolaresView is the rendered state of a solares page.
type SolaresView struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Filter        filter.Filter     `json:"filter"`
	Groups        []ParcelGroupView `json:"groups"`
	Page          filter.Page       `json:"page"`
	Summary       string            `json:"summary"`
	LegalStatuses []string          `json:"legal_statuses"`
}

// NewParcelItem renders the index-th parcel of a location group. Totals are
// only computed from numeric operands, sentinels pass through as text.
func NewParcelItem(location string, index int, currency string, p models.Parcel) ParcelItem {
	f := newFormatter()

	unit := models.OnRequest
	if v, ok := p.UnitPrice(); ok {
		unit = f.money(v)
	} else if !p.Price.Numeric {
		unit = p.Price.String()
	}

	total := models.OnRequest
	if v, ok := p.Total(); ok {
		total = f.money(v)
	}

	return ParcelItem{
		DetailID:    models.EncodeParcelID(location, index),
		Location:    location,
		Index:       index,
		Area:        f.measure(p.AreaM2),
		Frontage:    f.optional(p.FrenteM),
		Depth:       f.optional(p.FondoM),
		UnitPrice:   unit,
		Total:       total,
		Currency:    currency,
		LegalStatus: p.LegalStatus,
		BadgeClass:  BadgeClass(p.LegalStatus),
	}
}

// SolaresPage holds the filter and page state of one solares page view.
// Build one per request with NewSolaresPage.
type SolaresPage struct {
	catalog  *models.Catalog
	filter   filter.Filter
	pageSize int
	number   int
}

func NewSolaresPage(catalog *models.Catalog, pageSize int) *SolaresPage {
	if pageSize <= 0 {
		pageSize = filter.DefaultPageSize
	}
	return &SolaresPage{
		catalog:  catalog,
		filter:   filter.Default(),
		pageSize: pageSize,
		number:   1,
	}
}

// Filter returns the active filter.
func (p *SolaresPage) Filter() filter.Filter {
	return p.filter
}

// Apply replaces the active filter and returns to the first page.
func (p *SolaresPage) Apply(f filter.Filter) {
	p.filter = f
	p.number = 1
}

// Clear restores the default filter and the first page.
func (p *SolaresPage) Clear() {
	p.Apply(filter.Default())
}

func (p *SolaresPage) Next() {
	if p.current().HasNext {
		p.number++
	}
}

func (p *SolaresPage) Previous() {
	if p.current().HasPrevious {
		p.number--
	}
}

// GoTo moves to page n, clamped to the available pages.
func (p *SolaresPage) GoTo(n int) {
	p.number = filter.NewPage(len(p.entries()), p.pageSize, n).Number
}

func (p *SolaresPage) entries() []filter.Entry {
	return filter.Select(p.catalog.LocationGroups(), p.filter)
}

func (p *SolaresPage) current() filter.Page {
	return filter.NewPage(len(p.entries()), p.pageSize, p.number)
}

// Render produces the view of the current page. A missing solares category
// renders as an empty page.
func (p *SolaresPage) Render() SolaresView {
	groups := p.catalog.LocationGroups()
	entries := filter.Select(groups, p.filter)
	window, page := filter.Paginate(entries, p.pageSize, p.number)
	p.number = page.Number

	view := SolaresView{
		Filter:        p.filter,
		Groups:        []ParcelGroupView{},
		Page:          page,
		Summary:       fmt.Sprintf("Mostrando %d solares de %d total", len(entries), models.CountParcels(groups)),
		LegalStatuses: legalStatuses(groups),
	}
	if category := p.catalog.Category(models.CategorySolares); category != nil {
		view.Name = category.Name
		view.Description = category.Description
	}

	for _, group := range filter.Regroup(window) {
		block := ParcelGroupView{Location: group.Location}
		for _, entry := range group.Entries {
			block.Items = append(block.Items, NewParcelItem(entry.Location, entry.Index, entry.Currency, entry.Parcel))
		}
		view.Groups = append(view.Groups, block)
	}
	return view
}

// legalStatuses lists the distinct statuses present, for the filter select.
func legalStatuses(groups []models.LocationGroup) []string {
	seen := make(map[string]bool)
	statuses := []string{}
	for _, group := range groups {
		for _, parcel := range group.Solares {
			if parcel.LegalStatus == "" || seen[parcel.LegalStatus] {
				continue
			}
			seen[parcel.LegalStatus] = true
			statuses = append(statuses, parcel.LegalStatus)
		}
	}
	sort.Strings(statuses)
	return statuses
}
