package views

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAOCruz/nayib/internal/filter"
	"github.com/JAOCruz/nayib/internal/models"
)

func num(v float64) *models.Measure { return models.NumberPtr(v) }

func boolean(v bool) *bool { return &v }

func sampleCatalog(parcels int) *models.Catalog {
	bellaVista := make([]models.Parcel, 0, parcels)
	for i := 0; i < parcels; i++ {
		status := "Deslindado"
		if i%3 == 0 {
			status = "Título Definitivo"
		}
		bellaVista = append(bellaVista, models.Parcel{
			AreaM2:      models.Number(float64(300 + i*10)),
			Price:       models.Number(100),
			LegalStatus: status,
		})
	}

	return &models.Catalog{
		Featured: []models.Listing{
			{ID: "f1", Title: "Penthouse", Price: num(450000), Currency: "USD"},
		},
		Categories: map[string]*models.Category{
			"propiedades": {
				Name: "Propiedades",
				Properties: []models.Listing{
					{ID: "p1", Title: "Villa", Price: num(1250000.5), Currency: "USD", Features: []string{"Piscina"}},
					{ID: "p2", Title: "Casa", Price: num(90000), ShowPrice: boolean(false)},
				},
			},
			"solares": {
				Name:        "Solares",
				Description: "Terrenos disponibles",
				Data: []models.LocationGroup{
					{Ubicacion: "Bella Vista", Solares: bellaVista},
					{Ubicacion: "Santiago", Solares: []models.Parcel{
						{AreaM2: models.Sentinel("CONSULTAR"), Price: models.Number(80), LegalStatus: "Deslindado"},
					}},
				},
			},
		},
	}
}

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		name      string
		listing   models.Listing
		label     string
		onRequest bool
	}{
		{
			name:    "Visible price with grouping",
			listing: models.Listing{Price: num(1234567.5), Currency: "USD"},
			label:   "$1,234,567.5 USD",
		},
		{
			name:    "Missing currency defaults to USD",
			listing: models.Listing{Price: num(95000)},
			label:   "$95,000 USD",
		},
		{
			name:      "Hidden price is never rendered",
			listing:   models.Listing{Price: num(95000), ShowPrice: boolean(false)},
			label:     PriceOnRequestLabel,
			onRequest: true,
		},
		{
			name:      "Text price",
			listing:   models.Listing{Price: &models.Measure{Text: "CONSULTAR"}, Currency: "USD"},
			label:     PriceUnknownLabel,
			onRequest: true,
		},
		{
			name:      "Missing price",
			listing:   models.Listing{},
			label:     "Precio: CONSULTAR",
			onRequest: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, onRequest := PriceLabel(tt.listing)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.onRequest, onRequest)
		})
	}
}

func TestRenderListings(t *testing.T) {
	view := RenderListings(sampleCatalog(1), models.CategoryPropiedades)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Propiedades", view.Name)
	assert.Equal(t, "property-detail.html?id=p1&type=propiedades", view.Items[0].DetailHref)
	assert.Equal(t, []string{"Piscina"}, view.Items[0].Features)
	assert.Empty(t, view.Items[1].Features)
	assert.NotContains(t, view.Items[1].PriceLabel, "90,000")
}

func TestRenderListings_MissingCategory(t *testing.T) {
	view := RenderListings(sampleCatalog(1), models.CategoryOficinas)
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)

	view = RenderListings(nil, models.CategoryPropiedades)
	assert.Empty(t, view.Items)
}

func TestRenderFeatured(t *testing.T) {
	items := RenderFeatured(sampleCatalog(1))
	require.Len(t, items, 1)
	assert.Equal(t, "property-detail.html?id=f1", items[0].DetailHref)
	assert.Empty(t, RenderFeatured(nil))
}

func TestNewParcelItem(t *testing.T) {
	tests := []struct {
		name     string
		parcel   models.Parcel
		area     string
		unit     string
		total    string
		frontage string
	}{
		{
			name:     "Numeric operands",
			parcel:   models.Parcel{AreaM2: models.Number(1500), Price: models.Number(120), FrenteM: num(20), FondoM: num(75)},
			area:     "1,500",
			unit:     "$120",
			total:    "$180,000",
			frontage: "20",
		},
		{
			name:     "Area on request",
			parcel:   models.Parcel{AreaM2: models.Sentinel("CONSULTAR"), Price: models.Number(120)},
			area:     "CONSULTAR",
			unit:     "$120",
			total:    "CONSULTAR",
			frontage: NotAvailable,
		},
		{
			name:     "Price on request",
			parcel:   models.Parcel{AreaM2: models.Number(500), Price: models.Sentinel("CONSULTAR"), FrenteM: num(0)},
			area:     "500",
			unit:     "CONSULTAR",
			total:    "CONSULTAR",
			frontage: NotAvailable,
		},
		{
			name:     "Text frontage",
			parcel:   models.Parcel{AreaM2: models.Number(600), Price: models.Number(75), FrenteM: &models.Measure{Text: "CONSULTAR"}, FondoM: &models.Measure{Text: " "}},
			area:     "600",
			unit:     "$75",
			total:    "$45,000",
			frontage: "CONSULTAR",
		},
		{
			name:     "Whole parcel price",
			parcel:   models.Parcel{AreaM2: models.Number(400), Price: models.Number(2000000), PriceBasis: models.WholeParcel},
			area:     "400",
			unit:     "$5,000",
			total:    "$2,000,000",
			frontage: NotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewParcelItem("Bella Vista", 2, "USD", tt.parcel)
			assert.Equal(t, tt.area, item.Area)
			assert.Equal(t, tt.unit, item.UnitPrice)
			assert.Equal(t, tt.total, item.Total)
			assert.Equal(t, tt.frontage, item.Frontage)
			assert.Equal(t, "loc___Bella%20Vista___idx___2", item.DetailID)
		})
	}
}

func TestBadgeClass(t *testing.T) {
	assert.Equal(t, "título_definitivo", BadgeClass("Título  Definitivo"))
	assert.Equal(t, "deslindado", BadgeClass("Deslindado"))
}

func TestSolaresPage_Render(t *testing.T) {
	page := NewSolaresPage(sampleCatalog(12), 10)
	view := page.Render()

	assert.Equal(t, "Solares", view.Name)
	assert.Equal(t, "Mostrando 13 solares de 13 total", view.Summary)
	assert.Equal(t, filter.Page{Number: 1, Size: 10, TotalCount: 13, TotalPages: 2, HasNext: true}, view.Page)
	require.Len(t, view.Groups, 1)
	assert.Len(t, view.Groups[0].Items, 10)
	assert.Equal(t, []string{"Deslindado", "Título Definitivo"}, view.LegalStatuses)

	page.Next()
	view = page.Render()
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "Bella Vista", view.Groups[0].Location)
	assert.Len(t, view.Groups[0].Items, 2)
	assert.Equal(t, 10, view.Groups[0].Items[0].Index)
	assert.Equal(t, "Santiago", view.Groups[1].Location)
	assert.False(t, view.Page.HasNext)

	page.Next()
	assert.Equal(t, 2, page.Render().Page.Number)
}

func TestSolaresPage_Navigation(t *testing.T) {
	page := NewSolaresPage(sampleCatalog(30), 10)

	page.Previous()
	assert.Equal(t, 1, page.Render().Page.Number)

	page.GoTo(3)
	assert.Equal(t, 3, page.Render().Page.Number)

	page.GoTo(50)
	assert.Equal(t, 4, page.Render().Page.Number)

	page.Previous()
	assert.Equal(t, 3, page.Render().Page.Number)
}

func TestSolaresPage_ClearRestoresEverything(t *testing.T) {
	page := NewSolaresPage(sampleCatalog(25), 10)
	full := page.Render()

	f := filter.Default()
	f.LegalStatus = "Título Definitivo"
	page.Apply(f)
	page.Next()
	filtered := page.Render()
	assert.Less(t, filtered.Page.TotalCount, full.Page.TotalCount)

	page.Clear()
	cleared := page.Render()
	assert.Equal(t, full, cleared)
	assert.Equal(t, 1, cleared.Page.Number)
}

func TestSolaresPage_PagesPartitionResults(t *testing.T) {
	catalog := sampleCatalog(23)
	f := filter.Default()
	f.AreaMin = 350

	expected := filter.Select(catalog.LocationGroups(), f)

	page := NewSolaresPage(catalog, 7)
	page.Apply(f)
	var ids []string
	for n := 1; n <= page.Render().Page.TotalPages; n++ {
		page.GoTo(n)
		for _, group := range page.Render().Groups {
			for _, item := range group.Items {
				ids = append(ids, item.DetailID)
			}
		}
	}

	require.Len(t, ids, len(expected))
	for i, entry := range expected {
		assert.Equal(t, models.EncodeParcelID(entry.Location, entry.Index), ids[i], fmt.Sprintf("position %d", i))
	}
}

func TestSolaresPage_MissingCategory(t *testing.T) {
	view := NewSolaresPage(&models.Catalog{}, 10).Render()
	assert.Empty(t, view.Groups)
	assert.Equal(t, "Mostrando 0 solares de 0 total", view.Summary)
	assert.Equal(t, 1, view.Page.Number)
}

func TestNewListingDetail(t *testing.T) {
	plan := &models.PaymentPlan{Reservation: "10%", Contract: "20%", Construction: "40%", Delivery: "30%"}
	listing := models.Listing{
		ID:          "p9",
		Title:       "Torre Azul",
		Price:       num(185000),
		Currency:    "USD",
		ShowPrice:   boolean(false),
		Units:       num(24),
		PaymentPlan: plan,
		Delivery:    "Diciembre 2027",
	}

	detail := NewListingDetail(listing, models.CategoryPropiedades)
	assert.Equal(t, PriceOnRequestLabel, detail.PriceLabel)
	assert.True(t, detail.PriceOnRequest)
	assert.Equal(t, "24", detail.Units)
	assert.Equal(t, plan, detail.PaymentPlan)
	assert.NotNil(t, detail.Features)
}
