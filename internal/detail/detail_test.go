package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAOCruz/nayib/internal/models"
)

func sampleCatalog() *models.Catalog {
	parcels := make([]models.Parcel, 5)
	for i := range parcels {
		parcels[i] = models.Parcel{
			AreaM2:      models.Number(float64(100 * (i + 1))),
			Price:       models.Number(50),
			LegalStatus: "Deslindado",
		}
	}

	return &models.Catalog{
		Featured: []models.Listing{{ID: "feat-1", Title: "Torre"}},
		Categories: map[string]*models.Category{
			"propiedades": {Properties: []models.Listing{{ID: "prop-1", Title: "Villa"}}},
			"oficinas":    {Properties: []models.Listing{{ID: "ofi-1", Title: "Oficina"}}},
			"solares": {Data: []models.LocationGroup{
				{Ubicacion: "Bella Vista", Solares: parcels},
				{Ubicacion: "Bávaro Punta Cana", Currency: "DOP", Solares: []models.Parcel{
					{AreaM2: models.Sentinel("CONSULTAR"), Price: models.Sentinel("CONSULTAR"), LegalStatus: "Título"},
				}},
			}},
		},
	}
}

func TestResolve_Listings(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		name string
		key  models.CategoryKey
		id   string
		kind Kind
		want string
	}{
		{name: "Category match", key: models.CategoryPropiedades, id: "prop-1", kind: KindResolved, want: "Villa"},
		{name: "Oficinas match", key: models.CategoryOficinas, id: "ofi-1", kind: KindResolved, want: "Oficina"},
		{name: "Featured fallback", key: models.CategoryPropiedades, id: "feat-1", kind: KindResolved, want: "Torre"},
		{name: "Other category only sees featured", key: "proyectos", id: "feat-1", kind: KindResolved, want: "Torre"},
		{name: "Other category skips propiedades", key: "proyectos", id: "prop-1", kind: KindNotFound},
		{name: "Wrong category", key: models.CategoryOficinas, id: "prop-1", kind: KindNotFound},
		{name: "Missing id", key: models.CategoryPropiedades, id: "  ", kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Resolve(catalog, tt.key, tt.id)
			require.Equal(t, tt.kind, result.Kind())
			if resolved, ok := result.(Resolved); ok {
				assert.Equal(t, tt.want, resolved.Listing.Title)
			}
		})
	}
}

func TestResolve_CompositeParcelID(t *testing.T) {
	result := Resolve(sampleCatalog(), models.CategorySolares, "loc___Bella%20Vista___idx___2")

	contact, ok := result.(ContactFallback)
	require.True(t, ok)
	require.NotNil(t, contact.Prefill.Parcel)
	assert.Equal(t, 2, contact.Prefill.Parcel.Index)
	assert.Equal(t, "300", contact.Prefill.Parcel.Area)
	assert.Equal(t, "$15,000", contact.Prefill.Parcel.Total)
	assert.Equal(t, "$50 USD/m²", contact.Prefill.PriceLabel)
	assert.Equal(t, models.FormSolarInquiry, contact.Prefill.FormType)
	assert.Equal(t, "Bella Vista", contact.Prefill.Location)
}

func TestResolve_ParcelNotFound(t *testing.T) {
	ids := []string{
		"loc___Bella%20Vista___idx___99",
		"loc___Bella%20Vista___idx___5",
		"loc___Nowhere___idx___0",
		"loc___Bella%20Vista___idx___-1",
		"loc___Bella%20Vista",
		"bella-vista-abc",
		"bella-vista-7",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			result := Resolve(sampleCatalog(), models.CategorySolares, id)
			notFound, ok := result.(NotFound)
			require.True(t, ok)
			assert.Equal(t, ReasonNoMatch, notFound.Reason)
			assert.Equal(t, ListingsPage, notFound.Link)
		})
	}
}

func TestResolve_LegacyParcelID(t *testing.T) {
	result := Resolve(sampleCatalog(), models.CategorySolares, "bavaro-punta-cana-0")

	contact, ok := result.(ContactFallback)
	require.True(t, ok)
	assert.Equal(t, "Bávaro Punta Cana", contact.Prefill.Location)
	assert.Equal(t, "DOP", contact.Prefill.Parcel.Currency)
	assert.Equal(t, "CONSULTAR", contact.Prefill.Parcel.Total)
	assert.Equal(t, "Precio: CONSULTAR", contact.Prefill.PriceLabel)
}

func TestResolve_NilCatalog(t *testing.T) {
	result := Resolve(nil, models.CategoryPropiedades, "prop-1")
	notFound, ok := result.(NotFound)
	require.True(t, ok)
	assert.Equal(t, ReasonCatalogUnavailable, notFound.Reason)
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name     string
		key      models.CategoryKey
		id       string
		kind     Kind
		location string
	}{
		{name: "Token form", key: models.CategorySolares, id: "loc___Las%20Terrenas___idx___4", kind: KindContact, location: "Las Terrenas"},
		{name: "Legacy form", key: models.CategorySolares, id: "las-terrenas-4", kind: KindContact, location: "Las Terrenas"},
		{name: "Broken token", key: models.CategorySolares, id: "loc___Cap%20Cana___idx___x", kind: KindContact, location: "Cap Cana"},
		{name: "Listing category", key: models.CategoryPropiedades, id: "prop-9", kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Fallback(tt.key, tt.id, ReasonCatalogUnavailable)
			require.Equal(t, tt.kind, result.Kind())

			switch r := result.(type) {
			case ContactFallback:
				assert.Equal(t, tt.location, r.Prefill.Location)
				assert.Equal(t, tt.id, r.Prefill.SubjectID)
				assert.Equal(t, "Estoy interesado en obtener más información sobre este solar en "+tt.location, r.Prefill.Message)
				assert.Nil(t, r.Prefill.Parcel)
			case NotFound:
				assert.Equal(t, ReasonCatalogUnavailable, r.Reason)
				assert.Equal(t, "No se pudo cargar la información de propiedades.", r.Message)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Bella Vista":          "bella-vista",
		"  Bávaro Punta Cana ": "bavaro-punta-cana",
		"Piantini (Torre #2)":  "piantini-torre-2",
		"Ensanche  Naco":       "ensanche-naco",
		"Arroyo Hondo - Norte": "arroyo-hondo-norte",
		"Peña":                 "pena",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, Slugify(input))
		})
	}
}

func TestParseParcelID(t *testing.T) {
	ref, ok := ParseParcelID(models.EncodeParcelID("Los Alcarrizos/Sur", 3))
	require.True(t, ok)
	assert.Equal(t, ParcelRef{Location: "Los Alcarrizos/Sur", Index: 3}, ref)

	ref, ok = ParseParcelID("bella-vista-12")
	require.True(t, ok)
	assert.Equal(t, ParcelRef{Slug: "bella-vista", Index: 12}, ref)
	assert.Equal(t, "Bella Vista", ref.DisplayLocation())

	_, ok = ParseParcelID("-3")
	assert.False(t, ok)
}
