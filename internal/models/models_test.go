package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *Measure {
	return NumberPtr(v)
}

func TestParcel_Total(t *testing.T) {
	tests := []struct {
		name     string
		parcel   Parcel
		expected float64
		ok       bool
	}{
		{
			name:     "Numeric area and price",
			parcel:   Parcel{AreaM2: Number(500), Price: Number(120)},
			expected: 60000,
			ok:       true,
		},
		{
			name:   "Sentinel area",
			parcel: Parcel{AreaM2: Sentinel(OnRequest), Price: Number(120)},
			ok:     false,
		},
		{
			name:   "Sentinel price",
			parcel: Parcel{AreaM2: Number(500), Price: Sentinel(OnRequest)},
			ok:     false,
		},
		{
			name:   "Free text area",
			parcel: Parcel{AreaM2: Sentinel("Varios"), Price: Number(120)},
			ok:     false,
		},
		{
			name:     "Whole parcel basis ignores area",
			parcel:   Parcel{AreaM2: Sentinel(OnRequest), Price: Number(2500000), PriceBasis: WholeParcel},
			expected: 2500000,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, ok := tt.parcel.Total()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, total, 0.0001)
			}
		})
	}
}

func TestParcel_UnitPrice(t *testing.T) {
	perUnit, ok := Parcel{AreaM2: Number(400), Price: Number(90)}.UnitPrice()
	require.True(t, ok)
	assert.Equal(t, 90.0, perUnit)

	fromTotal, ok := Parcel{AreaM2: Number(400), Price: Number(40000), PriceBasis: WholeParcel}.UnitPrice()
	require.True(t, ok)
	assert.Equal(t, 100.0, fromTotal)

	_, ok = Parcel{AreaM2: Sentinel(""), Price: Number(40000), PriceBasis: WholeParcel}.UnitPrice()
	assert.False(t, ok)
}

func TestMeasure_JSON(t *testing.T) {
	var parcel Parcel
	raw := `{"area_m2":"CONSULTAR","frente_m":12.5,"precio_usd_m2":85,"estatus_legal":"Deslindado"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &parcel))

	assert.False(t, parcel.AreaM2.Numeric)
	assert.Equal(t, OnRequest, parcel.AreaM2.String())
	assert.Equal(t, ptr(12.5), parcel.FrenteM)
	assert.Nil(t, parcel.FondoM)
	price, ok := parcel.Price.Float()
	assert.True(t, ok)
	assert.Equal(t, 85.0, price)

	out, err := json.Marshal(parcel)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"area_m2":"CONSULTAR"`)
	assert.Contains(t, string(out), `"precio_usd_m2":85`)
}

func TestOptionalMeasures_AcceptText(t *testing.T) {
	var parcel Parcel
	raw := `{"area_m2":300,"frente_m":"CONSULTAR","fondo_m":null,"precio_usd_m2":85}`
	require.NoError(t, json.Unmarshal([]byte(raw), &parcel))
	require.NotNil(t, parcel.FrenteM)
	assert.False(t, parcel.FrenteM.Numeric)
	assert.Equal(t, OnRequest, parcel.FrenteM.String())
	assert.Nil(t, parcel.FondoM)

	var listing Listing
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","price":"CONSULTAR","units":"24 unidades"}`), &listing))
	_, ok := listing.Price.Float()
	assert.False(t, ok)
	assert.Equal(t, "24 unidades", listing.Units.String())
}

func TestMeasure_RejectsObjects(t *testing.T) {
	var m Measure
	assert.Error(t, json.Unmarshal([]byte(`{"value":1}`), &m))
}

func TestLocationGroup_CurrencyFor(t *testing.T) {
	group := LocationGroup{Ubicacion: "Santiago", Currency: "DOP"}
	assert.Equal(t, "DOP", group.CurrencyFor(Parcel{}))
	assert.Equal(t, "EUR", group.CurrencyFor(Parcel{Currency: "EUR"}))
	assert.Equal(t, DefaultCurrency, LocationGroup{}.CurrencyFor(Parcel{}))
}

func TestCatalog_NilSafe(t *testing.T) {
	var catalog *Catalog
	assert.Nil(t, catalog.Category(CategorySolares))
	assert.Nil(t, catalog.Listings(CategoryPropiedades))
	assert.Nil(t, catalog.LocationGroups())
	assert.Equal(t, CategoryPropiedades, ParseCategoryKey("  "))
	assert.Equal(t, CategorySolares, ParseCategoryKey("Solares"))
}

func TestListing_PriceVisible(t *testing.T) {
	hidden := false
	assert.True(t, Listing{}.PriceVisible())
	assert.False(t, Listing{ShowPrice: &hidden}.PriceVisible())
}
