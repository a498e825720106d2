package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JAOCruz/nayib/internal/models"
)

func images(n int) []Image {
	out := make([]Image, n)
	for i := range out {
		out[i] = Image{Src: string(rune('a' + i)), Alt: "slide"}
	}
	return out
}

func TestCarousel_Saturates(t *testing.T) {
	c := New(images(3))
	assert.Equal(t, 0, c.Index())

	c.Previous()
	assert.Equal(t, 0, c.Index())

	c.Next()
	c.Next()
	assert.Equal(t, 2, c.Index())

	c.Next()
	assert.Equal(t, 2, c.Index())
}

func TestCarousel_GoTo(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		expected int
	}{
		{name: "In range", target: 2, expected: 2},
		{name: "Negative is ignored", target: -1, expected: 1},
		{name: "Past the end is ignored", target: 4, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(images(4))
			c.GoTo(1)
			c.GoTo(tt.target)
			assert.Equal(t, tt.expected, c.Index())
		})
	}
}

func TestCarousel_IndexStaysInBounds(t *testing.T) {
	c := New(images(5))
	moves := []func(){c.Next, c.Previous, c.Next, c.Next, c.Next, c.Next, c.Next, c.Previous, func() { c.GoTo(7) }, func() { c.GoTo(-2) }}
	for _, move := range moves {
		move()
		assert.GreaterOrEqual(t, c.Index(), 0)
		assert.Less(t, c.Index(), c.Len())
	}
}

func TestCarousel_HandleKey(t *testing.T) {
	c := New(images(4))

	assert.True(t, c.HandleKey(KeyArrowRight))
	assert.True(t, c.HandleKey(KeyArrowRight))
	assert.Equal(t, 2, c.Index())

	assert.True(t, c.HandleKey(KeyArrowLeft))
	assert.Equal(t, 1, c.Index())

	assert.True(t, c.HandleKey(KeyEscape))
	assert.Equal(t, 0, c.Index())

	assert.False(t, c.HandleKey("Enter"))
}

func TestCarousel_HandleSwipe(t *testing.T) {
	tests := []struct {
		name     string
		startX   float64
		endX     float64
		expected int
	}{
		{name: "Left swipe shows next", startX: 300, endX: 200, expected: 2},
		{name: "Right swipe shows previous", startX: 100, endX: 220, expected: 0},
		{name: "Below threshold", startX: 100, endX: 60, expected: 1},
		{name: "Exactly at threshold", startX: 100, endX: 50, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(images(3))
			c.GoTo(1)
			c.HandleSwipe(tt.startX, tt.endX)
			assert.Equal(t, tt.expected, c.Index())
		})
	}
}

func TestCarousel_State(t *testing.T) {
	c := New(images(3))

	state := c.State()
	require.NotNil(t, state.Main)
	assert.Equal(t, "a", state.Main.Src)
	assert.Equal(t, "1 / 3", state.Counter)
	assert.False(t, state.PreviousEnabled)
	assert.True(t, state.NextEnabled)
	assert.True(t, state.Thumbnails[0].Active)

	c.GoTo(2)
	state = c.State()
	assert.Equal(t, "3 / 3", state.Counter)
	assert.True(t, state.PreviousEnabled)
	assert.False(t, state.NextEnabled)
	assert.False(t, state.Thumbnails[0].Active)
	assert.True(t, state.Thumbnails[2].Active)
}

func TestCarousel_Empty(t *testing.T) {
	c := New(nil)
	c.Next()
	c.Previous()
	c.HandleSwipe(400, 0)

	state := c.State()
	assert.Nil(t, state.Main)
	assert.Empty(t, state.Thumbnails)
	assert.Equal(t, 0, c.Index())
}

type MockImageSource struct {
	mock.Mock
}

func (m *MockImageSource) ImageURLs(propertyNumber string) ([]string, bool) {
	args := m.Called(propertyNumber)
	return args.Get(0).([]string), args.Bool(1)
}

func TestGallery(t *testing.T) {
	t.Run("explicit gallery wins", func(t *testing.T) {
		source := new(MockImageSource)
		listing := models.Listing{Title: "Villa", Image: "https://cdn.example.com/Propiedades/4/1.png", Gallery: []string{"g1.png", "g2.png"}}

		gallery := Gallery(listing, source)
		assert.Equal(t, []Image{{Src: "g1.png", Alt: "Villa - Vista"}, {Src: "g2.png", Alt: "Villa - Vista"}}, gallery)
		source.AssertNotCalled(t, "ImageURLs", mock.Anything)
	})

	t.Run("cdn images from the image path", func(t *testing.T) {
		source := new(MockImageSource)
		source.On("ImageURLs", "4").Return([]string{"https://cdn.example.com/Propiedades/4/1.png", "https://cdn.example.com/Propiedades/4/2.png"}, true)
		listing := models.Listing{Title: "Cap Cana", Image: "https://cdn.example.com/Propiedades/4/1.png"}

		gallery := Gallery(listing, source)
		require.Len(t, gallery, 2)
		assert.Equal(t, "https://cdn.example.com/Propiedades/4/2.png", gallery[1].Src)
		source.AssertExpectations(t)
	})

	t.Run("unknown cdn property falls back to defaults", func(t *testing.T) {
		source := new(MockImageSource)
		source.On("ImageURLs", "99").Return([]string(nil), false)
		listing := models.Listing{Title: "Lote", Image: "https://cdn.example.com/Propiedades/99/1.png"}

		gallery := Gallery(listing, source)
		assert.Equal(t, []Image{
			{Src: listing.Image, Alt: "Lote"},
			{Src: DefaultInteriorImage, Alt: "Vista interior"},
			{Src: DefaultAdditionalImage, Alt: "Vista adicional"},
		}, gallery)
		source.AssertExpectations(t)
	})

	t.Run("no image source", func(t *testing.T) {
		gallery := Gallery(models.Listing{Title: "Casa", Image: "images/casa.jpg"}, nil)
		require.Len(t, gallery, 3)
		assert.Equal(t, "images/casa.jpg", gallery[0].Src)
	})
}
