// Package carousel is the image carousel state machine of a detail page.
package carousel

import (
	"fmt"
	"math"
)

// SwipeThreshold is the horizontal distance in pixels a touch has to travel
// to count as a swipe.
const SwipeThreshold = 50

// Keys understood by HandleKey.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
)

// Image is one carousel slide.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Thumbnail is an image with its active marker.
type Thumbnail struct {
	Image
	Active bool `json:"active"`
}

// State is a snapshot of what the carousel displays.
type State struct {
	Index           int         `json:"index"`
	Main            *Image      `json:"main,omitempty"`
	Counter         string      `json:"counter"`
	Thumbnails      []Thumbnail `json:"thumbnails"`
	PreviousEnabled bool        `json:"previous_enabled"`
	NextEnabled     bool        `json:"next_enabled"`
}

// Carousel keeps its index inside [0, n-1] and never wraps around.
type Carousel struct {
	images []Image
	index  int
}

func New(images []Image) *Carousel {
	copied := make([]Image, len(images))
	copy(copied, images)
	return &Carousel{images: copied}
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return len(c.images)
}

// GoTo shows image i. Out-of-range indexes are ignored.
func (c *Carousel) GoTo(i int) {
	if i < 0 || i >= len(c.images) {
		return
	}
	c.index = i
}

func (c *Carousel) Next() {
	c.GoTo(c.index + 1)
}

func (c *Carousel) Previous() {
	c.GoTo(c.index - 1)
}

// HandleKey maps a keyboard key to a transition. Escape returns to the first
// image. It reports whether the key was handled.
func (c *Carousel) HandleKey(key string) bool {
	switch key {
	case KeyArrowLeft:
		c.Previous()
	case KeyArrowRight:
		c.Next()
	case KeyEscape:
		c.GoTo(0)
	default:
		return false
	}
	return true
}

// HandleSwipe maps a touch gesture to a transition: moving left shows the
// next image, moving right the previous one.
func (c *Carousel) HandleSwipe(startX, endX float64) {
	diff := startX - endX
	if math.Abs(diff) <= SwipeThreshold {
		return
	}
	if diff > 0 {
		c.Next()
	} else {
		c.Previous()
	}
}

func (c *Carousel) State() State {
	n := len(c.images)
	state := State{
		Index:      c.index,
		Thumbnails: make([]Thumbnail, n),
	}
	if n == 0 {
		return state
	}

	main := c.images[c.index]
	state.Main = &main
	state.Counter = fmt.Sprintf("%d / %d", c.index+1, n)
	state.PreviousEnabled = c.index > 0
	state.NextEnabled = c.index < n-1
	for i, image := range c.images {
		state.Thumbnails[i] = Thumbnail{Image: image, Active: i == c.index}
	}
	return state
}
