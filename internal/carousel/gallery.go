package carousel

import (
	"regexp"

	"github.com/JAOCruz/nayib/internal/models"
)

// Images of the default gallery used when a listing has none.
const (
	DefaultInteriorImage   = "images/s-1.jpg"
	DefaultAdditionalImage = "images/s-2.jpg"
)

var cdnPropertyPath = regexp.MustCompile(`Propiedades/(\d+)/`)

// ImageSource lists the CDN images of a numbered property.
type ImageSource interface {
	ImageURLs(propertyNumber string) ([]string, bool)
}

// Gallery picks the images of a listing: its own gallery, then the CDN
// images of the property its main image belongs to, then a default set.
// images may be nil.
func Gallery(listing models.Listing, images ImageSource) []Image {
	alt := listing.Title + " - Vista"

	if len(listing.Gallery) > 0 {
		return withAlt(listing.Gallery, alt)
	}

	if images != nil {
		if match := cdnPropertyPath.FindStringSubmatch(listing.Image); match != nil {
			if urls, ok := images.ImageURLs(match[1]); ok && len(urls) > 0 {
				return withAlt(urls, alt)
			}
		}
	}

	return []Image{
		{Src: listing.Image, Alt: listing.Title},
		{Src: DefaultInteriorImage, Alt: "Vista interior"},
		{Src: DefaultAdditionalImage, Alt: "Vista adicional"},
	}
}

func withAlt(urls []string, alt string) []Image {
	gallery := make([]Image, len(urls))
	for i, src := range urls {
		gallery[i] = Image{Src: src, Alt: alt}
	}
	return gallery
}
