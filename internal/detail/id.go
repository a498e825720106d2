package detail

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JAOCruz/nayib/internal/models"
)

// ParcelRef points at one parcel of a location group. Exactly one of Location
// and Slug is set, depending on the identifier form it was parsed from.
type ParcelRef struct {
	Location string
	Slug     string
	Index    int
}

// Matches reports whether a location group name is the one referenced.
func (r ParcelRef) Matches(name string) bool {
	if r.Location != "" {
		return name == r.Location || Slugify(name) == Slugify(r.Location)
	}
	return Slugify(name) == r.Slug
}

// DisplayLocation returns the best readable location name the reference
// carries.
func (r ParcelRef) DisplayLocation() string {
	if r.Location != "" {
		return r.Location
	}
	return Unslugify(r.Slug)
}

// ParseParcelID decodes both identifier forms: the token form produced by
// models.EncodeParcelID and the legacy "<slug>-<index>" form.
func ParseParcelID(id string) (ParcelRef, bool) {
	id = strings.TrimSpace(id)

	if strings.HasPrefix(id, models.ParcelIDLocationPrefix) {
		rest := strings.TrimPrefix(id, models.ParcelIDLocationPrefix)
		sep := strings.LastIndex(rest, models.ParcelIDIndexSeparator)
		if sep < 0 {
			return ParcelRef{}, false
		}

		encoded := rest[:sep]
		location, err := url.PathUnescape(encoded)
		if err != nil {
			location = encoded
		}
		index, ok := parseIndex(rest[sep+len(models.ParcelIDIndexSeparator):])
		if !ok || location == "" {
			return ParcelRef{}, false
		}
		return ParcelRef{Location: location, Index: index}, true
	}

	sep := strings.LastIndex(id, "-")
	if sep <= 0 {
		return ParcelRef{}, false
	}
	index, ok := parseIndex(id[sep+1:])
	if !ok {
		return ParcelRef{}, false
	}
	return ParcelRef{Slug: id[:sep], Index: index}, true
}

func parseIndex(raw string) (int, bool) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// locationHint recovers a location name from an identifier that could not be
// parsed as a whole.
func locationHint(id string) string {
	if ref, ok := ParseParcelID(id); ok {
		return ref.DisplayLocation()
	}
	if strings.HasPrefix(id, models.ParcelIDLocationPrefix) {
		encoded := strings.TrimPrefix(id, models.ParcelIDLocationPrefix)
		if sep := strings.Index(encoded, models.ParcelIDIndexSeparator); sep >= 0 {
			encoded = encoded[:sep]
		}
		if location, err := url.PathUnescape(encoded); err == nil {
			return location
		}
		return encoded
	}
	return Unslugify(id)
}
