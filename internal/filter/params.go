package filter

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names understood by Parse.
const (
	ParamLocation    = "location"
	ParamAreaMin     = "areaMin"
	ParamAreaMax     = "areaMax"
	ParamPriceMin    = "priceMin"
	ParamPriceMax    = "priceMax"
	ParamLegalStatus = "legalStatus"
	ParamPage        = "page"
)

// ValidationError reports a malformed filter input that was replaced by its
// default.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("filter: invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// Parse reads a filter and a page number from query values. Malformed inputs
// never fail the request: they fall back to their defaults and are reported
// in the returned slice.
func Parse(values url.Values) (Filter, int, []ValidationError) {
	if values == nil {
		values = url.Values{}
	}

	f := Default()
	var problems []ValidationError

	f.Location = strings.TrimSpace(values.Get(ParamLocation))
	f.LegalStatus = strings.TrimSpace(values.Get(ParamLegalStatus))

	if v, ok := parseBound(values, ParamAreaMin, &problems); ok {
		f.AreaMin = v
	}
	if v, ok := parseBound(values, ParamAreaMax, &problems); ok && v > 0 {
		f.AreaMax = v
	}
	if v, ok := parseBound(values, ParamPriceMin, &problems); ok {
		f.PriceMin = v
	}
	if v, ok := parseBound(values, ParamPriceMax, &problems); ok && v > 0 {
		f.PriceMax = v
	}

	page := 1
	if raw := strings.TrimSpace(values.Get(ParamPage)); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			problems = append(problems, ValidationError{Field: ParamPage, Value: raw, Message: "must be an integer"})
		case n < 1:
			problems = append(problems, ValidationError{Field: ParamPage, Value: raw, Message: "must be at least 1"})
		default:
			page = n
		}
	}

	return f, page, problems
}

// parseBound reads one numeric bound. A zero maximum means "unbounded", the
// caller handles that.
func parseBound(values url.Values, field string, problems *[]ValidationError) (float64, bool) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	switch {
	case err != nil || math.IsNaN(v) || math.IsInf(v, 0):
		*problems = append(*problems, ValidationError{Field: field, Value: raw, Message: "must be a number"})
		return 0, false
	case v < 0:
		*problems = append(*problems, ValidationError{Field: field, Value: raw, Message: "must not be negative"})
		return 0, false
	}
	return v, true
}

// Values encodes a filter and page number back into query parameters,
// omitting defaults.
func Values(f Filter, page int) url.Values {
	values := url.Values{}
	if f.Location != "" {
		values.Set(ParamLocation, f.Location)
	}
	if f.AreaMin > 0 {
		values.Set(ParamAreaMin, strconv.FormatFloat(f.AreaMin, 'f', -1, 64))
	}
	if areaMax := upper(f.AreaMax); !math.IsInf(areaMax, 1) {
		values.Set(ParamAreaMax, strconv.FormatFloat(areaMax, 'f', -1, 64))
	}
	if f.PriceMin > 0 {
		values.Set(ParamPriceMin, strconv.FormatFloat(f.PriceMin, 'f', -1, 64))
	}
	if priceMax := upper(f.PriceMax); !math.IsInf(priceMax, 1) {
		values.Set(ParamPriceMax, strconv.FormatFloat(priceMax, 'f', -1, 64))
	}
	if f.LegalStatus != "" {
		values.Set(ParamLegalStatus, f.LegalStatus)
	}
	if page > 1 {
		values.Set(ParamPage, strconv.Itoa(page))
	}
	return values
}
