package models

import (
	"net/url"
	"strconv"
)

// Composite parcel identifiers look like loc___<location>___idx___<n>, with
// the location percent-encoded.
const (
	ParcelIDLocationPrefix = "loc___"
	ParcelIDIndexSeparator = "___idx___"
)

// EncodeParcelID builds the identifier of the index-th parcel of a location
// group.
func EncodeParcelID(location string, index int) string {
	return ParcelIDLocationPrefix + url.PathEscape(location) + ParcelIDIndexSeparator + strconv.Itoa(index)
}
