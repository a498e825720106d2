package catalog

import (
	"fmt"

	"github.com/JAOCruz/nayib/internal/models"
)

// SuspiciousUnitPrice is the per-m² price above which a parcel without a
// declared price basis is probably quoted for the whole parcel.
const SuspiciousUnitPrice = 10000

// FindingKind classifies an audit finding.
type FindingKind string

const (
	FindingDuplicateID     FindingKind = "duplicate-id"
	FindingAmbiguousBasis  FindingKind = "ambiguous-price-basis"
	FindingMissingCategory FindingKind = "missing-category"
)

// Finding is one problem in a catalog document.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	Category string      `json:"category"`
	Subject  string      `json:"subject"`
	Message  string      `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s/%s: %s", f.Kind, f.Category, f.Subject, f.Message)
}

// Audit checks a catalog for records the site cannot render unambiguously.
// Findings are ordered by category, then by position in the document.
func Audit(doc *models.Catalog) []Finding {
	var findings []Finding
	if doc == nil {
		return findings
	}

	findings = append(findings, duplicateIDs("featured", doc.Featured)...)
	for _, key := range []models.CategoryKey{models.CategoryPropiedades, models.CategoryOficinas, models.CategorySolares} {
		if doc.Category(key) == nil {
			findings = append(findings, Finding{
				Kind:     FindingMissingCategory,
				Category: string(key),
				Message:  "category is absent and will render empty",
			})
		}
	}
	findings = append(findings, duplicateIDs(string(models.CategoryPropiedades), doc.Listings(models.CategoryPropiedades))...)
	findings = append(findings, duplicateIDs(string(models.CategoryOficinas), doc.Listings(models.CategoryOficinas))...)
	findings = append(findings, ambiguousBases(doc.LocationGroups())...)
	return findings
}

func duplicateIDs(category string, listings []models.Listing) []Finding {
	var findings []Finding
	first := make(map[string]int)
	for i, listing := range listings {
		if j, seen := first[listing.ID]; seen {
			findings = append(findings, Finding{
				Kind:     FindingDuplicateID,
				Category: category,
				Subject:  listing.ID,
				Message:  fmt.Sprintf("listing %d repeats the id of listing %d, detail pages resolve to the first", i, j),
			})
			continue
		}
		first[listing.ID] = i
	}
	return findings
}

func ambiguousBases(groups []models.LocationGroup) []Finding {
	var findings []Finding
	for _, group := range groups {
		for i, parcel := range group.Solares {
			if parcel.PriceBasis != "" {
				continue
			}
			price, ok := parcel.Price.Float()
			if !ok || price <= SuspiciousUnitPrice {
				continue
			}
			findings = append(findings, Finding{
				Kind:     FindingAmbiguousBasis,
				Category: string(models.CategorySolares),
				Subject:  models.EncodeParcelID(group.Ubicacion, i),
				Message:  fmt.Sprintf("price %.2f per m² looks like a total, set price_basis explicitly", price),
			})
		}
	}
	return findings
}
