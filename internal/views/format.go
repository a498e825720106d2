package views

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/JAOCruz/nayib/internal/models"
)

// NotAvailable fills frontage and depth cells without a value.
const NotAvailable = "-"

var whitespace = regexp.MustCompile(`\s+`)

// formatter renders numbers with thousands grouping and at most three
// fraction digits, e.g. 1,234,567.5. A message.Printer is not safe for
// concurrent use, so every render builds its own.
type formatter struct {
	printer *message.Printer
}

func newFormatter() formatter {
	return formatter{printer: message.NewPrinter(language.English)}
}

func (f formatter) number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

func (f formatter) money(v float64) string {
	return "$" + f.number(v)
}

// measure prints a numeric measure, or its sentinel text.
func (f formatter) measure(m models.Measure) string {
	if v, ok := m.Float(); ok {
		return f.number(v)
	}
	return m.String()
}

// optional prints an optional measure, NotAvailable when missing or zero.
// Text values are shown as written.
func (f formatter) optional(m *models.Measure) string {
	if m == nil {
		return NotAvailable
	}
	if v, ok := m.Float(); ok {
		if v == 0 {
			return NotAvailable
		}
		return f.number(v)
	}
	if text := strings.TrimSpace(m.Text); text != "" {
		return text
	}
	return NotAvailable
}

// BadgeClass turns a legal status into its badge CSS class.
func BadgeClass(status string) string {
	return whitespace.ReplaceAllString(strings.ToLower(status), "_")
}
