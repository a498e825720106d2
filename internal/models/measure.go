package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OnRequest is the sentinel the catalog stores in place of a number when the
// value is only given on request.
const OnRequest = "CONSULTAR"

// Measure is a catalog value that is either a number or a text sentinel such
// as "CONSULTAR".
type Measure struct {
	Value   float64
	Text    string
	Numeric bool
}

// Number builds a numeric measure.
func Number(v float64) Measure {
	return Measure{Value: v, Numeric: true}
}

// NumberPtr builds a numeric measure for an optional field.
func NumberPtr(v float64) *Measure {
	m := Number(v)
	return &m
}

// Sentinel builds a text measure. An empty text means OnRequest.
func Sentinel(text string) Measure {
	if text == "" {
		text = OnRequest
	}
	return Measure{Text: text}
}

// Float returns the numeric value and whether there is one.
func (m Measure) Float() (float64, bool) {
	return m.Value, m.Numeric
}

// String returns the sentinel text for non-numeric measures.
func (m Measure) String() string {
	if m.Numeric {
		return fmt.Sprintf("%g", m.Value)
	}
	if m.Text == "" {
		return OnRequest
	}
	return m.Text
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Measure{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode measure text: %w", err)
		}
		*m = Sentinel(text)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to decode measure number: %w", err)
	}
	*m = Number(value)
	return nil
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if m.Numeric {
		return json.Marshal(m.Value)
	}
	return json.Marshal(m.String())
}
