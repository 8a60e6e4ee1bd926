package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// NotAvailable is printed in place of an absent measurement
const NotAvailable = "N/A"

// Measurement is a numeric value that may be absent. Zero is a valid
// measurement; a failed probe leaves Valid false.
type Measurement struct {
	Value float64
	Valid bool
}

// Some returns a present measurement
func Some(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// None returns an absent measurement
func None() Measurement {
	return Measurement{}
}

// Format renders the value with two decimals, or N/A when absent
func (m Measurement) Format() string {
	if !m.Valid || math.IsNaN(m.Value) {
		return NotAvailable
	}
	return strconv.FormatFloat(m.Value, 'f', 2, 64)
}

// WithUnit renders the value followed by unit, or N/A when absent
func (m Measurement) WithUnit(unit string) string {
	if !m.Valid {
		return NotAvailable
	}
	return m.Format() + unit
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Measurement) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Measurement{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}
