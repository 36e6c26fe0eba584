// Package meter turns calibration sheet rows into meter records.
package meter

import (
	"github.com/shopspring/decimal"
)

// Unit is the energy unit a meter reading was taken in.
type Unit string

const (
	UnitNone Unit = ""
	UnitMWH  Unit = "MWH"
	UnitKWH  Unit = "KWH"
)

// DefaultMeterSize is printed when the size cell is blank or zero.
const DefaultMeterSize = "65"

// Pass holds one calibration pass (before or after adjustment).
type Pass struct {
	Inlet  *float64
	Outlet *float64
	Flow   *float64
	Unit   Unit
	Value  string
}

// HasEnergy reports whether a unit/value pair was resolved.
func (p Pass) HasEnergy() bool {
	return p.Unit != UnitNone && p.Value != ""
}

// DeltaT returns |outlet - inlet|. ok is false unless both temperatures are present.
func (p Pass) DeltaT() (float64, bool) {
	if p.Inlet == nil || p.Outlet == nil {
		return 0, false
	}
	diff := decimal.NewFromFloat(*p.Outlet).Sub(decimal.NewFromFloat(*p.Inlet)).Abs()
	return diff.InexactFloat64(), true
}

// Record is one valid input row.
type Record struct {
	Row       int
	Location  string
	Serial    string
	MeterSize string
	Before    Pass
	After     Pass
}

// SizeLabel renders the nominal diameter, e.g. "DN-65".
func (r Record) SizeLabel() string {
	if !truthy(r.MeterSize) {
		return "DN-" + DefaultMeterSize
	}
	return "DN-" + r.MeterSize
}
