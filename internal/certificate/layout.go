package certificate

import (
	"fmt"

	"certgen/internal/meter"
)

// SheetWriter writes into one certificate sheet.
type SheetWriter interface {
	SetString(cell, value string) error
	SetFloat(cell string, value float64) error
}

// PassCells locates one calibration pass on the certificate.
type PassCells struct {
	Energy string
	Inlet  string
	Outlet string
	Flow   string
	DeltaT string // empty: not printed
}

// Layout is the cell contract of the certificate template.
type Layout struct {
	Serial    string
	Location  string
	MeterSize string
	Before    PassCells
	After     PassCells
}

// DefaultLayout matches the certificate template in use.
func DefaultLayout() Layout {
	return Layout{
		Serial:    "B7",
		Location:  "B8",
		MeterSize: "B9",
		Before: PassCells{
			Energy: "I13",
			Inlet:  "D14",
			Outlet: "D15",
			Flow:   "F16",
			DeltaT: "D16",
		},
		After: PassCells{
			Energy: "I19",
			Inlet:  "D20",
			Outlet: "D21",
			Flow:   "F22",
		},
	}
}

// Fill writes rec into w. Fields the record does not have are left alone
// so the template's own content shows through.
func Fill(w SheetWriter, rec meter.Record, layout Layout) error {
	if err := w.SetString(layout.Serial, "Serial No: "+rec.Serial); err != nil {
		return fmt.Errorf("failed to write serial: %w", err)
	}
	if err := w.SetString(layout.Location, "Meter Location : "+rec.Location); err != nil {
		return fmt.Errorf("failed to write location: %w", err)
	}
	if err := w.SetString(layout.MeterSize, "Meter Size : "+rec.SizeLabel()); err != nil {
		return fmt.Errorf("failed to write meter size: %w", err)
	}
	if err := fillPass(w, rec.Before, layout.Before); err != nil {
		return fmt.Errorf("before calibration: %w", err)
	}
	if err := fillPass(w, rec.After, layout.After); err != nil {
		return fmt.Errorf("after calibration: %w", err)
	}
	return nil
}

func fillPass(w SheetWriter, p meter.Pass, cells PassCells) error {
	if p.HasEnergy() {
		if err := w.SetString(cells.Energy, fmt.Sprintf("%s= BTU*%s", p.Unit, p.Value)); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		cell  string
		value *float64
	}{
		{cells.Inlet, p.Inlet},
		{cells.Outlet, p.Outlet},
		{cells.Flow, p.Flow},
	} {
		if f.value == nil {
			continue
		}
		if err := w.SetFloat(f.cell, *f.value); err != nil {
			return err
		}
	}
	if cells.DeltaT != "" {
		if delta, ok := p.DeltaT(); ok {
			if err := w.SetFloat(cells.DeltaT, delta); err != nil {
				return err
			}
		}
	}
	return nil
}
