package sihas_modbus

import (
	"fmt"
)

// Registers is one polled snapshot of a device's holding register block.
// Indices are positionally significant per device model.
type Registers []uint16

// AQM-300 register offsets
const (
	AQMRegTemperature = 0
	AQMRegHumidity    = 1
	AQMRegCO2         = 2
	AQMRegPM25        = 3
	AQMRegPM10        = 4
	AQMRegTVOC        = 5
	AQMRegIlluminance = 6

	AQMRegisterCount = 7
)

// PMM-300 register offsets
const (
	PMMRegWatt            = 2
	PMMRegAccWattHourHigh = 40
	PMMRegAccWattHourLow  = 41

	PMMRegisterCount = 42
)

func (regs Registers) at(index int) (uint16, error) {
	if index >= len(regs) {
		return 0, fmt.Errorf("register snapshot too short: need index %d, got %d registers", index, len(regs))
	}
	return regs[index], nil
}

// RawAt returns the register at index as-is.
func (regs Registers) RawAt(index int) (float64, error) {
	v, err := regs.at(index)
	if err != nil {
		return 0, err
	}
	return float64(v), nil
}

// ScaledTenthAt returns the register at index divided by 10. SiHAS
// encodes temperature and humidity this way.
func (regs Registers) ScaledTenthAt(index int) (float64, error) {
	v, err := regs.at(index)
	if err != nil {
		return 0, err
	}
	return float64(v) / 10, nil
}

// CombineEnergyWords merges the meter's two 16-bit counter words into the
// 32-bit accumulated energy total: (high << 16) | low.
func (regs Registers) CombineEnergyWords() (uint32, error) {
	high, err := regs.at(PMMRegAccWattHourHigh)
	if err != nil {
		return 0, err
	}
	low, err := regs.at(PMMRegAccWattHourLow)
	if err != nil {
		return 0, err
	}
	return uint32(high)<<16 | uint32(low), nil
}
