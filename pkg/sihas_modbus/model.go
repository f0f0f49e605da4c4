package sihas_modbus

import "errors"

var errUnreachable = errors.New("device unreachable")

// Supported SiHAS device types. Any other configured type is rejected
// before a single entity is announced.
const (
	DeviceTypePowerMeter = "PMM"
	DeviceTypeAirQuality = "AQM"
)

type DeviceInfo struct {
	Type   string
	IP     string
	MAC    string
	Model  string
	Config uint16
}

type EnergyMeter struct {
	// Instantaneous active power
	InstantPowerWatt float64
	// Lifetime accumulated energy, combined from the meter's two counter words
	TotalEnergyWh uint32
	// Lifetime accumulated energy in kWh
	TotalEnergyKWh float64
}

type PowerMeterModbusReader interface {
	Open() error
	Close() error
	Validate() error
	GetInfo() (*DeviceInfo, error)
	Poll() (Registers, error)
	GetEnergyMeter() (*EnergyMeter, error)
}

type AirQualityModbusReader interface {
	Open() error
	Close() error
	Validate() error
	GetInfo() (*DeviceInfo, error)
	Poll() (Registers, error)
}
