package sihas_modbus

// HA device/state class tags carried into discovery payloads
const (
	DeviceClassTemperature = "temperature"
	DeviceClassHumidity    = "humidity"
	DeviceClassIlluminance = "illuminance"
	DeviceClassCO2         = "carbon_dioxide"
	DeviceClassPM25        = "pm25"
	DeviceClassPM10        = "pm10"
	DeviceClassTVOC        = "volatile_organic_compounds"
)

// Measurement is one read-only projection of the AQM register snapshot.
// Defined once at load time, never mutated.
type Measurement struct {
	Key         string
	Name        string
	Unit        string
	DeviceClass string
	Decimals    uint
	Decode      func(Registers) (float64, error)
}

var aqmMeasurements = []Measurement{
	{
		Key:         "co2",
		Name:        "co2",
		Unit:        "ppm",
		DeviceClass: DeviceClassCO2,
		Decode:      func(r Registers) (float64, error) { return r.RawAt(AQMRegCO2) },
	},
	{
		Key:         "pm25",
		Name:        "pm25",
		Unit:        "µg/m³",
		DeviceClass: DeviceClassPM25,
		Decode:      func(r Registers) (float64, error) { return r.RawAt(AQMRegPM25) },
	},
	{
		Key:         "pm10",
		Name:        "pm10",
		Unit:        "µg/m³",
		DeviceClass: DeviceClassPM10,
		Decode:      func(r Registers) (float64, error) { return r.RawAt(AQMRegPM10) },
	},
	{
		Key:         "tvoc",
		Name:        "tvoc",
		Unit:        "ppb",
		DeviceClass: DeviceClassTVOC,
		Decode:      func(r Registers) (float64, error) { return r.RawAt(AQMRegTVOC) },
	},
	{
		Key:         "humidity",
		Name:        "humidity",
		Unit:        "%",
		DeviceClass: DeviceClassHumidity,
		Decimals:    1,
		Decode:      func(r Registers) (float64, error) { return r.ScaledTenthAt(AQMRegHumidity) },
	},
	{
		Key:         "illuminance",
		Name:        "illuminance",
		Unit:        "lx",
		DeviceClass: DeviceClassIlluminance,
		Decode:      func(r Registers) (float64, error) { return r.RawAt(AQMRegIlluminance) },
	},
	{
		Key:         "temperature",
		Name:        "temperature",
		Unit:        "°C",
		DeviceClass: DeviceClassTemperature,
		Decimals:    1,
		Decode:      func(r Registers) (float64, error) { return r.ScaledTenthAt(AQMRegTemperature) },
	},
}

// AQMMeasurements returns the measurement table of the AQM-300 in
// announcement order.
func AQMMeasurements() []Measurement {
	return aqmMeasurements
}

// AQMMeasurement looks up a single measurement by key.
func AQMMeasurement(key string) (Measurement, bool) {
	for _, m := range aqmMeasurements {
		if m.Key == key {
			return m, true
		}
	}
	return Measurement{}, false
}
