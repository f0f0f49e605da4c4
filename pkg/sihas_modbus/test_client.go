package sihas_modbus

func CreateTestPowerMeterModbusReader() (PowerMeterModbusReader, error) {
	return &TestPowerMeterModbusReader{}, nil
}

func CreateTestAirQualityModbusReader() (AirQualityModbusReader, error) {
	return &TestAirQualityModbusReader{}, nil
}

// PowerMeter

type TestPowerMeterModbusReader struct {
	// FailPolls makes every Poll report an unreachable device
	FailPolls bool
}

func (reader *TestPowerMeterModbusReader) Open() error {
	return nil
}

func (reader *TestPowerMeterModbusReader) Close() error {
	return nil
}

func (reader *TestPowerMeterModbusReader) Validate() error {
	return nil
}

func (reader *TestPowerMeterModbusReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		Type:   DeviceTypePowerMeter,
		IP:     "-.-.-.-",
		MAC:    "a0b1c2d3e4f5",
		Model:  "PMM-300",
		Config: 1,
	}, nil
}

func (reader *TestPowerMeterModbusReader) Poll() (Registers, error) {
	if reader.FailPolls {
		return nil, errUnreachable
	}
	regs := make(Registers, PMMRegisterCount)
	regs[PMMRegWatt] = 743
	regs[PMMRegAccWattHourHigh] = 1
	regs[PMMRegAccWattHourLow] = 2
	return regs, nil
}

func (reader *TestPowerMeterModbusReader) GetEnergyMeter() (*EnergyMeter, error) {
	regs, err := reader.Poll()
	if err != nil {
		return nil, err
	}
	total, err := regs.CombineEnergyWords()
	if err != nil {
		return nil, err
	}
	watt, err := regs.RawAt(PMMRegWatt)
	if err != nil {
		return nil, err
	}
	return &EnergyMeter{
		InstantPowerWatt: watt,
		TotalEnergyWh:    total,
		TotalEnergyKWh:   float64(total) / 1000,
	}, nil
}

// AirQuality

type TestAirQualityModbusReader struct {
	FailPolls bool
}

func (reader *TestAirQualityModbusReader) Open() error {
	return nil
}

func (reader *TestAirQualityModbusReader) Close() error {
	return nil
}

func (reader *TestAirQualityModbusReader) Validate() error {
	return nil
}

func (reader *TestAirQualityModbusReader) GetInfo() (*DeviceInfo, error) {
	return &DeviceInfo{
		Type:   DeviceTypeAirQuality,
		IP:     "-.-.-.-",
		MAC:    "f5e4d3c2b1a0",
		Model:  "AQM-300",
		Config: 1,
	}, nil
}

func (reader *TestAirQualityModbusReader) Poll() (Registers, error) {
	if reader.FailPolls {
		return nil, errUnreachable
	}
	return Registers{231, 455, 612, 8, 14, 102, 317}, nil
}
