package sihas_modbus

import (
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
	"go.uber.org/zap"
)

type PowerMeterReader struct {
	ModbusClient
	info DeviceInfo
}

func CreatePowerMeterModbusReader(ip string, port uint, mac string, cfg uint16, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (PowerMeterModbusReader, error) {
	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s:%d", ip, port),
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	// instrumentation
	var inst []ModbusInstrument
	logInst := traceLoggerInstrumentation(logger.With(zap.String("target", "powerMeter")).With(zap.String("mac", mac)))
	if logInst != nil {
		inst = append(inst, *logInst)
	}
	if instrumentation != nil {
		inst = append(inst, *instrumentation)
	}

	// the per-device config value addresses the unit on the bus
	err = client.SetUnitId(uint8(cfg))
	if err != nil {
		return nil, err
	}
	reader := PowerMeterReader{
		ModbusClient: ModbusClient{
			client:     client,
			instrument: inst,
		},
		info: DeviceInfo{
			Type:   DeviceTypePowerMeter,
			IP:     ip,
			MAC:    mac,
			Model:  "PMM-300",
			Config: cfg,
		},
	}
	return &reader, nil
}

func (reader *PowerMeterReader) Open() error {
	if err := reader.client.Open(); err != nil {
		return err
	}
	return reader.Validate()
}

func (reader *PowerMeterReader) Close() error {
	return reader.client.Close()
}

func (reader *PowerMeterReader) Validate() error {
	regs, err := reader.readRegisters(0, PMMRegisterCount)
	if err != nil {
		return err
	}
	if len(regs) < PMMRegisterCount {
		return fmt.Errorf("device does not expose a PMM-300 register block: got %d registers", len(regs))
	}
	return nil
}

func (reader *PowerMeterReader) GetInfo() (*DeviceInfo, error) {
	info := reader.info
	return &info, nil
}

func (reader *PowerMeterReader) Poll() (Registers, error) {
	return reader.readRegisters(0, PMMRegisterCount)
}

func (reader *PowerMeterReader) GetEnergyMeter() (*EnergyMeter, error) {
	regs, err := reader.Poll()
	if err != nil {
		return nil, err
	}
	watt, err := regs.RawAt(PMMRegWatt)
	if err != nil {
		return nil, err
	}
	total, err := regs.CombineEnergyWords()
	if err != nil {
		return nil, err
	}
	return &EnergyMeter{
		InstantPowerWatt: watt,
		TotalEnergyWh:    total,
		TotalEnergyKWh:   float64(total) / 1000,
	}, nil
}
