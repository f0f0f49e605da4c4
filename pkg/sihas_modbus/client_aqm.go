package sihas_modbus

import (
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
	"go.uber.org/zap"
)

type AirQualityReader struct {
	ModbusClient
	info DeviceInfo
}

func CreateAirQualityModbusReader(ip string, port uint, mac string, cfg uint16, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (AirQualityModbusReader, error) {
	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s:%d", ip, port),
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	// instrumentation
	var inst []ModbusInstrument
	logInst := traceLoggerInstrumentation(logger.With(zap.String("target", "airQuality")).With(zap.String("mac", mac)))
	if logInst != nil {
		inst = append(inst, *logInst)
	}
	if instrumentation != nil {
		inst = append(inst, *instrumentation)
	}

	err = client.SetUnitId(uint8(cfg))
	if err != nil {
		return nil, err
	}
	reader := AirQualityReader{
		ModbusClient: ModbusClient{
			client:     client,
			instrument: inst,
		},
		info: DeviceInfo{
			Type:   DeviceTypeAirQuality,
			IP:     ip,
			MAC:    mac,
			Model:  "AQM-300",
			Config: cfg,
		},
	}
	return &reader, nil
}

func (reader *AirQualityReader) Open() error {
	if err := reader.client.Open(); err != nil {
		return err
	}
	return reader.Validate()
}

func (reader *AirQualityReader) Close() error {
	return reader.client.Close()
}

func (reader *AirQualityReader) Validate() error {
	regs, err := reader.readRegisters(0, AQMRegisterCount)
	if err != nil {
		return err
	}
	if len(regs) < AQMRegisterCount {
		return fmt.Errorf("device does not expose an AQM-300 register block: got %d registers", len(regs))
	}
	return nil
}

func (reader *AirQualityReader) GetInfo() (*DeviceInfo, error) {
	info := reader.info
	return &info, nil
}

func (reader *AirQualityReader) Poll() (Registers, error) {
	return reader.readRegisters(0, AQMRegisterCount)
}
