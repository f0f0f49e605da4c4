package actor

import (
	"testing"
	"time"

	"github.com/1105nam/sihas2mqtt/internal/core/domain"
	"github.com/1105nam/sihas2mqtt/internal/util/actorutil"
	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDevicesInfoModbusActor(t *testing.T) {

	assert := assert.New(t)

	powerMeter, err := sihas_modbus.CreateTestPowerMeterModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	airQuality, err := sihas_modbus.CreateTestAirQualityModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(powerMeter, airQuality, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDevicesInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDevicesInfoResponse)

	assert.Equal(resp.PowerMeter.Type, sihas_modbus.DeviceTypePowerMeter, "PowerMeter type")
	assert.Equal(resp.PowerMeter.Model, "PMM-300", "PowerMeter model")
	assert.Equal(resp.PowerMeter.MAC, "a0b1c2d3e4f5", "PowerMeter mac")
	assert.Equal(resp.AirQuality.Type, sihas_modbus.DeviceTypeAirQuality, "AirQuality type")
	assert.Equal(resp.AirQuality.Model, "AQM-300", "AirQuality model")
	assert.Equal(resp.AirQuality.MAC, "f5e4d3c2b1a0", "AirQuality mac")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetEnergyMeterModbusActor(t *testing.T) {

	assert := assert.New(t)

	powerMeter, err := sihas_modbus.CreateTestPowerMeterModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	airQuality, err := sihas_modbus.CreateTestAirQualityModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(powerMeter, airQuality, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetEnergyMeterRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetEnergyMeterResponse)

	assert.Equal(resp.EnergyMeter.InstantPowerWatt, float64(743), "InstantPowerWatt value")
	assert.Equal(resp.EnergyMeter.TotalEnergyWh, uint32(65538), "TotalEnergyWh value")
	assert.Equal(resp.EnergyMeter.TotalEnergyKWh, 65.538, "TotalEnergyKWh value")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetAirQualityModbusActor(t *testing.T) {

	assert := assert.New(t)

	powerMeter, err := sihas_modbus.CreateTestPowerMeterModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	airQuality, err := sihas_modbus.CreateTestAirQualityModbusReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewModbusActor(powerMeter, airQuality, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetAirQualityRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetAirQualityResponse)

	assert.Equal(len(resp.Registers), sihas_modbus.AQMRegisterCount, "register count")
	co2, err := resp.Registers.RawAt(sihas_modbus.AQMRegCO2)
	assert.NoError(err)
	assert.Equal(co2, float64(612), "co2 value")
	temp, err := resp.Registers.ScaledTenthAt(sihas_modbus.AQMRegTemperature)
	assert.NoError(err)
	assert.Equal(temp, 23.1, "temperature value")

	context.Stop(pid)

	as.Shutdown()
}
