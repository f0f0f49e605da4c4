package actor

import (
	"errors"
	"sync"
	"testing"
	"time"

	adactor "github.com/1105nam/sihas2mqtt/internal/adapter/actor"
	"github.com/1105nam/sihas2mqtt/internal/core/domain"
	"github.com/1105nam/sihas2mqtt/internal/util"
	"github.com/1105nam/sihas2mqtt/internal/util/actorutil"
	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type eventCollector struct {
	mu     sync.Mutex
	events []any
}

func (c *eventCollector) collect(value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, value)
}

func (c *eventCollector) snapshot() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any{}, c.events...)
}

func spawnMonitor(t *testing.T, powerMeter sihas_modbus.PowerMeterModbusReader,
	airQuality sihas_modbus.AirQualityModbusReader) (*actor.ActorSystem, *actor.PID, *eventCollector) {

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.MonitorConfig.PollIntervalMillis = 200

	modbusProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewModbusActor(powerMeter, airQuality, logger)
	})
	modbusActorPID := context.Spawn(modbusProps)

	es := &eventstream.EventStream{}
	collector := &eventCollector{}
	es.Subscribe(collector.collect)

	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, modbusActorPID, es, logger)
	})
	monitorActorPID := context.Spawn(monitorProps)

	return as, monitorActorPID, collector
}

func TestMonitorActorPublishesUpdates(t *testing.T) {

	as, pid, collector := spawnMonitor(t,
		&sihas_modbus.TestPowerMeterModbusReader{},
		&sihas_modbus.TestAirQualityModbusReader{})
	defer as.Shutdown()

	time.Sleep(2 * time.Second)

	hcr, err := healthCheck(as.Root, pid)
	if err != nil {
		t.Error(err)
		return
	}
	assert.True(t, hcr.Healthy, "actor should be healthy")

	events := collector.snapshot()
	floats := map[string]float64{}
	online := map[string]bool{}
	for _, ev := range events {
		switch e := ev.(type) {
		case domain.FloatSensorUpdateEvent:
			floats[e.Id] = e.Value
		case domain.BinarySensorUpdateEvent:
			online[e.Id] = e.Value
		}
	}

	assert.Equal(t, float64(743), floats[domain.SENSOR_ID_METER_POWER], "meter power value")
	assert.Equal(t, 65.538, floats[domain.SENSOR_ID_METER_TOTAL_ENERGY], "meter total energy value")
	assert.Equal(t, float64(612), floats[domain.AirQualitySensorId("co2")], "co2 value")
	assert.Equal(t, 23.1, floats[domain.AirQualitySensorId("temperature")], "temperature value")
	assert.Equal(t, 45.5, floats[domain.AirQualitySensorId("humidity")], "humidity value")
	assert.True(t, online[domain.SENSOR_ID_METER_ONLINE], "meter online")
	assert.True(t, online[domain.SENSOR_ID_AQM_ONLINE], "aqm online")
}

func TestMonitorActorDropsAvailabilityOnFailure(t *testing.T) {

	as, pid, collector := spawnMonitor(t,
		&sihas_modbus.TestPowerMeterModbusReader{FailPolls: true},
		&sihas_modbus.TestAirQualityModbusReader{FailPolls: true})
	defer as.Shutdown()

	time.Sleep(2 * time.Second)

	hcr, err := healthCheck(as.Root, pid)
	if err != nil {
		t.Error(err)
		return
	}
	assert.True(t, hcr.Healthy, "actor should stay healthy on poll failures")

	events := collector.snapshot()
	var sawMeterOffline, sawAQMOffline, sawFloat bool
	for _, ev := range events {
		switch e := ev.(type) {
		case domain.FloatSensorUpdateEvent:
			sawFloat = true
		case domain.BinarySensorUpdateEvent:
			switch e.Id {
			case domain.SENSOR_ID_METER_ONLINE:
				assert.False(t, e.Value, "meter should report offline")
				sawMeterOffline = true
			case domain.SENSOR_ID_AQM_ONLINE:
				assert.False(t, e.Value, "aqm should report offline")
				sawAQMOffline = true
			}
		}
	}
	assert.True(t, sawMeterOffline, "meter availability event published")
	assert.True(t, sawAQMOffline, "aqm availability event published")
	assert.False(t, sawFloat, "no stale values republished on failure")
}

func healthCheck(ctx *actor.RootContext, pid *actor.PID) (*domain.ActorHealthResponse, error) {
	resp, err := ctx.RequestFuture(pid, domain.ActorHealthRequest{}, 2*time.Second).Result()
	if err != nil {
		return nil, err
	}
	hcr, ok := resp.(domain.ActorHealthResponse)
	if !ok {
		return nil, errors.New("unexpected response type")
	}
	return &hcr, nil
}
