package mqtt

import (
	"testing"

	"github.com/1105nam/sihas2mqtt/internal/config"
	"github.com/1105nam/sihas2mqtt/internal/core/domain"
	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "sihas2mqtt",
			HADiscoveryTopic: "homeassistant",
		},
	}
	return CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)
}

func TestStateTopics(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	assert.Equal("sihas2mqtt/bridge/state", client.BridgeStateTopic())
	assert.Equal("sihas2mqtt/sensor/aqm_co2/state", client.SensorStateTopic("aqm_co2"))
	assert.Equal("sihas2mqtt/binary_sensor/meter_online/state", client.BinarySensorStateTopic("meter_online"))
}

func TestHADiscoverySensorMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	info := &sihas_modbus.DeviceInfo{Type: "AQM", MAC: "a0b1c2d3e4f5", Model: "AQM-300"}
	dev := domain.AirQualityDevice(info)
	sensors := domain.AirQualitySensors(dev, info)

	co2 := sensors[0]
	msg := GenericSensorToHADiscoveryMessage(client, co2)

	assert.Equal("sihas2mqtt/sensor/aqm_co2/state", msg.StateTopic)
	assert.Equal("sihas2mqtt/bridge/state", msg.AvTopic)
	assert.Equal("carbon_dioxide", msg.DeviceClass)
	assert.Equal("AQM-a0b1c2d3e4f5-carbon_dioxide", msg.UniqueId)
	assert.Equal("mqtt", msg.Platform)
	assert.Empty(msg.PayloadOn)

	topic := HADiscoverySensorTopic(client.DiscoveryTopic(), co2)
	assert.Equal("homeassistant/sensor/sihas_aqm_a0b1c2d3e4f5/aqm_co2/config", topic)
}

func TestHADiscoveryBinarySensorMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	bridgeDev := domain.BridgeDevice("sihas2mqtt")
	bridge := domain.BridgeSensors(bridgeDev)[0]
	msg := GenericSensorToHADiscoveryMessage(client, bridge)

	assert.Equal("sihas2mqtt/bridge/state", msg.StateTopic)
	assert.Equal(MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Equal(MQTT_PAYLOAD_OFFLINE, msg.PayloadOff)
}
