package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceConfigValidate(t *testing.T) {

	assert := assert.New(t)

	dev := DeviceConfig{Type: "PMM", IP: "10.0.0.10", MAC: "a0b1c2d3e4f5", Cfg: 1}
	assert.NoError(dev.Validate())

	dev.Type = "AQM"
	assert.NoError(dev.Validate())

	dev.Type = "ACM"
	err := dev.Validate()
	assert.Error(err)
	assert.Contains(err.Error(), "not implemented device type")
}

func TestDeviceConfigValidateMissingFields(t *testing.T) {

	assert := assert.New(t)

	dev := DeviceConfig{Type: "AQM", MAC: "a0b1c2d3e4f5"}
	assert.Error(dev.Validate(), "missing ip")

	dev = DeviceConfig{Type: "AQM", IP: "10.0.0.11"}
	assert.Error(dev.Validate(), "missing mac")
}

func TestDeviceConfigValidateCfgBounds(t *testing.T) {

	assert := assert.New(t)

	dev := DeviceConfig{Type: "PMM", IP: "10.0.0.10", MAC: "a0b1c2d3e4f5", Cfg: 255}
	assert.NoError(dev.Validate())

	dev.Cfg = 256
	err := dev.Validate()
	assert.Error(err)
	assert.Contains(err.Error(), "out of range")
}

func TestCheckMQTTTopic(t *testing.T) {

	assert := assert.New(t)

	topic, err := CheckMQTTTopic("SihasBridge_1")
	assert.NoError(err)
	assert.Equal("sihasbridge_1", topic)

	_, err = CheckMQTTTopic("bad/topic")
	assert.Error(err)
}
