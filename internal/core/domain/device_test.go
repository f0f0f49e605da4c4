package domain

import (
	"fmt"
	"testing"

	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/stretchr/testify/assert"
)

func TestAirQualitySensorUniqueIds(t *testing.T) {

	assert := assert.New(t)

	info := &sihas_modbus.DeviceInfo{Type: "AQM", MAC: "A0B1C2D3E4F5", Model: "AQM-300"}
	dev := AirQualityDevice(info)
	sensors := AirQualitySensors(dev, info)

	measurements := sihas_modbus.AQMMeasurements()
	// seven measurement sensors plus the online diagnostic
	assert.Len(sensors, len(measurements)+1)

	seen := map[string]bool{}
	for i, m := range measurements {
		id := sensors[i].UniqueId
		assert.Equal(fmt.Sprintf("AQM-a0b1c2d3e4f5-%s", m.DeviceClass), id, m.Key)
		assert.False(seen[id], "unique id repeated: %s", id)
		seen[id] = true
	}
	assert.Len(seen, 7)
}

func TestAirQualitySensorUniqueIdsDeterministic(t *testing.T) {

	assert := assert.New(t)

	info := &sihas_modbus.DeviceInfo{Type: "AQM", MAC: "f5e4d3c2b1a0", Model: "AQM-300"}
	dev := AirQualityDevice(info)

	first := AirQualitySensors(dev, info)
	second := AirQualitySensors(dev, info)

	assert.Equal(len(first), len(second))
	for i := range first {
		assert.Equal(first[i].UniqueId, second[i].UniqueId)
	}
}
