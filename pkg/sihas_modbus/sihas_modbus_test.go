package sihas_modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAQMDecodeTransforms(t *testing.T) {

	assert := assert.New(t)

	regs := Registers{231, 455, 612, 8, 14, 102, 317}

	cases := []struct {
		key   string
		value float64
	}{
		{"temperature", 23.1},
		{"humidity", 45.5},
		{"co2", 612},
		{"pm25", 8},
		{"pm10", 14},
		{"tvoc", 102},
		{"illuminance", 317},
	}

	for _, c := range cases {
		m, ok := AQMMeasurement(c.key)
		assert.True(ok, c.key)
		v, err := m.Decode(regs)
		assert.NoError(err, c.key)
		assert.Equal(c.value, v, c.key)
	}
}

func TestAQMDecodeShortSnapshot(t *testing.T) {

	assert := assert.New(t)

	// covers temperature and humidity only
	regs := Registers{231, 455}

	m, ok := AQMMeasurement("illuminance")
	assert.True(ok)
	_, err := m.Decode(regs)
	assert.Error(err)

	m, ok = AQMMeasurement("humidity")
	assert.True(ok)
	v, err := m.Decode(regs)
	assert.NoError(err)
	assert.Equal(45.5, v)
}

func TestCombineEnergyWords(t *testing.T) {

	assert := assert.New(t)

	regs := make(Registers, PMMRegisterCount)
	regs[PMMRegAccWattHourHigh] = 1
	regs[PMMRegAccWattHourLow] = 2

	total, err := regs.CombineEnergyWords()
	assert.NoError(err)
	assert.Equal(uint32(65538), total)

	_, err = Registers{0, 0, 0}.CombineEnergyWords()
	assert.Error(err, "snapshot without counter words")
}

func TestSnapshotStateStaleOnFailure(t *testing.T) {

	assert := assert.New(t)

	state := SnapshotState{}
	assert.False(state.Available())

	state.ApplyPoll(Registers{231, 455, 612, 8, 14, 102, 317})
	assert.True(state.Available())

	m, _ := AQMMeasurement("co2")
	v, err := state.Value(m)
	assert.NoError(err)
	assert.Equal(float64(612), v)

	// unreachable device: value stays, availability drops
	state.ApplyPoll(nil)
	assert.False(state.Available())
	v, err = state.Value(m)
	assert.NoError(err)
	assert.Equal(float64(612), v)
}

func TestPowerMeterEnergyTotal(t *testing.T) {

	assert := assert.New(t)

	reader, err := CreateTestPowerMeterModbusReader()
	assert.NoError(err)

	em, err := reader.GetEnergyMeter()
	assert.NoError(err)
	assert.Equal(uint32(65538), em.TotalEnergyWh)
	assert.Equal(65.538, em.TotalEnergyKWh)
	assert.Equal(float64(743), em.InstantPowerWatt)
}
