package events

import (
	. "github.com/1105nam/sihas2mqtt/internal/core/domain"

	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"
)

// AirQualityToUpdateEvents projects every measurement out of one AQM
// register snapshot. A snapshot too short for any measurement index is an
// error for the whole cycle; nothing partial is emitted.
func AirQualityToUpdateEvents(regs sihas_modbus.Registers) ([]any, error) {
	var events []any

	for _, m := range sihas_modbus.AQMMeasurements() {
		value, err := m.Decode(regs)
		if err != nil {
			return nil, err
		}
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: AirQualitySensorId(m.Key),
			},
			Value:    value,
			Decimals: m.Decimals,
		})
	}

	return events, nil
}

func EnergyMeterToUpdateEvents(em *sihas_modbus.EnergyMeter) []any {
	var events []any

	// Instantaneous power
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_METER_POWER,
		},
		Value: em.InstantPowerWatt,
	})
	// Accumulated energy counter
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_METER_TOTAL_ENERGY,
		},
		Value:    em.TotalEnergyKWh,
		Decimals: 3,
	})

	return events
}

func PowerMeterOnlineUpdateEvent(online bool) any {
	return BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_METER_ONLINE,
		},
		Value: online,
	}
}

func AirQualityOnlineUpdateEvent(online bool) any {
	return BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_AQM_ONLINE,
		},
		Value: online,
	}
}
