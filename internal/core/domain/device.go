package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE       = "bridge"
	SENSOR_ID_METER_POWER        = "meter_power"
	SENSOR_ID_METER_TOTAL_ENERGY = "meter_total_energy"
	SENSOR_ID_METER_ONLINE       = "meter_online"
	SENSOR_ID_AQM_ONLINE         = "aqm_online"

	STATE_CLASS_MEASUREMENT = "measurement"
	STATE_CLASS_TOTAL       = "total"

	DEVICE_CLASS_ENERGY       = "energy"
	DEVICE_CLASS_POWER        = "power"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"

	ENTITY_CLASS_DIAGNOSTIC = "diagnostic"

	SENSOR_TYPE_SENSOR = "sensor"
	SENSOR_TYPE_BINARY = "binary_sensor"

	ICON_POWER_METER = "mdi:transmission-tower"
)

// AirQualitySensorId is the state-topic id of one AQM measurement.
func AirQualitySensorId(key string) string {
	return fmt.Sprintf("aqm_%s", key)
}

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("sihas_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "SiHAS",
		Model:        "sihas2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("SiHAS Bridge %s", md5HashShort(baseTopic)),
	}
}

func PowerMeterDevice(info *sihas_modbus.DeviceInfo) Device {
	return Device{
		Id:           fmt.Sprintf("sihas_pmm_%s", strings.ToLower(info.MAC)),
		Manufacturer: "SiHAS",
		Model:        info.Model,
		Name:         fmt.Sprintf("SiHAS %s %s", info.Model, strings.ToLower(info.MAC)),
	}
}

func AirQualityDevice(info *sihas_modbus.DeviceInfo) Device {
	return Device{
		Id:           fmt.Sprintf("sihas_aqm_%s", strings.ToLower(info.MAC)),
		Manufacturer: "SiHAS",
		Model:        info.Model,
		Name:         fmt.Sprintf("SiHAS %s %s", info.Model, strings.ToLower(info.MAC)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func PowerMeterSensors(meterDevice Device, info *sihas_modbus.DeviceInfo) []GenericSensor {

	var sensors []GenericSensor

	// Instantaneous power
	sensors = append(sensors, GenericSensor{
		Device:            meterDevice,
		Id:                SENSOR_ID_METER_POWER,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Power",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_POWER,
		UnitOfMeasurement: "W",
		Icon:              ICON_POWER_METER,
		UniqueId:          powerMeterUniqueId(info.MAC, DEVICE_CLASS_POWER),
	})

	// Accumulated energy counter
	sensors = append(sensors, GenericSensor{
		Device:            meterDevice,
		Id:                SENSOR_ID_METER_TOTAL_ENERGY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Total energy",
		StateClass:        STATE_CLASS_TOTAL,
		DeviceClass:       DEVICE_CLASS_ENERGY,
		UnitOfMeasurement: "kWh",
		Icon:              ICON_POWER_METER,
		UniqueId:          powerMeterUniqueId(info.MAC, DEVICE_CLASS_ENERGY),
	})

	// Device reachability
	sensors = append(sensors, GenericSensor{
		Device:         meterDevice,
		Id:             SENSOR_ID_METER_ONLINE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Online",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       powerMeterUniqueId(info.MAC, DEVICE_CLASS_CONNECTIVITY),
	})

	return sensors
}

// AirQualitySensors builds one virtual sensor per measurement of the
// shared AQM register snapshot.
func AirQualitySensors(aqmDevice Device, info *sihas_modbus.DeviceInfo) []GenericSensor {

	var sensors []GenericSensor

	for _, m := range sihas_modbus.AQMMeasurements() {
		sensors = append(sensors, GenericSensor{
			Device:            aqmDevice,
			Id:                AirQualitySensorId(m.Key),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              m.Name,
			StateClass:        STATE_CLASS_MEASUREMENT,
			DeviceClass:       m.DeviceClass,
			UnitOfMeasurement: m.Unit,
			UniqueId:          AirQualityUniqueId(info.MAC, m.DeviceClass),
		})
	}

	sensors = append(sensors, GenericSensor{
		Device:         aqmDevice,
		Id:             SENSOR_ID_AQM_ONLINE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Online",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       AirQualityUniqueId(info.MAC, DEVICE_CLASS_CONNECTIVITY),
	})

	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// AirQualityUniqueId follows the device firmware convention:
// AQM-{mac}-{device_class}.
func AirQualityUniqueId(mac, deviceClass string) string {
	return fmt.Sprintf("AQM-%s-%s", strings.ToLower(mac), deviceClass)
}

func powerMeterUniqueId(mac, deviceClass string) string {
	return fmt.Sprintf("PMM-%s-%s", strings.ToLower(mac), deviceClass)
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5HashShort(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])[0:8]
}
