package util

import (
	"github.com/1105nam/sihas2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Devices: []config.DeviceConfig{
			{
				Type: "PMM",
				IP:   "-.-.-.-",
				Port: 502,
				MAC:  "a0b1c2d3e4f5",
				Cfg:  1,
			},
			{
				Type: "AQM",
				IP:   "-.-.-.-",
				Port: 502,
				MAC:  "f5e4d3c2b1a0",
				Cfg:  1,
			},
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "sihas2mqtt",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		Port: 8080,
	}
}
