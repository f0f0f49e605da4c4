package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/1105nam/sihas2mqtt/pkg/sihas_modbus"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Devices  []DeviceConfig `mapstructure:"devices"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`

	MonitorConfig MonitorConfig `mapstructure:"monitor"`
	Port          uint          `mapstructure:"port"`
	HttpLog       bool          `mapstructure:"http_log"`
}

type DeviceConfig struct {
	Type string `mapstructure:"type"`
	IP   string `mapstructure:"ip"`
	Port uint   `mapstructure:"port"`
	MAC  string `mapstructure:"mac"`
	// Cfg is the device's opaque config value, passed straight through to
	// the Modbus reader as the unit id. Must fit in 8 bits.
	Cfg uint16 `mapstructure:"cfg"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

// Validate rejects unsupported device types before any entity is built.
func (d DeviceConfig) Validate() error {
	switch d.Type {
	case sihas_modbus.DeviceTypePowerMeter, sihas_modbus.DeviceTypeAirQuality:
	default:
		return fmt.Errorf("not implemented device type: %s", d.Type)
	}
	if d.IP == "" {
		return fmt.Errorf("device %s: ip is required", d.Type)
	}
	if d.MAC == "" {
		return fmt.Errorf("device %s: mac is required", d.Type)
	}
	if d.Cfg > 255 {
		return fmt.Errorf("device %s: cfg %d out of range, must be <= 255", d.Type, d.Cfg)
	}
	return nil
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
