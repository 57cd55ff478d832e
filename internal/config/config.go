// Package config loads deployment settings (network, broker, storage, log
// level) with viper. Timing and comfort thresholds are not configurable; they
// live in package thresholds.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved station configuration.
type Config struct {
	LogLevel string
	HTTPPort string
	DBPath   string
	WiFi     WiFi
	MQTT     MQTT
}

// WiFi describes the wireless association.
type WiFi struct {
	Interface string
	SSID      string
	Password  string
}

// MQTT describes the broker session.
type MQTT struct {
	Broker    string // mqtt://host:1883 or mqtts://host:8883
	Username  string
	Password  string
	BaseTopic string
}

// setDefaults registers the compiled-in values used when config.yml is absent
// or leaves a key unset.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("http.port", "8080")
	v.SetDefault("db.path", "station.db")
	v.SetDefault("wifi.interface", "")
	v.SetDefault("wifi.ssid", "Wokwi-GUEST")
	v.SetDefault("wifi.password", "")
	v.SetDefault("mqtt.broker", "mqtt://broker.hivemq.com:1883")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.base_topic", "wellbeing/station")
}

// Load reads configs/config.yml (or the file set in STATION_CONFIG) on top of
// the defaults. A missing file is not an error.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		if len(paths) == 0 {
			paths = []string{"configs"}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		LogLevel: v.GetString("log.level"),
		HTTPPort: v.GetString("http.port"),
		DBPath:   v.GetString("db.path"),
		WiFi: WiFi{
			Interface: v.GetString("wifi.interface"),
			SSID:      v.GetString("wifi.ssid"),
			Password:  v.GetString("wifi.password"),
		},
		MQTT: MQTT{
			Broker:    v.GetString("mqtt.broker"),
			Username:  v.GetString("mqtt.username"),
			Password:  v.GetString("mqtt.password"),
			BaseTopic: strings.TrimSuffix(v.GetString("mqtt.base_topic"), "/"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MQTT.Broker == "" {
		return errors.New("mqtt.broker must be set")
	}
	if c.MQTT.BaseTopic == "" {
		return errors.New("mqtt.base_topic must be set")
	}
	return nil
}
