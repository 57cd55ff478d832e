package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.DBPath != "station.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MQTT.Broker != "mqtt://broker.hivemq.com:1883" {
		t.Errorf("broker default = %q", cfg.MQTT.Broker)
	}
	if cfg.MQTT.BaseTopic != "wellbeing/station" {
		t.Errorf("base topic default = %q", cfg.MQTT.BaseTopic)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yml := []byte(`
log:
  level: debug
mqtt:
  broker: mqtts://broker.local:8883
  base_topic: office/desk-3/
wifi:
  ssid: office
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.MQTT.Broker != "mqtts://broker.local:8883" {
		t.Errorf("Broker = %q", cfg.MQTT.Broker)
	}
	if cfg.MQTT.BaseTopic != "office/desk-3" {
		t.Errorf("BaseTopic = %q, trailing slash must be trimmed", cfg.MQTT.BaseTopic)
	}
	if cfg.WiFi.SSID != "office" {
		t.Errorf("SSID = %q", cfg.WiFi.SSID)
	}
}

func TestLoad_RejectsEmptyBroker(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("mqtt:\n  broker: \"\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for empty broker")
	}
}

func TestLoad_IgnoresRetiredHardwareKey(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("hardware:\n  backend: rpi\nlog:\n  level: warn\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}
