package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	fitfaker "fit-faker"
)

// Config is the fitfaker configuration file
// (~/.config/fitfaker/config.yaml). Everything in it can be overridden by
// command-line flags.
type Config struct {
	// Device is a curated target name ("Edge 830") or empty for the
	// default.
	Device string `yaml:"device"`
	Serial uint32 `yaml:"serial"`

	// Platform selects a source platform quirk preset by name.
	Platform string `yaml:"platform"`

	Quirks struct {
		LenientFieldSize     *bool `yaml:"lenient_field_size"`
		ManufacturerFilter   *bool `yaml:"manufacturer_filter"`
		EnforceActivityOrder *bool `yaml:"enforce_activity_order"`
	} `yaml:"quirks"`

	Batch struct {
		Workers int    `yaml:"workers"`
		Suffix  string `yaml:"suffix"`
	} `yaml:"batch"`

	Logs logConfig `yaml:"logs"`
}

type logConfig struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "fitfaker", "config.yaml")
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = configPath()
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveProfile builds the target DeviceProfile from config plus flag
// overrides. Flag values win when non-empty/non-zero.
func resolveProfile(cfg Config, deviceFlag string, serialFlag uint32) (fitfaker.DeviceProfile, error) {
	name := cfg.Device
	if deviceFlag != "" {
		name = deviceFlag
	}
	serial := cfg.Serial
	if serialFlag != 0 {
		serial = serialFlag
	}
	if name == "" {
		profile := fitfaker.DefaultProfile()
		if serial != 0 {
			profile.SerialNumber = serial
		}
		return profile, nil
	}
	device, ok := fitfaker.LookupDevice(name)
	if !ok {
		return fitfaker.DeviceProfile{}, fmt.Errorf("unknown target device %q (see `fitfaker devices`)", name)
	}
	return device.Profile(serial), nil
}

// resolveQuirks starts from the platform preset (when configured) and
// applies explicit quirk overrides on top.
func resolveQuirks(cfg Config, platformFlag string) (fitfaker.Quirks, error) {
	var quirks fitfaker.Quirks

	name := cfg.Platform
	if platformFlag != "" {
		name = platformFlag
	}
	if name != "" {
		platform, ok := fitfaker.LookupPlatform(name)
		if !ok {
			return quirks, fmt.Errorf("unknown platform %q", name)
		}
		quirks = platform.Quirks
	}

	if cfg.Quirks.LenientFieldSize != nil {
		quirks.LenientFieldSize = *cfg.Quirks.LenientFieldSize
	}
	if cfg.Quirks.ManufacturerFilter != nil {
		if *cfg.Quirks.ManufacturerFilter {
			quirks.ManufacturerFilter = fitfaker.RewriteManufacturers()
		} else {
			quirks.ManufacturerFilter = nil
		}
	}
	if cfg.Quirks.EnforceActivityOrder != nil {
		quirks.EnforceActivityOrder = *cfg.Quirks.EnforceActivityOrder
	}
	return quirks, nil
}
