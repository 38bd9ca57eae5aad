// Package config loads the allocator settings shared by the API server and
// the CLI. Settings come from an optional YAML file layered over defaults;
// pointing at a file that does not exist is an error, silence is not.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkrawiec/netplanner/internal/domain"
)

type Settings struct {
	// BaseNetwork is where the allocator starts probing for free blocks.
	BaseNetwork string `yaml:"base_network"`

	// ProbeLimit caps the candidate blocks tried per mask before the
	// allocator widens to the next one.
	ProbeLimit int `yaml:"probe_limit"`

	// BufferPercent is the headroom added on top of the static unit
	// count when sizing a subnet.
	BufferPercent int `yaml:"buffer_percent"`
}

func Default() Settings {
	return Settings{
		BaseNetwork:   domain.DefaultBaseNetwork.String(),
		ProbeLimit:    domain.DefaultProbeLimit,
		BufferPercent: domain.DefaultBufferPercent,
	}
}

// LoadFile reads settings from path, layered over the defaults. An empty
// path returns the defaults unchanged.
func LoadFile(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}

	return settings, nil
}

func (s Settings) Validate() error {
	var errs []error

	addr, err := netip.ParseAddr(s.BaseNetwork)
	if err != nil || !addr.Is4() {
		errs = append(errs, fmt.Errorf("base_network %q is not an IPv4 address", s.BaseNetwork))
	}
	if s.ProbeLimit < 1 {
		errs = append(errs, fmt.Errorf("probe_limit must be at least 1, got %d", s.ProbeLimit))
	}
	if s.BufferPercent < 0 {
		errs = append(errs, fmt.Errorf("buffer_percent must not be negative, got %d", s.BufferPercent))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Planner converts the settings into allocator terms. Validate first; an
// unparsable base network comes through as the zero address here.
func (s Settings) Planner() domain.PlannerSettings {
	addr, _ := netip.ParseAddr(s.BaseNetwork)

	return domain.PlannerSettings{
		BaseNetwork:   addr,
		ProbeLimit:    s.ProbeLimit,
		BufferPercent: s.BufferPercent,
	}
}
