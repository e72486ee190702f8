package channel

import (
	"fmt"

	"github.com/dmitrymomot/intrabus/core/blocker"
	"github.com/dmitrymomot/intrabus/core/config"
)

// Config holds the registry settings read from the environment.
type Config struct {
	DefaultCapacity int    `env:"INTRABUS_DEFAULT_CAPACITY" envDefault:"10"`
	ChannelsFile    string `env:"INTRABUS_CHANNELS_FILE"`
}

type channelTable struct {
	Channels []blocker.Attr `yaml:"channels"`
}

// LoadChannelTable reads channel declarations from a YAML file:
//
//	channels:
//	  - name: /localization/pose
//	    capacity: 10
//	  - name: /control/command
//	    capacity: 1
func LoadChannelTable(path string) ([]blocker.Attr, error) {
	var table channelTable
	if err := config.LoadYAML(path, &table); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(table.Channels))
	for _, attr := range table.Channels {
		if attr.ChannelName == "" {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptyChannelName)
		}
		if err := attr.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, ok := seen[attr.ChannelName]; ok {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrDuplicateChannel, attr.ChannelName)
		}
		seen[attr.ChannelName] = struct{}{}
	}
	return table.Channels, nil
}

// NewRegistryFromConfig builds a registry from cfg. Options are applied after the
// configured values and may override them.
func NewRegistryFromConfig(cfg Config, opts ...RegistryOption) (*Registry, error) {
	base := []RegistryOption{WithDefaultCapacity(cfg.DefaultCapacity)}
	if cfg.ChannelsFile != "" {
		attrs, err := LoadChannelTable(cfg.ChannelsFile)
		if err != nil {
			return nil, err
		}
		base = append(base, WithChannels(attrs...))
	}
	return NewRegistry(append(base, opts...)...), nil
}
