// Package config provides type-safe environment variable loading with caching
// using Go generics, plus YAML file decoding for static tables.
//
// The package loads a .env file on first use (a missing file is not an error) and
// uses the caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type BusConfig struct {
//		DefaultCapacity int    `env:"INTRABUS_DEFAULT_CAPACITY" envDefault:"10"`
//		ChannelsFile    string `env:"INTRABUS_CHANNELS_FILE"`
//	}
//
//	func main() {
//		var cfg BusConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is parsed only once per process:
//
//	var cfg1 BusConfig
//	config.Load(&cfg1) // parses the environment
//
//	var cfg2 BusConfig
//	config.Load(&cfg2) // returns the cached value, cfg1 == cfg2
//
// Different types are cached independently. Reset clears the cache in tests.
//
// # YAML Files
//
//	var table struct {
//		Channels []blocker.Attr `yaml:"channels"`
//	}
//	if err := config.LoadYAML("channels.yaml", &table); err != nil {
//		return err
//	}
package config
