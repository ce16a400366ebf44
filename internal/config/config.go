// Package config loads the small set of tunables this tool exposes:
// how short a title can be before it's dropped from a listing, and how
// many parsed VIDEO_TS folders stay warm in the process-wide cache.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	keyTitleMinSeconds = "title_min_seconds"
	keyLRUCapacity     = "lru_capacity"

	// EnvPrefix namespaces environment overrides, e.g. DVDVIDEO_LRU_CAPACITY.
	EnvPrefix = "DVDVIDEO"
)

// Config holds the resolved values of every knob.
type Config struct {
	TitleMinSeconds float64
	LRUCapacity     int
}

// Load reads configuration from (in ascending priority) built-in
// defaults, an optional config file, and DVDVIDEO_*-prefixed environment
// variables.
//
// Grounded on the zellyn/diskii and tassa-yoniso-manasi-karoto-langkit /
// therealutkarshpriyadarshi-transcode manifests (spf13/viper is the
// pack's config library of choice for cobra-based CLIs).
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault(keyTitleMinSeconds, 10.0)
	v.SetDefault(keyLRUCapacity, 20)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		TitleMinSeconds: v.GetFloat64(keyTitleMinSeconds),
		LRUCapacity:     v.GetInt(keyLRUCapacity),
	}, nil
}
