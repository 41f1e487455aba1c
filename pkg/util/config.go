package util

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/streetmapx/pkg"
	"github.com/spf13/viper"
)

func setConfigDefaults() {
	viper.SetDefault("MAP_FILE", "./data/berkeley-2019.osm.xml")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ROUTE_TIMEOUT_SECONDS", pkg.DEFAULT_ROUTE_TIMEOUT_SECONDS)
	viper.SetDefault("PREFIX_CACHE_SIZE", pkg.DEFAULT_PREFIX_CACHE_SIZE)
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("ALT_LANDMARKS", 0)
}

// ReadConfig. read ./data/config.yaml (or any config.* viper understands). a missing config file is not an error,
// every key has a default and can be overridden from the environment.
func ReadConfig() error {
	setConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// MapBoundsFromConfig. returns the bounding box of the map (upper-left & lower-right corner) if all four
// ROOT_* keys are configured.
func MapBoundsFromConfig() (ulLat, ulLon, lrLat, lrLon float64, ok bool) {
	keys := []string{"ROOT_ULLAT", "ROOT_ULLON", "ROOT_LRLAT", "ROOT_LRLON"}
	for _, k := range keys {
		if !viper.IsSet(k) {
			return 0, 0, 0, 0, false
		}
	}
	return viper.GetFloat64("ROOT_ULLAT"), viper.GetFloat64("ROOT_ULLON"),
		viper.GetFloat64("ROOT_LRLAT"), viper.GetFloat64("ROOT_LRLON"), true
}
