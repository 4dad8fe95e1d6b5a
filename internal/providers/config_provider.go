package providers

import (
	"fmt"
	"fsd/internal/models"
	"fsd/internal/structures"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "FSD_LOG_LEVEL")
	viper.BindEnv("tracker.tickInterval", "FSD_TICK_INTERVAL")
	viper.BindEnv("persistence.saveInterval", "FSD_SAVE_INTERVAL")
	viper.BindEnv("classifier.youtubeApiKey", "FSD_YOUTUBE_API_KEY")
	viper.BindEnv("upload.url", "FSD_UPLOAD_URL")
	viper.BindEnv("cache.enabled", "FSD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "FSD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Classifier.CacheCapacity <= 0 {
		conf.Classifier.CacheCapacity = models.DefaultContentCacheCapacity
	}
	if conf.Classifier.YoutubeAPIBase == "" {
		conf.Classifier.YoutubeAPIBase = "https://www.googleapis.com/youtube/v3"
	}

	conf.AppName = "FocusSessionDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
