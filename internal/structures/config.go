package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	DataDir      string        `yaml:"dataDir" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type TrackerConfig struct {
	TickInterval time.Duration `yaml:"tickInterval" validate:"required|min:1"`
}

type ClassifierConfig struct {
	CacheCapacity  int    `yaml:"cacheCapacity"`
	YoutubeAPIKey  string `yaml:"youtubeApiKey"`
	YoutubeAPIBase string `yaml:"youtubeApiBase"`
}

type UploadConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionStoreConfig struct {
	Dir string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName      string
	Debug        bool
	Path         string
	Tracker      TrackerConfig      `yaml:"tracker"`
	Classifier   ClassifierConfig   `yaml:"classifier"`
	Upload       UploadConfig       `yaml:"upload"`
	SessionStore SessionStoreConfig `yaml:"sessionStore"`
	WebServer    Server             `yaml:"webServer"`
	Persistence  Persistence        `yaml:"persistence"`
	Logger       LoggerConfig       `yaml:"logger"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}
