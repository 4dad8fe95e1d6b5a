package providers

import (
	"fsd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validatorConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8844},
		Tracker:   structures.TrackerConfig{TickInterval: time.Second},
		Persistence: structures.Persistence{
			DataDir:      "/tmp/fsd",
			SaveInterval: 30 * time.Second,
		},
		SessionStore: structures.SessionStoreConfig{Dir: "/tmp/fsd/sessions"},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/fsd/logs",
		},
	}
}

func TestCnfValidator_ValidConfig(t *testing.T) {
	assert.NoError(t, NewCnfValidator(validatorConfig()).Validate())
}

func TestCnfValidator_MissingHost(t *testing.T) {
	conf := validatorConfig()
	conf.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_BadLogLevel(t *testing.T) {
	conf := validatorConfig()
	conf.Logger.Level = "loud"
	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestCnfValidator_ZeroPort(t *testing.T) {
	conf := validatorConfig()
	conf.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(conf).Validate())
}
