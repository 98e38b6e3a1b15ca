package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "events.log"
)

type Configuration struct {
	configFs afero.Fs

	// Prompt is written before every command line is read.
	Prompt string `json:"prompt" validate:"required"`

	// ColorPrompt renders the prompt in color on terminals.
	ColorPrompt bool `json:"color_prompt"`

	// Motd is printed once when an interactive session starts.
	Motd string `json:"motd"`

	// MaxBackgroundJobs bounds how many background children are
	// tracked at once.
	MaxBackgroundJobs int `json:"max_background_jobs" validate:"gte=1"`

	// EventLog turns on the JSON lines event log.
	EventLog bool `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenAppLog opens the event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration backed by a throwaway
// filesystem.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
