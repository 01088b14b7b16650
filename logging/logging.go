package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v3"
)

var LogConfigEnv = "SITECONF_LOG_CONFIG"

func IntIf(e *zerolog.Event, k string, v *int) {
	if v != nil {
		e.Int(k, *v)
	}
}

func BoolIf(e *zerolog.Event, k string, v *bool) {
	if v != nil {
		e.Bool(k, *v)
	}
}

func StrIf(e *zerolog.Event, k string, v *string) {
	if v != nil {
		e.Str(k, *v)
	}
}

// LoadLogging configures the global logger from the zeroconfig YAML file
// named by SITECONF_LOG_CONFIG. Without it, logs go to stderr in console
// format at info level.
func LoadLogging() error {
	path := os.Getenv(LogConfigEnv)
	if path == "" {
		log.Logger = Console(os.Stderr, zerolog.InfoLevel)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", LogConfigEnv, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", LogConfigEnv, err)
	}
	logger, err := Compile(data)
	if err != nil {
		return err
	}
	log.Logger = *logger
	return nil
}

// Compile builds a logger from zeroconfig YAML.
func Compile(data []byte) (*zerolog.Logger, error) {
	var cfg zeroconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s is not valid yaml: %w", LogConfigEnv, err)
	}
	logger, err := cfg.Compile()
	if err != nil {
		return nil, fmt.Errorf("%s is not valid for zerolog, see go.mau.fi/zeroconfig documentation: %w", LogConfigEnv, err)
	}
	return logger, nil
}

func Console(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
