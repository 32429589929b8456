// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("ADMIDIO_BRIDGE_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// Redacted returns a copy of the config with store passwords blanked,
// safe for dumping to a terminal or log.
func Redacted(c Config) Config {
	c.External.Password = "<redacted>"
	c.Host.Password = "<redacted>"

	return c
}

// validate minimal config settings for the bridge and apply defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.External.Name == "" {
		return errors.Wrap(ErrExternalDBNameEmpty, invalidErrMessage)
	}

	if c.Host.Name == "" {
		return errors.Wrap(ErrHostDBNameEmpty, invalidErrMessage)
	}

	if c.External.Engine == "" {
		c.External.Engine = EngineMySQL // Admidio ships on MySQL/MariaDB
	}

	if c.Host.Engine == "" {
		c.Host.Engine = EngineMySQL
	}

	for _, engine := range []string{c.External.Engine, c.Host.Engine} {
		switch engine {
		case EngineMySQL, EnginePostgres, EngineSQLite:
		default:
			return errors.Wrap(ErrUnknownEngine, invalidErrMessage)
		}
	}

	if c.External.Prefix == "" {
		c.External.Prefix = "adm_"
	}

	if c.Bridge.ResponseType == "" {
		c.Bridge.ResponseType = "Admidio"
	}

	return nil
}
