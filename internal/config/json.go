package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		BcryptCost       int `json:"bcrypt_cost"`
		DefaultListLimit int `json:"default_list_limit"`
		MaxListLimit     int `json:"max_list_limit"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN             string   `json:"dsn"`
			MaxOpenConns    int      `json:"max_open_conns"`
			MaxIdleConns    int      `json:"max_idle_conns"`
			ConnectAttempts int      `json:"connect_attempts"`
			ConnectBackoff  Duration `json:"connect_backoff"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			BcryptCost:       jsonCfg.App.BcryptCost,
			DefaultListLimit: jsonCfg.App.DefaultListLimit,
			MaxListLimit:     jsonCfg.App.MaxListLimit,
		},
		Storage: Storage{
			DB: DB{
				DSN:             jsonCfg.Storage.DB.DSN,
				MaxOpenConns:    jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:    jsonCfg.Storage.DB.MaxIdleConns,
				ConnectAttempts: jsonCfg.Storage.DB.ConnectAttempts,
				ConnectBackoff:  time.Duration(jsonCfg.Storage.DB.ConnectBackoff),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
