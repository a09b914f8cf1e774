package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ifpr-pinhais/campusconnect/internal/flagx"
	"github.com/ifpr-pinhais/campusconnect/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the remote timeout either as a
// string like "10s" or as integer nanoseconds.
type jsonConfig struct {
	Backend      string `json:"backend"`
	DatabasePath string `json:"database_path"`
	Remote       struct {
		BaseURL string         `json:"base_url"`
		Timeout timex.Duration `json:"timeout"`
	} `json:"remote"`
	Log struct {
		Level  *string `json:"level"`
		Pretty *bool   `json:"pretty"`
	} `json:"log"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. No flag means no JSON layer. Only fields present in
// the file override the current values.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Backend != "" {
		cfg.Backend = Backend(jc.Backend)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Remote.BaseURL != "" {
		cfg.Remote.BaseURL = jc.Remote.BaseURL
	}
	if jc.Remote.Timeout.Duration != 0 {
		cfg.Remote.Timeout = time.Duration(jc.Remote.Timeout.Duration)
	}
	if jc.Log.Level != nil {
		cfg.Log.Level = *jc.Log.Level
	}
	if jc.Log.Pretty != nil {
		cfg.Log.Pretty = *jc.Log.Pretty
	}
	return nil
}
