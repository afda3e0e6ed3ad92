// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	Auth struct {
		AccessTokenSecret      string `json:"access_token_secret"`
		RefreshTokenSecret     string `json:"refresh_token_secret"`
		SigningAlgorithm       string `json:"signing_algorithm"`
		AccessTokenTTLMinutes  int    `json:"access_token_ttl_minutes"`
		RefreshTokenTTLMinutes int    `json:"refresh_token_ttl_minutes"`
		TokenIssuer            string `json:"token_issuer"`
		LoginField             string `json:"login_field"`
		PasswordHashCost       int    `json:"password_hash_cost"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		CORSOrigins       []string `json:"cors_origins"`
		AuthRatePerMinute int      `json:"auth_rate_per_minute"`
	} `json:"server,omitempty"`

	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`
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
		Auth: Auth{
			AccessTokenSecret:      jsonCfg.Auth.AccessTokenSecret,
			RefreshTokenSecret:     jsonCfg.Auth.RefreshTokenSecret,
			SigningAlgorithm:       jsonCfg.Auth.SigningAlgorithm,
			AccessTokenTTLMinutes:  jsonCfg.Auth.AccessTokenTTLMinutes,
			RefreshTokenTTLMinutes: jsonCfg.Auth.RefreshTokenTTLMinutes,
			TokenIssuer:            jsonCfg.Auth.TokenIssuer,
			LoginField:             jsonCfg.Auth.LoginField,
			PasswordHashCost:       jsonCfg.Auth.PasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			CORSOrigins:       jsonCfg.Server.CORSOrigins,
			AuthRatePerMinute: jsonCfg.Server.AuthRatePerMinute,
		},
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
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
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
