/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type StoreConfig struct {
	Driver string `yaml:"driver"` // "sqlite" | "postgres"
	Path   string `yaml:"path"`   // empty: probe for word_master.db
	DSN    string `yaml:"dsn"`
	// The Postgres password is not stored on disk; it lives in the OS keychain.
}

type UIConfig struct {
	FilterMode  string `yaml:"filter_mode"`  // "yomi" | "category"
	StartScreen string `yaml:"start_screen"` // screen key, "home" by default
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type StateConfig struct {
	Dir string `yaml:"dir"`
}

type ExportConfig struct {
	FontPath     string `yaml:"font_path"`
	CardsPerPage int    `yaml:"cards_per_page"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Store         StoreConfig   `yaml:"store"`
	UI            UIConfig      `yaml:"ui"`
	Logging       LoggingConfig `yaml:"logging"`
	State         StateConfig   `yaml:"state"`
	Export        ExportConfig  `yaml:"export"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Store:         StoreConfig{Driver: "sqlite"},
		UI:            UIConfig{FilterMode: "yomi", StartScreen: "home"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Export:        ExportConfig{CardsPerPage: 8},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "WB_CONFIG"
	EnvDBDriver   = "WB_DB_DRIVER"
	EnvDBPath     = "WB_DB_PATH"
	EnvDBDSN      = "WB_DB_DSN"
	EnvStateDir   = "WB_STATE_DIR"
	EnvFilterMode = "WB_FILTER_MODE"
	EnvFontPath   = "WB_FONT_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "WB_LOG_LEVEL"
	EnvLogFormat = "WB_LOG_FORMAT"
	EnvLogSource = "WB_LOG_SOURCE"
	EnvLogFile   = "WB_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService  = "Wordbook"
	keyringPassword = "postgres_password"
)

// secretStore abstracts the keyring, so we can stub it in tests.
var secretStore SecretStore = osKeyring{}

type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements SecretStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(base, "Wordbook"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Wordbook"), nil
	default: // linux and others
		return filepath.Join(home, ".config", "wordbook"), nil
	}
}

// ConfigPath returns the per-user config file path. WB_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return homedir.Expand(p)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StateDir returns where session state and crash reports go.
func (c AppConfig) StateDir() (string, error) {
	if d := strings.TrimSpace(c.State.Dir); d != "" {
		return homedir.Expand(d)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}

// Load reads the user config file (if present), applies defaults and merges environment overrides.
// The Postgres password is read from the keyring and returned separately, never kept in the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, "", fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, "", fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	var pw string
	if cfg.Store.Driver == "postgres" {
		pw, _ = secretStore.Get(keyringService, keyringPassword)
	}
	return cfg, pw, nil
}

// Save writes the user config YAML and persists the password into the OS keyring (if non-empty).
func Save(cfg AppConfig, password string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if password != "" {
		if err := secretStore.Set(keyringService, keyringPassword, password); err != nil {
			return fmt.Errorf("store password in keyring: %w", err)
		}
	}
	return nil
}

// ForgetPassword removes the stored Postgres password.
func ForgetPassword() error {
	err := secretStore.Delete(keyringService, keyringPassword)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// PostgresDSN returns the configured DSN with password filled in when the DSN has none.
func (c AppConfig) PostgresDSN(password string) (string, error) {
	dsn := strings.TrimSpace(c.Store.DSN)
	if dsn == "" {
		return "", errors.New("store.dsn is empty")
	}
	if password == "" {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		// key=value form
		if strings.Contains(dsn, "password=") {
			return dsn, nil
		}
		return dsn + " password=" + quoteKV(password), nil
	}
	if u.User == nil {
		return "", errors.New("store.dsn has no user")
	}
	if _, set := u.User.Password(); set {
		return dsn, nil
	}
	u.User = url.UserPassword(u.User.Username(), password)
	return u.String(), nil
}

func quoteKV(s string) string {
	if !strings.ContainsAny(s, " '\\") {
		return s
	}
	r := strings.NewReplacer("\\", "\\\\", "'", "\\'")
	return "'" + r.Replace(s) + "'"
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// store
	if v := strings.ToLower(strings.TrimSpace(src.Store.Driver)); v != "" {
		dst.Store.Driver = v
	}
	if v := strings.TrimSpace(src.Store.Path); v != "" {
		dst.Store.Path = v
	}
	if v := strings.TrimSpace(src.Store.DSN); v != "" {
		dst.Store.DSN = v
	}
	// ui
	if v := strings.ToLower(strings.TrimSpace(src.UI.FilterMode)); v != "" {
		dst.UI.FilterMode = v
	}
	if v := strings.ToLower(strings.TrimSpace(src.UI.StartScreen)); v != "" {
		dst.UI.StartScreen = v
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// state / export
	if v := strings.TrimSpace(src.State.Dir); v != "" {
		dst.State.Dir = v
	}
	if v := strings.TrimSpace(src.Export.FontPath); v != "" {
		dst.Export.FontPath = v
	}
	if src.Export.CardsPerPage > 0 {
		dst.Export.CardsPerPage = src.Export.CardsPerPage
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDBDriver)); v != "" {
		cfg.Store.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBDSN)); v != "" {
		cfg.Store.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateDir)); v != "" {
		cfg.State.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFilterMode)); v != "" {
		cfg.UI.FilterMode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontPath)); v != "" {
		cfg.Export.FontPath = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"store.driver":     EnvDBDriver,
	"store.path":       EnvDBPath,
	"store.dsn":        EnvDBDSN,
	"state.dir":        EnvStateDir,
	"ui.filter_mode":   EnvFilterMode,
	"export.font_path": EnvFontPath,
	"logging.level":    EnvLogLevel,
	"logging.format":   EnvLogFormat,
	"logging.source":   EnvLogSource,
	"logging.file":     EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// Overridden lists the config keys currently taken from the environment, sorted.
func Overridden() []string {
	var keys []string
	for k := range envKeys {
		if _, ok := EnvOverrideFor(k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

const maxCardsPerPage = 32

// Validate reports settings that cannot work.
func (c AppConfig) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case "sqlite":
	case "postgres":
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, errors.New("store.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: want sqlite or postgres", c.Store.Driver))
	}
	if c.UI.FilterMode != "yomi" && c.UI.FilterMode != "category" {
		errs = append(errs, fmt.Errorf("ui.filter_mode %q: want yomi or category", c.UI.FilterMode))
	}
	if c.Export.CardsPerPage < 1 || c.Export.CardsPerPage > maxCardsPerPage {
		errs = append(errs, fmt.Errorf("export.cards_per_page %d: want 1..%d", c.Export.CardsPerPage, maxCardsPerPage))
	}
	return errors.Join(errs...)
}
