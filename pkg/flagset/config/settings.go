package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/randalmurphal/flagset/pkg/flagset"
	"github.com/randalmurphal/flagset/pkg/flagset/persist"
)

// settingsValidate is shared; validator caches struct metadata per instance.
var settingsValidate = validator.New()

// Settings configures how a command-line or service process builds its
// Registry.
//
// Config keys:
//
//	store:
//	  backend: file | memory | sqlite | badger
//	  path: resources/config/experiments.json
//	log_level: debug | info | warn | error
//	auto_load: true
type Settings struct {
	Store    string `validate:"oneof=file memory sqlite badger"`
	Path     string `validate:"required_unless=Store memory"`
	LogLevel string `validate:"oneof=debug info warn error"`
	AutoLoad bool
}

// DefaultSettings returns the settings used for keys a config leaves out.
func DefaultSettings() Settings {
	return Settings{
		Store:    persist.BackendFile,
		Path:     persist.DefaultPath,
		LogLevel: "info",
		AutoLoad: true,
	}
}

// SettingsFrom extracts and validates Settings from cfg.
func SettingsFrom(cfg Config) (Settings, error) {
	s := DefaultSettings()
	if store, ok := cfg.Section("store"); ok {
		s.Store = store.String("backend", s.Store)
		s.Path = store.String("path", s.Path)
	}
	s.LogLevel = cfg.String("log_level", s.LogLevel)
	s.AutoLoad = cfg.Bool("auto_load", s.AutoLoad)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the backend, path and log level.
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (s Settings) Level() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenStore opens the configured backend.
func (s Settings) OpenStore(logger *slog.Logger) (persist.Store, error) {
	return persist.Open(s.Store, s.Path, logger)
}

// RegistryOptions returns the options that apply these settings to a
// Registry backed by store.
func (s Settings) RegistryOptions(store persist.Store, logger *slog.Logger) []flagset.Option {
	return []flagset.Option{
		flagset.WithStore(store),
		flagset.WithLogger(logger),
		flagset.WithAutoLoad(s.AutoLoad),
	}
}
