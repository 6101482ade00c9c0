package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"os-scheduler/internal/core"
	"os-scheduler/internal/logging"
)

const (
	DefaultConfigFile = "config.txt"
	EnvPrefix         = "SCHEDSIM"

	keyQuantum  = "quantum"
	keyAging    = "aging"
	keyTieBreak = "tie_break"
)

// ServerConfig holds the process-level settings of the simulator.
type ServerConfig struct {
	Port       int
	LogLevel   string
	LogFormat  string
	DBPath     string // empty disables run history
	ConfigFile string // simulation defaults (quantum, aging)
	Trace      bool
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:       9095,
		LogLevel:   "info",
		LogFormat:  "text",
		DBPath:     "schedsim.db",
		ConfigFile: DefaultConfigFile,
	}
}

// NewViper returns a viper instance reading SCHEDSIM_* environment variables
// with ServerConfig defaults registered.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultServerConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("log-level", defaults.LogLevel)
	v.SetDefault("log-format", defaults.LogFormat)
	v.SetDefault("db", defaults.DBPath)
	v.SetDefault("config", defaults.ConfigFile)
	v.SetDefault("trace", defaults.Trace)
	return v
}

// ServerConfigFrom reads the settings bound on v.
func ServerConfigFrom(v *viper.Viper) ServerConfig {
	return ServerConfig{
		Port:       v.GetInt("port"),
		LogLevel:   v.GetString("log-level"),
		LogFormat:  v.GetString("log-format"),
		DBPath:     v.GetString("db"),
		ConfigFile: v.GetString("config"),
		Trace:      v.GetBool("trace"),
	}
}

// Store persists the simulation defaults to a flat key-value file:
//
//	quantum:2
//	aging:1
//
// Load never fails; unreadable or invalid content falls back to the defaults.
type Store struct {
	mu      sync.RWMutex
	path    string
	v       *viper.Viper
	current core.Configuration
	logger  *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultConfigFile
	}
	if logger == nil {
		logger = logging.Discard()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	return &Store{
		path:    path,
		v:       v,
		current: core.DefaultConfiguration(),
		logger:  logger.With("component", "config"),
	}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the file, creating it with defaults when it does not exist.
func (s *Store) Load() core.Configuration {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		defaults := core.DefaultConfiguration()
		if err := s.Save(defaults); err != nil {
			s.logger.Warn("could not create configuration file", "path", s.path, "error", err)
			s.set(defaults)
		}
		return defaults
	}

	cfg, err := s.read()
	if err != nil {
		s.logger.Warn("using default configuration", "path", s.path, "error", err)
		cfg = core.DefaultConfiguration()
	}
	s.set(cfg)
	return cfg
}

func (s *Store) read() (core.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		return core.Configuration{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	cfg := core.Configuration{
		Quantum:   core.DefaultQuantum,
		AgingRate: core.DefaultAgingRate,
		TieBreak:  core.TieBreakReseed,
	}
	if s.v.IsSet(keyQuantum) {
		cfg.Quantum = s.v.GetInt(keyQuantum)
	}
	if s.v.IsSet(keyAging) {
		cfg.AgingRate = s.v.GetInt(keyAging)
	}
	if s.v.IsSet(keyTieBreak) {
		cfg.TieBreak = core.TieBreakMode(strings.ToLower(s.v.GetString(keyTieBreak)))
	}
	if err := cfg.Validate(); err != nil {
		return core.Configuration{}, err
	}
	return cfg, nil
}

// Save validates cfg, writes it to the file and makes it current.
func (s *Store) Save(cfg core.Configuration) error {
	if cfg.TieBreak == "" {
		cfg.TieBreak = core.TieBreakReseed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// viper picks its encoder from the file extension, which config.txt lacks
	content := fmt.Sprintf("%s:%d\n%s:%d\n%s:%s\n",
		keyQuantum, cfg.Quantum,
		keyAging, cfg.AgingRate,
		keyTieBreak, cfg.TieBreak)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.current = cfg
	s.logger.Info("configuration saved", "path", s.path, "quantum", cfg.Quantum, "aging", cfg.AgingRate)
	return nil
}

// Update replaces quantum and aging, keeping the current tie-break mode.
func (s *Store) Update(quantum, aging int) (core.Configuration, error) {
	cfg := s.Current()
	cfg.Quantum = quantum
	cfg.AgingRate = aging
	if err := s.Save(cfg); err != nil {
		return s.Current(), err
	}
	return cfg, nil
}

// Current returns a copy of the configuration in effect.
func (s *Store) Current() core.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) set(cfg core.Configuration) {
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
}
