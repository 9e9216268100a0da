package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
)

// EnvPrefix prefixes every environment override, e.g. FNC_LOG_LEVEL
const EnvPrefix = "FNC"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`

	path string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
}

// ParserConfig holds front end settings
type ParserConfig struct {
	MaxInputLength int  `toml:"max_input_length" yaml:"max_input_length"`
	StopOnError    bool `toml:"stop_on_error" yaml:"stop_on_error"`
}

// StoreConfig holds parse history settings
type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// ServerConfig holds gRPC parse service settings
type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host"`
	Port            int      `toml:"port" yaml:"port"`
	RequestTimeout  Duration `toml:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxMessageSize  int      `toml:"max_message_size" yaml:"max_message_size"`
	HealthInterval  Duration `toml:"health_interval" yaml:"health_interval"`
	CacheSize       int      `toml:"cache_size" yaml:"cache_size"` // < 0 disables the reply cache
	CacheTTL        Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// REPLConfig holds interactive shell settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got %v", value.Tag)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows the
// file extension; unknown extensions are read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
				WithCode(mdwerror.CodeNotFound).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		_, err = toml.Decode(string(content), &cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.path = path
	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path if it is set, otherwise the first file found in
// the default locations, otherwise the defaults. Environment overrides are
// applied in every case.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = FindConfigFile()
	}
	if path != "" {
		return Load(path)
	}

	cfg := Default()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadOrDefault tries, in order
func SearchPaths() []string {
	var paths []string
	dirs := []string{".", "./configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "fnc"))
	}
	for _, dir := range dirs {
		for _, name := range []string{"fnc.toml", "fnc.yaml", "fnc.yml"} {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// FindConfigFile returns the first existing file of SearchPaths, or ""
func FindConfigFile() string {
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Path returns the file the configuration was loaded from, or ""
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}

	// Parser
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}

	// Store
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.General.DataDir, "history.db")
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9310
	}
	if c.Server.RequestTimeout.Duration == 0 {
		c.Server.RequestTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 4 << 20
	}
	if c.Server.HealthInterval.Duration == 0 {
		c.Server.HealthInterval.Duration = 30 * time.Second
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 1024
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 5 * time.Minute
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "fn> "
	}
	if c.REPL.HistorySize == 0 {
		c.REPL.HistorySize = 200
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// applyEnvOverrides applies FNC_* environment variables
func (c *Config) applyEnvOverrides() error {
	strVars := map[string]*string{
		"LOG_LEVEL":   &c.General.LogLevel,
		"LOG_FORMAT":  &c.General.LogFormat,
		"DATA_DIR":    &c.General.DataDir,
		"STORE_PATH":  &c.Store.Path,
		"SERVER_HOST": &c.Server.Host,
		"REPL_PROMPT": &c.REPL.Prompt,
	}
	for name, target := range strVars {
		if v, ok := os.LookupEnv(EnvPrefix + "_" + name); ok {
			*target = v
		}
	}

	intVars := map[string]*int{
		"MAX_INPUT_LENGTH": &c.Parser.MaxInputLength,
		"SERVER_PORT":      &c.Server.Port,
		"CACHE_SIZE":       &c.Server.CacheSize,
	}
	for name, target := range intVars {
		v, ok := os.LookupEnv(EnvPrefix + "_" + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return mdwerror.Wrap(err, fmt.Sprintf("invalid %s_%s", EnvPrefix, name)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.applyEnvOverrides")
		}
		*target = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "_STOP_ON_ERROR"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return mdwerror.Wrap(err, fmt.Sprintf("invalid %s_STOP_ON_ERROR", EnvPrefix)).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.applyEnvOverrides")
		}
		c.Parser.StopOnError = b
	}
	return nil
}

// Validate checks the configuration for values the application cannot use
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_level: %v", err))
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_format: %v", err))
	}
	if c.Parser.MaxInputLength < 0 {
		problems = append(problems, "parser.max_input_length must not be negative")
	}
	if c.Store.Path == "" {
		problems = append(problems, "store.path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.RequestTimeout.Duration < 0 || c.Server.ShutdownTimeout.Duration < 0 ||
		c.Server.HealthInterval.Duration < 0 || c.Server.CacheTTL.Duration < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	if c.Server.MaxMessageSize < 0 {
		problems = append(problems, "server.max_message_size must not be negative")
	}
	if c.REPL.HistorySize < 0 {
		problems = append(problems, "repl.history_size must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	return mdwerror.New("invalid configuration: "+strings.Join(problems, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", len(problems))
}

// ServerAddress returns host:port of the parse service
func (c *Config) ServerAddress() string {
	return c.Server.Address()
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
