package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

const (
	appDir   = "devclean"
	fileName = "config.json"

	// EnvPrefix namespaces environment overrides, e.g. DEVCLEAN_MAX_DEPTH.
	EnvPrefix = "DEVCLEAN"
)

const (
	keyIgnorePaths  = "ignore_paths"
	keyExcludeKinds = "exclude_kinds"
	keyDefaultRoots = "default_roots"
	keyMaxDepth     = "max_depth"
)

// Config is the persisted user configuration. Every field is a filter or
// default applied around a scan; none changes how a scan works.
type Config struct {
	// IgnorePaths are project roots never reported.
	IgnorePaths []string `mapstructure:"ignore_paths" json:"ignore_paths"`

	// ExcludeKinds are kind identifiers never reported, e.g. "Node".
	ExcludeKinds []string `mapstructure:"exclude_kinds" json:"exclude_kinds"`

	// DefaultRoots are scanned when no path is given; the first one wins.
	DefaultRoots []string `mapstructure:"default_roots" json:"default_roots"`

	// MaxDepth overrides the unbounded walk when set.
	MaxDepth *int `mapstructure:"max_depth" json:"max_depth"`
}

// Default returns an empty configuration.
func Default() Config {
	return Config{
		IgnorePaths:  []string{},
		ExcludeKinds: []string{},
		DefaultRoots: []string{},
	}
}

// DefaultPath returns <user config dir>/devclean/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store reads and writes a Config file on an afero filesystem.
type Store struct {
	fs   afero.Fs
	path string
	log  logrus.FieldLogger
}

// NewStore returns a store for the config file at path on fsys.
func NewStore(fsys afero.Fs, path string, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{fs: fsys, path: path, log: log}
}

// NewOSStore returns a store on the real filesystem. An empty path selects
// DefaultPath.
func NewOSStore(path string, log logrus.FieldLogger) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return NewStore(afero.NewOsFs(), ExpandHome(path), log), nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) viper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	v.SetDefault(keyIgnorePaths, []string{})
	v.SetDefault(keyExcludeKinds, []string{})
	v.SetDefault(keyDefaultRoots, []string{})

	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
		// max_depth has no default: unset means unbounded. Binding it keeps
		// the env override visible to Unmarshal.
		_ = v.BindEnv(keyMaxDepth)
	}
	return v
}

// Load reads the config file, applying environment overrides. A missing
// file yields defaults; so does a malformed one, after a warning.
func (s *Store) Load() (Config, error) {
	return s.load(true)
}

// LoadFile reads only what the config file holds, without environment
// overrides. Use it to modify and Save the file so that a DEVCLEAN_*
// variable set for one run is not written back.
func (s *Store) LoadFile() (Config, error) {
	return s.load(false)
}

func (s *Store) load(withEnv bool) (Config, error) {
	v := s.viper(withEnv)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case errors.Is(err, fs.ErrNotExist), errors.As(err, &notFound):
			s.log.WithField("path", s.path).Debug("no config file, using defaults")
		case errors.As(err, &parseErr):
			s.log.WithError(err).WithField("path", s.path).Warn("config file is malformed, using defaults")
			v = s.viper(withEnv)
		default:
			return Default(), fmt.Errorf("read config %s: %w", s.path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("config values have the wrong type, using defaults")
		return Default(), nil
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to the config file, creating parent directories.
func (s *Store) Save(cfg Config) error {
	cfg.normalize()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigType("json")
	v.Set(keyIgnorePaths, cfg.IgnorePaths)
	v.Set(keyExcludeKinds, cfg.ExcludeKinds)
	v.Set(keyDefaultRoots, cfg.DefaultRoots)
	if cfg.MaxDepth != nil {
		v.Set(keyMaxDepth, *cfg.MaxDepth)
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	s.log.WithField("path", s.path).Debug("config saved")
	return nil
}

// Reset overwrites the config file with defaults.
func (s *Store) Reset() error {
	return s.Save(Default())
}

// ─── Accessors ───────────────────────────────────────────────────────────────

func (c *Config) normalize() {
	if c.IgnorePaths == nil {
		c.IgnorePaths = []string{}
	}
	if c.ExcludeKinds == nil {
		c.ExcludeKinds = []string{}
	}
	if c.DefaultRoots == nil {
		c.DefaultRoots = []string{}
	}
}

// ExcludedKinds resolves ExcludeKinds, skipping unknown names with a warning.
func (c Config) ExcludedKinds(log logrus.FieldLogger) []scanner.Kind {
	if log == nil {
		log = logrus.StandardLogger()
	}
	kinds := make([]scanner.Kind, 0, len(c.ExcludeKinds))
	for _, name := range c.ExcludeKinds {
		k, err := scanner.ParseKind(name)
		if err != nil {
			log.WithField("kind", name).Warn("ignoring unknown project kind in config")
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}

// ResolvedIgnorePaths returns IgnorePaths with "~" expanded.
func (c Config) ResolvedIgnorePaths() []string {
	out := make([]string, 0, len(c.IgnorePaths))
	for _, p := range c.IgnorePaths {
		out = append(out, ExpandHome(p))
	}
	return out
}

// AddIgnorePath appends path as an absolute path unless already present.
// It reports whether the config changed.
func (c *Config) AddIgnorePath(path string) (bool, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", path, err)
	}
	for _, p := range c.IgnorePaths {
		if p == abs {
			return false, nil
		}
	}
	c.IgnorePaths = append(c.IgnorePaths, abs)
	return true, nil
}

// AddExcludeKind appends the identifier of kind name unless already present.
// It reports whether the config changed.
func (c *Config) AddExcludeKind(name string) (bool, error) {
	k, err := scanner.ParseKind(name)
	if err != nil {
		return false, err
	}
	for _, existing := range c.ExcludeKinds {
		if strings.EqualFold(existing, k.ID()) {
			return false, nil
		}
	}
	c.ExcludeKinds = append(c.ExcludeKinds, k.ID())
	return true, nil
}

// DefaultRoot returns the first configured default root, "~" expanded.
func (c Config) DefaultRoot() (string, bool) {
	if len(c.DefaultRoots) == 0 || c.DefaultRoots[0] == "" {
		return "", false
	}
	return ExpandHome(c.DefaultRoots[0]), true
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
