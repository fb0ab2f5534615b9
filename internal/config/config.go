package config

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/ipkit/internal/errors"
	"github.com/firefly-engineering/ipkit/internal/logging"
	"github.com/firefly-engineering/ipkit/internal/network"
	"github.com/firefly-engineering/ipkit/internal/system"
)

const (
	AppName          = "ipkit"
	DefaultFileName  = "ipkit.toml"
	DefaultSystemDir = "/etc/ipkit"
	EnvConfigPath    = "IPKIT_CONFIG"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Configuration is the optional ipkit.toml document.
type Configuration struct {
	Groups []*Group `toml:"groups" validate:"dive"`

	groupsDefined bool
	path          string
}

// Group is a named set of networks. Exactly one of Nets, File or Command
// describes where the networks come from.
type Group struct {
	Name    string   `toml:"name" validate:"required"`
	Nets    []string `toml:"nets" validate:"required_without_all=File Command,excluded_with=File Command,dive,required"`
	File    string   `toml:"file" validate:"excluded_with=Nets Command"`
	Command string   `toml:"command" validate:"excluded_with=Nets File"`
	Shell   string   `toml:"shell" validate:"excluded_without=Command"`

	// Source is built from the fields above when the configuration loads.
	Source *GroupSource `toml:"-"`
}

// HasGroups reports whether the document declares a groups list at all.
// An empty list still counts as declared.
func (c *Configuration) HasGroups() bool {
	return c.groupsDefined
}

// Path returns the file the configuration was read from.
func (c *Configuration) Path() string {
	return c.path
}

// SearchPaths returns the locations tried, in order, when neither an
// explicit path nor $IPKIT_CONFIG names the configuration.
func SearchPaths() []string {
	paths := []string{DefaultFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName, DefaultFileName))
	}
	return append(paths, filepath.Join(DefaultSystemDir, DefaultFileName))
}

// Find returns the first existing search path, or "" when there is none.
func Find(fsys system.FileSystem) string {
	for _, path := range SearchPaths() {
		if fsys.Exists(path) {
			return path
		}
	}
	return ""
}

// Load reads the configuration at path. With an empty path $IPKIT_CONFIG
// is used if set; otherwise the search paths are tried and a nil
// Configuration is returned if none exists. A named file must be readable.
func Load(path string, fsys system.FileSystem, exec system.CommandExecutor) (*Configuration, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = Find(fsys)
		if path == "" {
			logging.Debug("no configuration file found", "searched", SearchPaths())
			return nil, nil
		}
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read configuration %s", path), err)
	}

	cfg, err := Parse(data, path, fsys, exec)
	if err != nil {
		return nil, err
	}

	logging.Debug("loaded configuration", "path", path, "groups", len(cfg.Groups))
	return cfg, nil
}

// Parse decodes and validates a configuration document. path locates
// relative group files; it need not exist.
func Parse(data []byte, path string, fsys system.FileSystem, exec system.CommandExecutor) (*Configuration, error) {
	var cfg Configuration
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			logging.Debug("configuration syntax error", "detail", perr.ErrorWithPosition())
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse configuration %s", path), err)
	}

	for _, key := range md.Undecoded() {
		logging.Warn("unknown configuration key", "path", path, "key", key.String())
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid configuration %s", path), describeValidation(err))
	}

	cfg.groupsDefined = md.IsDefined("groups")
	cfg.path = path

	dir := filepath.Dir(path)
	seen := make(map[string]bool, len(cfg.Groups))
	for _, g := range cfg.Groups {
		if seen[g.Name] {
			logging.Debug("duplicate group name, both will match", "name", g.Name)
		}
		seen[g.Name] = true

		src, err := g.buildSource(dir, fsys, exec)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		g.Source = src
	}

	return &cfg, nil
}

func (g *Group) buildSource(dir string, fsys system.FileSystem, exec system.CommandExecutor) (*GroupSource, error) {
	switch {
	case g.File != "":
		path := g.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return NewFileSource(path, fsys), nil

	case g.Command != "":
		var shell []string
		if g.Shell != "" {
			words, err := shellquote.Split(g.Shell)
			if err != nil {
				return nil, errors.ConfigError(fmt.Sprintf("invalid shell %q", g.Shell), err)
			}
			shell = words
		}
		return NewCommandSource(g.Command, shell, exec), nil

	default:
		nets := make([]netip.Prefix, 0, len(g.Nets))
		for _, raw := range g.Nets {
			n, err := network.ParseAutoNet(strings.TrimSpace(raw))
			if err != nil {
				return nil, errors.ParseError(raw, err)
			}
			nets = append(nets, n.Prefix)
		}
		return NewRawSource(nets)
	}
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
