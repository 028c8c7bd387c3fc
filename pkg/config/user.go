package config

import (
	"path/filepath"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/errors"
)

const (
	// UserConfigPath is the default path to the CodeSync user config.
	UserConfigPath = "~/.codesync.yaml"

	// InitialUserConfigVersion is the first version of the CodeSync user
	// config. Config files that do not specify a version will default to
	// this version.
	InitialUserConfigVersion = "v1"

	// SupportedUserConfigVersion is the supported version of the CodeSync
	// user config of the current CodeSync binary.
	SupportedUserConfigVersion = "v1"
)

// User contains per-user defaults for commands. Flags given on the command
// line take precedence over every field here.
type User struct {
	Version string `json:"version,omitempty"`

	// Source and Destination are the default tree roots.
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`

	// CompareContents enables content comparison by default.
	CompareContents bool `json:"compareContents,omitempty"`

	// ExcludedDirs are directory names skipped during enumeration, in
	// addition to the built-in exclusions.
	ExcludedDirs []string `json:"excludedDirs,omitempty"`
}

func (u User) getVersion() string {
	return u.Version
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseUser attempts to parse the User stored in the default path. A missing
// config file isn't an error; Version is set to InitialUserConfigVersion and
// every other field keeps its zero value.
func ParseUser() (User, error) {
	path, err := GetUserConfigPath()
	if err != nil {
		return User{}, errors.WithContext(err, "expand config path")
	}

	config := User{Version: InitialUserConfigVersion}
	if err := parseConfig(path, &config, SupportedUserConfigVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return User{Version: InitialUserConfigVersion}, nil
		}
		return User{}, errors.WithContext(err, "parse")
	}

	config.Source, err = expandRoot(path, config.Source)
	if err != nil {
		return User{}, errors.WithContext(err, "expand source path")
	}
	config.Destination, err = expandRoot(path, config.Destination)
	if err != nil {
		return User{}, errors.WithContext(err, "expand destination path")
	}
	return config, nil
}

// expandRoot resolves a configured tree root. Relative paths are evaluated
// relative to the config file.
func expandRoot(configPath, root string) (string, error) {
	root, err := homedirExpand(root)
	if err != nil {
		return "", err
	}
	if root != "" && !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(configPath), root)
	}
	return root, nil
}

// WriteUser writes the given user config to disk.
func WriteUser(cfg User) error {
	cfg.Version = SupportedUserConfigVersion
	path, err := GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetUserConfigPath returns the path to the user's global CodeSync
// configuration. This path is expanded, so it can be directly passed to file
// operations.
func GetUserConfigPath() (string, error) {
	return homedirExpand(UserConfigPath)
}
