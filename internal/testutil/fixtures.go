package testutil

import (
	"embed"

	"github.com/firefly-engineering/ipkit/internal/config"
	"github.com/firefly-engineering/ipkit/internal/system"
)

//go:embed fixtures/*.toml
var fixturesFS embed.FS

// Contents of the files the groups.toml fixture points at.
const (
	OfficeFile    = "office.txt"
	OfficeNets    = "203.0.113.0/24\n"
	CloudCommand  = "list-cloud-ranges"
	CloudNets     = "198.51.100.0/24\n\n2001:db8::/32\n"
	FixtureConfig = "/etc/ipkit/ipkit.toml"
)

// LoadFixture loads a TOML fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture parses a fixture as if it lived at FixtureConfig.
func LoadConfigFixture(name string, fs system.FileSystem, exec system.CommandExecutor) (*config.Configuration, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(data, FixtureConfig, fs, exec)
}

// ValidConfig returns the groups fixture.
func ValidConfig(fs system.FileSystem, exec system.CommandExecutor) (*config.Configuration, error) {
	return LoadConfigFixture("groups.toml", fs, exec)
}

// InvalidConfig returns the invalid groups fixture.
func InvalidConfig(fs system.FileSystem, exec system.CommandExecutor) (*config.Configuration, error) {
	return LoadConfigFixture("invalid_groups.toml", fs, exec)
}
