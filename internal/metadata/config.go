package metadata

import "github.com/twtxwydavid/hibernate-orm/internal/source"

// Config holds configuration for a metadata build.
type Config struct {
	// Defaults seed every binding context; mapping documents may override them.
	Defaults source.MappingDefaults
	// CascadeCacheSize bounds the cascade directive cache (0 = default size).
	CascadeCacheSize int
	// CheckForeignKeyArity fails associations whose column count differs
	// from the number of target columns.
	CheckForeignKeyArity bool
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() Config {
	return Config{
		Defaults:             source.DefaultMappingDefaults(),
		CascadeCacheSize:     source.DefaultCascadeCacheSize,
		CheckForeignKeyArity: true,
	}
}
