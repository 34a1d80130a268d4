package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/ini.v1"
)

// Settings holds the values an embedding program may override at startup.
//
// Both file formats use the same section and key names:
//
//	[buffer]  pool_size
//	[storage] db_file, on_mem
//	[log]     level
type Settings struct {
	BufferPoolSize     uint32
	DBFileName         string
	EnableOnMemStorage bool
	LogLevel           string
}

func DefaultSettings() *Settings {
	return &Settings{
		BufferPoolSize:     DefaultBufferPoolSize,
		DBFileName:         "samehada.db",
		EnableOnMemStorage: false,
		LogLevel:           "info",
	}
}

// LoadSettings reads path as TOML or INI depending on its extension.
// A path that does not exist yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		ShPrintf(DEBUG_INFO, "settings file %s not found, using defaults", path)
		return s, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = s.loadTOML(path)
	case ".ini", ".cnf":
		err = s.loadINI(path)
	default:
		return nil, fmt.Errorf("unsupported settings file format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if s.BufferPoolSize == 0 {
		return nil, fmt.Errorf("buffer.pool_size must be positive (%s)", path)
	}
	return s, nil
}

func (s *Settings) loadTOML(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	poolSize, ok := tree.GetDefault("buffer.pool_size", int64(s.BufferPoolSize)).(int64)
	if !ok || poolSize < 0 {
		return fmt.Errorf("buffer.pool_size in %s is not a non-negative integer", path)
	}
	s.BufferPoolSize = uint32(poolSize)

	if s.DBFileName, ok = tree.GetDefault("storage.db_file", s.DBFileName).(string); !ok {
		return fmt.Errorf("storage.db_file in %s is not a string", path)
	}
	if s.EnableOnMemStorage, ok = tree.GetDefault("storage.on_mem", s.EnableOnMemStorage).(bool); !ok {
		return fmt.Errorf("storage.on_mem in %s is not a bool", path)
	}
	if s.LogLevel, ok = tree.GetDefault("log.level", s.LogLevel).(string); !ok {
		return fmt.Errorf("log.level in %s is not a string", path)
	}
	return nil
}

func (s *Settings) loadINI(path string) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	poolSize := cfg.Section("buffer").Key("pool_size").MustInt(int(s.BufferPoolSize))
	if poolSize < 0 {
		return fmt.Errorf("buffer.pool_size in %s is negative", path)
	}
	s.BufferPoolSize = uint32(poolSize)

	storage := cfg.Section("storage")
	s.DBFileName = storage.Key("db_file").MustString(s.DBFileName)
	s.EnableOnMemStorage = storage.Key("on_mem").MustBool(s.EnableOnMemStorage)
	s.LogLevel = cfg.Section("log").Key("level").MustString(s.LogLevel)
	return nil
}
