package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config is the startup configuration, loaded from YAML with environment
// overrides on top.
type Config struct {
	Seed           int64 `yaml:"seed"`
	Workers        int   `yaml:"workers"`
	ViewDistance   int   `yaml:"view_distance"`
	UnloadDistance int   `yaml:"unload_distance"`
	ChunkQueueSize int   `yaml:"chunk_queue_size"`
	MeshQueueSize  int   `yaml:"mesh_queue_size"`
	Caves          bool  `yaml:"caves"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	return Config{
		Seed:           2147,
		Workers:        4,
		ViewDistance:   12,
		UnloadDistance: 16,
		ChunkQueueSize: 256,
		MeshQueueSize:  128,
		Caves:          true,
	}
}

// Load reads the config file at path, if it exists, and applies VOXELCORE_*
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v, ok := envInt64("VOXELCORE_SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := envInt("VOXELCORE_WORKERS"); ok {
		cfg.Workers = v
	}
	if v, ok := envInt("VOXELCORE_VIEW_DISTANCE"); ok {
		cfg.ViewDistance = v
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ViewDistance < 2 {
		cfg.ViewDistance = 2
	}
	if cfg.UnloadDistance < cfg.ViewDistance {
		cfg.UnloadDistance = cfg.ViewDistance + 4
	}

	return cfg, nil
}

func envInt(key string) (int, bool) {
	v, ok := envInt64(key)
	return int(v), ok
}

func envInt64(key string) (int64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ViewSettings holds the view distance tunables that can change at runtime.
type ViewSettings struct {
	mu           sync.RWMutex
	viewDistance int
}

var globalViewSettings = &ViewSettings{
	viewDistance: 12,
}

// GetViewDistance returns the current view distance in chunks.
func GetViewDistance() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.viewDistance
}

// SetViewDistance sets the view distance in chunks, clamped to sane bounds.
func SetViewDistance(distance int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()

	if distance < 2 {
		distance = 2
	}
	if distance > 48 {
		distance = 48
	}

	globalViewSettings.viewDistance = distance
}

// GetUnloadDistance returns the eviction radius, kept larger than the view
// distance so chunks don't thrash at the boundary.
func GetUnloadDistance() int {
	d := GetViewDistance() + 4
	if d < 16 {
		d = 16
	}
	return d
}
