// Copyright (C) 2023 RedisGraph, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config holds the engine-wide settings that are
// loaded once at startup and read-only afterwards.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cast"
	"sigs.k8s.io/yaml"
)

// Setting names accepted by Get.
const (
	MaintainTranspose = "maintain_transpose"
	Threads           = "threads"
	CacheSize         = "cache_size"
	QueryTimeoutMS    = "query_timeout_ms"
)

// Config is the engine configuration.
type Config struct {
	// MaintainTranspose indicates that the storage layer
	// keeps a transposed copy of every relation matrix,
	// which makes transposed traversal free.
	MaintainTranspose bool `json:"maintain_transpose"`
	// Threads is the size of the query execution pool.
	Threads int `json:"threads,omitempty"`
	// CacheSize is the number of cached execution plans.
	CacheSize int `json:"cache_size,omitempty"`
	// QueryTimeoutMS bounds query runtime; 0 disables.
	QueryTimeoutMS int `json:"query_timeout_ms,omitempty"`
}

// Default returns the configuration used when no config
// file is supplied.
func Default() *Config {
	return &Config{
		MaintainTranspose: true,
		Threads:           runtime.GOMAXPROCS(0),
		CacheSize:         25,
	}
}

// Parse decodes a YAML (or JSON) configuration document.
// Settings not present in the document keep their default
// values.
func Parse(buf []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Threads <= 0 {
		return nil, fmt.Errorf("config: threads must be positive (got %d)", c.Threads)
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(buf)
}

// Get returns the setting registered under name.
func (c *Config) Get(name string) (any, bool) {
	switch name {
	case MaintainTranspose:
		return c.MaintainTranspose, true
	case Threads:
		return c.Threads, true
	case CacheSize:
		return c.CacheSize, true
	case QueryTimeoutMS:
		return c.QueryTimeoutMS, true
	}
	return nil, false
}

// GetBool returns the boolean setting registered under
// name; false if the setting is unknown or not coercible.
func (c *Config) GetBool(name string) bool {
	v, ok := c.Get(name)
	if !ok {
		return false
	}
	return cast.ToBool(v)
}
