// Package config abstracts configuration access behind typed getters.
//
// Callers read keys through the Config interface and never touch the backing
// store directly, so the source (file, bytes, environment) can change without
// touching business code.
package config

import (
	"io"
	"time"
)

// Config exposes typed access to configuration values. Implementations
// return zero values for missing or unconvertible keys.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond interprets the integer value for key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute interprets the integer value for key as minutes.
	GetMinute(key string) time.Duration

	// GetHour interprets the integer value for key as hours.
	GetHour(key string) time.Duration

	// GetBinary decodes the base64 value for key into bytes.
	GetBinary(key string) []byte

	// GetArray splits the comma separated value for key.
	GetArray(key string) []string

	// GetMap parses the "k1:v1,k2:v2" value for key.
	GetMap(key string) map[string]string
}
