package domain

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ConfigurationKey identifies a build variant by configuration name and platform.
// Both fields compare case-insensitively. The zero value is the empty key.
// Keys are not comparable with ==; use Equal, or ID for map keys.
type ConfigurationKey struct {
	_        [0]func()
	name     string
	platform string
}

// ConfigID is the case-folded, comparable form of a ConfigurationKey.
// Maps keyed by configuration use ConfigID so that "Debug" and "DEBUG" collide.
type ConfigID struct {
	name     string
	platform string
}

// NewConfigurationKey creates a key. An unspecified platform is the empty string.
func NewConfigurationKey(name, platform string) ConfigurationKey {
	return ConfigurationKey{
		name:     strings.TrimSpace(name),
		platform: strings.TrimSpace(platform),
	}
}

// ParseConfigurationKey parses the "Name|Platform" notation. The platform part is optional.
func ParseConfigurationKey(s string) ConfigurationKey {
	name, platform, _ := strings.Cut(s, "|")
	return NewConfigurationKey(name, platform)
}

// Name returns the configuration name as declared.
func (k ConfigurationKey) Name() string { return k.name }

// Platform returns the platform name as declared.
func (k ConfigurationKey) Platform() string { return k.platform }

// ID returns the case-folded identity of the key.
func (k ConfigurationKey) ID() ConfigID {
	return ConfigID{name: foldCase(k.name), platform: foldCase(k.platform)}
}

// Equal reports whether both keys name the same variant, ignoring case.
func (k ConfigurationKey) Equal(other ConfigurationKey) bool {
	return k.ID() == other.ID()
}

// SameName reports whether both keys share a configuration name, ignoring case and platform.
func (k ConfigurationKey) SameName(other ConfigurationKey) bool {
	return foldCase(k.name) == foldCase(other.name)
}

// Hash returns a 64-bit hash of the folded key. Equal keys hash identically.
func (k ConfigurationKey) Hash() uint64 {
	id := k.ID()
	d := xxhash.New()
	_, _ = d.WriteString(id.name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(id.platform)
	return d.Sum64()
}

// IsZero reports whether the key has neither a name nor a platform.
func (k ConfigurationKey) IsZero() bool {
	return k.name == "" && k.platform == ""
}

// String renders the key as "Name|Platform", or just "Name" without a platform.
func (k ConfigurationKey) String() string {
	if k.platform == "" {
		return k.name
	}
	return k.name + "|" + k.platform
}

// foldCase maps s to a canonical case so that equal-ignoring-case strings compare equal.
func foldCase(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}
