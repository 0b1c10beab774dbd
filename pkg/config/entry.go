package config

// ConfigEntry represents a single configuration entry with its value and metadata
type ConfigEntry struct {
	Key    string      // Configuration key (e.g., "user.name")
	Value  string      // String value
	Level  ConfigLevel // Configuration level
	Source string      // File path, or the level name for non-file levels
}

// NewEntry creates a new configuration entry
func NewEntry(key, value string, level ConfigLevel, source string) *ConfigEntry {
	if source == "" {
		source = level.String()
	}
	return &ConfigEntry{Key: key, Value: value, Level: level, Source: source}
}
