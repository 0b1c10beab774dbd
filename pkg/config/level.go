package config

// ConfigLevel represents the hierarchy level of a configuration entry
// Ordered by precedence (highest to lowest)
type ConfigLevel int

const (
	// CommandLineLevel represents command-line configuration (highest precedence)
	CommandLineLevel ConfigLevel = iota

	// EnvironmentLevel represents GITPROJECT_* environment variables
	EnvironmentLevel

	// RepositoryLevel represents repository-specific configuration
	// Location: .gitproject/config.json
	RepositoryLevel

	// UserLevel represents user-specific configuration
	// Location: ~/.gitprojectconfig.json
	UserLevel

	// SystemLevel represents system-wide configuration
	// Location: /etc/gitproject/config.json
	SystemLevel

	// BuiltinLevel represents hardcoded default values (lowest precedence)
	BuiltinLevel
)

// FileLevels are the levels backed by a config file, highest precedence first.
var FileLevels = []ConfigLevel{RepositoryLevel, UserLevel, SystemLevel}

// String returns the string representation of the configuration level
func (l ConfigLevel) String() string {
	switch l {
	case CommandLineLevel:
		return "command-line"
	case EnvironmentLevel:
		return "environment"
	case RepositoryLevel:
		return "repository"
	case UserLevel:
		return "user"
	case SystemLevel:
		return "system"
	case BuiltinLevel:
		return "builtin"
	default:
		return "unknown"
	}
}

// CanWrite returns true if the configuration level is writable
func (l ConfigLevel) CanWrite() bool {
	return l == RepositoryLevel || l == UserLevel || l == SystemLevel
}

// ParseLevel converts a string to a ConfigLevel
func ParseLevel(s string) (ConfigLevel, error) {
	for l := CommandLineLevel; l <= BuiltinLevel; l++ {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, newError("ParseLevel", invalidInput, "unknown configuration level: "+s, nil)
}
