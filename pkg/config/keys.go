package config

// Known configuration keys.
const (
	KeyCompression = "core.compression"
	KeyUserName    = "user.name"
	KeyUserEmail   = "user.email"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
)

// Environment variables that override file configuration.
const (
	EnvAuthorName  = "GITPROJECT_AUTHOR_NAME"
	EnvAuthorEmail = "GITPROJECT_AUTHOR_EMAIL"
	EnvLogLevel    = "GITPROJECT_LOG_LEVEL"
)

var envKeys = map[string]string{
	EnvAuthorName:  KeyUserName,
	EnvAuthorEmail: KeyUserEmail,
	EnvLogLevel:    KeyLogLevel,
}

var builtinDefaults = map[string]string{
	KeyCompression: "gzip",
	KeyLogLevel:    "warn",
	KeyLogFormat:   "text",
}
