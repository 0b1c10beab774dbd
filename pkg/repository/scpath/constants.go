package scpath

const (
	// SourceDir is the name of the repository directory inside the working tree
	SourceDir = ".gitproject"

	// ObjectsDir is the name of the objects directory
	ObjectsDir = "objects"

	// IndexFile is the name of the staging index file
	IndexFile = "index"

	// ConfigFile is the name of the repository config file
	ConfigFile = "config.json"

	// HeadFile is the name of the HEAD file
	HeadFile = "HEAD"

	// JournalFile records an in-flight commit until it is fully linked
	JournalFile = "journal"

	// LockFile guards the repository against concurrent mutation
	LockFile = "lock"

	// IgnoreFile lists working-tree patterns excluded from AddAll
	IgnoreFile = ".gitprojectignore"
)
