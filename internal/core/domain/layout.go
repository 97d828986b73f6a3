package domain

import "path/filepath"

const (
	// MupDirName is the name of the internal state directory.
	MupDirName = ".mup"

	// LockfileName is the name of the lockfile in the server directory.
	LockfileName = "mup.lock"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "mup.yaml"

	// HistoryFileName is the name of the history database.
	HistoryFileName = "history.db"

	// EULAFileName is the name of the Minecraft EULA file.
	EULAFileName = "eula.txt"

	// ModsDirName is the install directory for mod loaders.
	ModsDirName = "mods"

	// PluginsDirName is the install directory for plugin loaders.
	PluginsDirName = "plugins"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultLockfilePath returns the default path for the lockfile.
func DefaultLockfilePath() string {
	return LockfileName
}

// DefaultHistoryPath returns the default path for the history database.
// It joins .mup and history.db.
func DefaultHistoryPath() string {
	return filepath.Join(MupDirName, HistoryFileName)
}
