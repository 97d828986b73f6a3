package domain

import "go.trai.ch/zerr"

var (
	// ErrNetwork is returned when a remote service is unreachable or answers with a non-2xx status.
	ErrNetwork = zerr.New("network request failed")

	// ErrCorruptLockfile is returned when the lockfile exists but cannot be parsed.
	ErrCorruptLockfile = zerr.New("lockfile is corrupt")

	// ErrInvalidConfiguration is returned for a malformed game version or an unknown loader.
	ErrInvalidConfiguration = zerr.New("invalid server configuration")

	// ErrNotInitialized is returned when projects are modified before the server was initialized.
	ErrNotInitialized = zerr.New("you must initialize a server before modifying projects")

	// ErrDuplicateEntry is returned when an entry with the same slug is already in the lockfile.
	ErrDuplicateEntry = zerr.New("project already has an entry in the lockfile")

	// ErrNotFound is returned when a project does not exist in the lockfile or in the registry.
	ErrNotFound = zerr.New("project not found")

	// ErrUnsupportedServerSide is returned when a project only runs on the client.
	ErrUnsupportedServerSide = zerr.New("project does not support server side")

	// ErrLoaderMismatch is returned when a project version does not support the configured loader.
	ErrLoaderMismatch = zerr.New("project does not support loader")

	// ErrGameVersionMismatch is returned when a project version does not support the configured game version.
	ErrGameVersionMismatch = zerr.New("project does not support Minecraft version")

	// ErrInvalidMetadata is returned when a provider answer lacks the identifiers an entry needs.
	ErrInvalidMetadata = zerr.New("provider returned invalid project metadata")

	// ErrPathConflict is returned when a new file would overwrite a file owned by another entry.
	ErrPathConflict = zerr.New("install path is owned by another project")

	// ErrNoInstallableArtifact is returned when a version has no file with an installable extension.
	ErrNoInstallableArtifact = zerr.New("version has no installable file")

	// ErrChecksumMismatch is returned when a downloaded file does not match its expected digest.
	ErrChecksumMismatch = zerr.New("hashes do not match")

	// ErrUnsupportedChecksum is returned for an unknown digest algorithm tag.
	ErrUnsupportedChecksum = zerr.New("unsupported checksum algorithm")

	// ErrNoMatchingVersion is returned when the provider has no version for the game version filter.
	ErrNoMatchingVersion = zerr.New("could not find a matching version")

	// ErrUnknownProvider is returned when a metadata provider name is not registered.
	ErrUnknownProvider = zerr.New("unknown provider")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")

	// ErrFileRemoveFailed is returned when an installed file cannot be deleted.
	ErrFileRemoveFailed = zerr.New("failed to remove installed file")

	// ErrDownloadFailed is returned when a download cannot be written to disk.
	ErrDownloadFailed = zerr.New("failed to download file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file or environment cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrHistoryOpenFailed is returned when the history database cannot be opened.
	ErrHistoryOpenFailed = zerr.New("failed to open history database")

	// ErrHistoryWriteFailed is returned when a history record cannot be stored.
	ErrHistoryWriteFailed = zerr.New("failed to write history record")

	// ErrHistoryReadFailed is returned when history records cannot be listed.
	ErrHistoryReadFailed = zerr.New("failed to read history")

	// ErrUnsupportedLoaderVersion is returned when a loader cannot be fetched for the requested Minecraft version.
	ErrUnsupportedLoaderVersion = zerr.New("loader does not support requested Minecraft version")

	// ErrEULAWriteFailed is returned when eula.txt cannot be written.
	ErrEULAWriteFailed = zerr.New("failed to write eula.txt")

	// ErrVerificationFailed is returned when one or more installed files fail verification.
	ErrVerificationFailed = zerr.New("installed files failed verification")
)
