package domain

const (
	// DirPerm is the permission used for cache directories.
	DirPerm = 0o750

	// FilePerm is the permission used for downloaded and cached files.
	FilePerm = 0o644
)
