package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned for malformed input text: sector-hex strings,
	// stylesheet fragments and numeric resource fields.
	ErrParse = zerr.New("parse error")

	// ErrKeyNotFound is returned when removing a key that is not cached.
	ErrKeyNotFound = zerr.New("key not found")

	// ErrUnknownSector is returned when a sector name is not present in the sector index.
	ErrUnknownSector = zerr.New("unknown sector")

	// ErrInvalidScale is returned when a linear scale is not strictly positive.
	ErrInvalidScale = zerr.New("scale must be positive")

	// ErrInvalidRegion is returned for a map-space rectangle that is not finite
	// or covers too many starfield chunks.
	ErrInvalidRegion = zerr.New("invalid map region")

	// ErrInvalidTileRequest is returned when a tile or poster request cannot be turned into a URL.
	ErrInvalidTileRequest = zerr.New("invalid tile request")

	// ErrDownloadFailed is returned when a transfer fails for a reason other than an HTTP status.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrTileCacheReadFailed is returned when a cached tile cannot be read from disk.
	ErrTileCacheReadFailed = zerr.New("failed to read cached tile")

	// ErrTileCacheWriteFailed is returned when a tile cannot be written to the disk cache.
	ErrTileCacheWriteFailed = zerr.New("failed to write cached tile")

	// ErrTileCacheCreateFailed is returned when the tile cache directory cannot be created.
	ErrTileCacheCreateFailed = zerr.New("failed to create tile cache directory")

	// ErrStyleSheetReadFailed is returned when a stylesheet file cannot be read.
	ErrStyleSheetReadFailed = zerr.New("failed to read stylesheet")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrResourceReadFailed is returned when a tab-separated resource cannot be read.
	ErrResourceReadFailed = zerr.New("failed to read resource")

	// ErrMissingColumn is returned when a tab-separated resource lacks a required column.
	ErrMissingColumn = zerr.New("missing column")
)
