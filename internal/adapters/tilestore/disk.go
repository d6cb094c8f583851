package tilestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	dataExt = ".tile"
	metaExt = ".json"
	tmpGlob = ".tile-*"
)

// diskCache stores one data file and one metadata file per key, named by the
// xxhash of the key. Metadata is written last, so a readable metadata file
// implies complete data.
type diskCache struct {
	dir string
}

func (d diskCache) enabled() bool {
	return d.dir != ""
}

func (d diskCache) paths(key string) (data, meta string) {
	name := fmt.Sprintf("%016x", xxhash.Sum64String(key))
	base := filepath.Join(d.dir, name)
	return base + dataExt, base + metaExt
}

// load returns the cached resource for key. A missing entry is not an error.
func (d diskCache) load(key string) (domain.CachedResource, bool, error) {
	if !d.enabled() {
		return domain.CachedResource{}, false, nil
	}
	dataPath, metaPath := d.paths(key)

	//nolint:gosec // Path is derived from a hash inside the cache directory
	raw, err := os.ReadFile(metaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CachedResource{}, false, nil
		}
		return domain.CachedResource{}, false, zerr.With(zerr.Wrap(domain.ErrTileCacheReadFailed, err.Error()), "path", metaPath)
	}

	var res domain.CachedResource
	if err := json.Unmarshal(raw, &res); err != nil {
		return domain.CachedResource{}, false, zerr.With(zerr.Wrap(domain.ErrTileCacheReadFailed, err.Error()), "path", metaPath)
	}
	if res.Key != key {
		// Hash collision: the slot belongs to another URL.
		return domain.CachedResource{}, false, nil
	}

	//nolint:gosec // Path is derived from a hash inside the cache directory
	res.Data, err = os.ReadFile(dataPath)
	if err != nil {
		return domain.CachedResource{}, false, zerr.With(zerr.Wrap(domain.ErrTileCacheReadFailed, err.Error()), "path", dataPath)
	}
	return res, true, nil
}

func (d diskCache) save(res domain.CachedResource) error {
	if !d.enabled() {
		return nil
	}
	if err := os.MkdirAll(d.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrTileCacheCreateFailed, err.Error()), "dir", d.dir)
	}

	meta, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrTileCacheWriteFailed, err.Error())
	}

	dataPath, metaPath := d.paths(res.Key)
	if err := d.writeAtomic(dataPath, res.Data); err != nil {
		return err
	}
	return d.writeAtomic(metaPath, meta)
}

func (d diskCache) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(d.dir, tmpGlob)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrTileCacheWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrTileCacheWriteFailed, err.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrTileCacheWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(domain.ErrTileCacheWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// purge removes every cache file. Files it did not write are left alone.
func (d diskCache) purge() error {
	if !d.enabled() {
		return nil
	}
	var errs []error
	for _, pattern := range []string{"*" + dataExt, "*" + metaExt, tmpGlob} {
		matches, err := filepath.Glob(filepath.Join(d.dir, pattern))
		if err != nil {
			return zerr.Wrap(err, "failed to list tile cache")
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to purge tile cache"), "dir", d.dir)
	}
	return nil
}
