package params

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/gofrs/flock"

	"pfeifer.dev/polyproj/utils"
)

var (
	ParamsPath string = GetParamsPath()
)

// Params
var (
	LAST_QUERY_POINT  = "LastQueryPoint"
	POLYPROJ_SETTINGS = "PolyprojSettings"
)

func GetParamsPath() string {
	if path, ok := os.LookupEnv("POLYPROJ_PARAMS_PATH"); ok && path != "" {
		return path
	}
	return filepath.Join("params", "d")
}

func EnsureParamDirectories() {
	err := os.MkdirAll(ParamsPath, 0o775)
	if err != nil {
		slog.Warn("could not make params directory", "error", err, "directory", ParamsPath)
	}
}

func ParamPath(name string) string {
	return filepath.Join(ParamsPath, name)
}

func GetParam(name string) ([]byte, error) {
	data, err := os.ReadFile(ParamPath(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read param %s", name)
	}
	return data, nil
}

// lock takes the params lock, which lives one directory above the params
// so writers of every param share it. A stale lock is force removed after
// repeated failures.
func lock(dir string) (unlock func(), err error) {
	lockDir := filepath.Dir(dir)
	lockPath := filepath.Join(lockDir, ".lock")
	fileLock := flock.New(lockPath)

	retries := 0
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return nil, errors.Wrap(err, "could not try locking params directory")
		}
		if locked {
			break
		}
		retries += 1
		if retries > 30 {
			// try to force the lock to be removed
			if err := os.Remove(lockPath); err != nil {
				slog.Debug("failed to force delete params lock", "error", err)
			}
		}
		if retries > 50 {
			return nil, errors.New("could not obtain lock")
		}
		// if we didn't obtain the lock let's try again after a short delay
		time.Sleep(1 * time.Millisecond)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			slog.Error("could not unlock params directory", "error", err)
		}
		if err := os.Remove(lockPath); err != nil {
			slog.Error("could not remove params lock file", "error", err)
		}
	}, nil
}

func syncDir(dir string) error {
	directory, err := os.Open(dir)
	if err != nil {
		return errors.Wrap(err, "could not open params directory")
	}
	defer utils.LogClose(directory)

	err = directory.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync params directory")
	}
	return nil
}

// PutParam atomically replaces the param with data.
func PutParam(name string, data []byte) error {
	path := ParamPath(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return errors.Wrap(err, "could not make params directory")
	}

	file, err := os.CreateTemp(dir, ".tmp_value_"+filepath.Base(path))
	if err != nil {
		return errors.Wrap(err, "could not create temp param file")
	}
	tmpName := file.Name()
	defer os.Remove(tmpName)
	defer utils.LogClose(file)

	_, err = file.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write data to temp param file")
	}

	err = file.Sync()
	if err != nil {
		return errors.Wrap(err, "could not fsync temp param file")
	}

	unlock, err := lock(dir)
	if err != nil {
		return err
	}
	defer unlock()

	err = os.Rename(tmpName, path)
	if err != nil {
		return errors.Wrap(err, "could not move temp param file to persistent location")
	}

	return syncDir(dir)
}

func RemoveParam(name string) error {
	path := ParamPath(name)
	dir := filepath.Dir(path)

	unlock, err := lock(dir)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "could not remove param file")
	}

	return syncDir(dir)
}
