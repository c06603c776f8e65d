package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"chaptersplit/internal/config"
	"chaptersplit/internal/deps"
	"chaptersplit/internal/exclusions"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckExclusions verifies the exclusion phrase file parses and reports how
// many phrases apply to languageCode.
func CheckExclusions(path, languageCode string) Result {
	const name = "Exclusion phrases"
	table, err := exclusions.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	phrases := table.Phrases(languageCode)
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d phrase(s) for %q", len(phrases), languageCode)}
}

// CheckSystemDeps evaluates the external tools required by cfg. Both the
// split command and the status command use this list.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(cfg))
}
