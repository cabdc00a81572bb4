package cliutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Which resolves program to an executable path. A program with a directory
// component is checked as-is; a bare name is searched for in searchPath,
// whose entries may be wrapped in double quotes.
func Which(program, searchPath string) (string, bool) {
	if dir, _ := filepath.Split(program); dir != "" {
		if isExecutable(program) {
			return program, true
		}
		return "", false
	}

	for _, entry := range filepath.SplitList(searchPath) {
		entry = strings.Trim(entry, `"`)
		candidate := filepath.Join(entry, program)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// BinaryPath returns the install root of the running binary: the real path
// of argv0 with its last two elements removed (<root>/bin/<exe>).
func BinaryPath(argv0 string) (string, error) {
	abs, err := filepath.Abs(argv0)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &FileError{Path: argv0, Msg: "Unable to resolve executable [" + argv0 + "]", Err: err}
	}
	return filepath.Dir(filepath.Dir(resolved)), nil
}

// IsWindowsPlatform reports whether the binary runs on Windows.
func IsWindowsPlatform() bool {
	return runtime.GOOS == "windows"
}
