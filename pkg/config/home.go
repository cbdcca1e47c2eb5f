package config

import (
	"os"
	"path/filepath"
	"sync"
)

// The home directory holds what a session leaves behind:
//
//	<home>/logs/messenger.log    default log file
//	<home>/artifacts/            failure screenshots and page sources
//	<home>/bin/messenger-pages   binary of a release install
const envHome = "MESSENGER_PAGES_HOME"

var (
	homeOnce sync.Once
	homeDir  string
)

// GetHome returns the messenger-pages home directory.
//
// Resolution order:
//  1. $MESSENGER_PAGES_HOME
//  2. <home> when the binary runs from <home>/bin
//  3. the working directory, where messenger.yaml is looked up too
func GetHome() string {
	homeOnce.Do(func() {
		homeDir = resolveHome()
	})
	return homeDir
}

// GetLogsDir returns <home>/logs.
func GetLogsDir() string {
	return filepath.Join(GetHome(), "logs")
}

// DefaultLogFile returns <home>/logs/messenger.log.
func DefaultLogFile() string {
	return filepath.Join(GetLogsDir(), "messenger.log")
}

// ResolvePath anchors a relative path from messenger.yaml at the home
// directory. Absolute and empty paths are returned unchanged.
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetHome(), p)
}

func resolveHome() string {
	if env := os.Getenv(envHome); env != "" {
		return env
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		if dir := filepath.Dir(exe); filepath.Base(dir) == "bin" {
			return filepath.Dir(dir)
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// ResetHome clears the cached home directory so tests can change
// $MESSENGER_PAGES_HOME.
func ResetHome() {
	homeOnce = sync.Once{}
	homeDir = ""
}
