// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
)

// ConfigExtensions lists the source file extensions the application
// understands, in discovery preference order.
var ConfigExtensions = []string{".pfg", ".yaml", ".yml", ".hcl"}

// FindInstanceConfig searches the given directories, in order, for a
// configuration file named after the instance (e.g. "hello.pfg" for
// instance "hello"). The first match wins. It returns the path and whether
// anything was found.
func FindInstanceConfig(instance string, dirs []string) (string, bool) {
	for _, dir := range dirs {
		for _, ext := range ConfigExtensions {
			path := filepath.Join(dir, instance+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}
