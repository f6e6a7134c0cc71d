// Package web provides the static content tree: the embedded production
// bundle, or a directory on disk.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed all:dist
var dist embed.FS

// Embedded returns the bundle compiled into the binary.
func Embedded() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}

// Open returns the directory at root, or the embedded bundle when root is
// empty.
func Open(root string) (fs.FS, error) {
	if root == "" {
		return Embedded()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}
	return os.DirFS(root), nil
}
