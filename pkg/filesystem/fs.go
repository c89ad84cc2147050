package filesystem

import (
	"io/fs"
	"path/filepath"
)

// FS is the filesystem surface used by the engines and the ledger store.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Walk visits root and everything below it in lexical order without
	// following symbolic links, with filepath.Walk semantics.
	Walk(root string, fn filepath.WalkFunc) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}
