package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path exists without following a final symlink.
func Exists(fsys FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsSymlink reports whether info describes a symbolic link.
func IsSymlink(info fs.FileInfo) bool {
	return info != nil && info.Mode()&fs.ModeSymlink != 0
}

// RemoveAny deletes path whatever it is. A symlink is removed itself, never
// its target. A missing path is not an error.
func RemoveAny(fsys FS, path string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return fsys.RemoveAll(path)
	}
	return fsys.Remove(path)
}

// EnsureParent creates the parent directories of path.
func EnsureParent(fsys FS, path string) error {
	return fsys.MkdirAll(filepath.Dir(path), 0755)
}

// CopyFile copies the bytes of src to dst, keeping permission bits.
// dst is expected not to exist; callers clear it first.
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, info.Mode().Perm())
}

// CopyTree recursively copies directories and regular files from src into
// dst. Symbolic links and special files are skipped.
func CopyTree(fsys FS, src, dst string) error {
	return fsys.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case IsSymlink(info):
			return nil
		case info.IsDir():
			return fsys.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode().IsRegular():
			return CopyFile(fsys, path, target)
		default:
			return nil
		}
	})
}

// MirrorDir makes dst an exact copy of src: dst is deleted, recreated and
// filled, so anything absent from src disappears from dst.
func MirrorDir(fsys FS, src, dst string) error {
	if err := RemoveAny(fsys, dst); err != nil {
		return err
	}
	if err := EnsureParent(fsys, dst); err != nil {
		return err
	}
	return CopyTree(fsys, src, dst)
}

// PruneNamedDirs removes every directory called name at any depth under
// root, root included. onRemove, when set, is called before each removal.
// It returns the removed paths.
func PruneNamedDirs(fsys FS, root, name string, onRemove func(path string)) ([]string, error) {
	var found []string
	err := fsys.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && !IsSymlink(info) && info.Name() == name {
			found = append(found, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, dir := range found {
		if onRemove != nil {
			onRemove(dir)
		}
		if err := fsys.RemoveAll(dir); err != nil {
			return nil, err
		}
	}
	return found, nil
}
