package storage

import (
	"io"
	"io/fs"
	"os"
	"strings"
)

type LocalFileSystemDriver struct {
	basePath string
}

func NewLocalFileSystemDriver(basePath string) *LocalFileSystemDriver {
	return &LocalFileSystemDriver{
		basePath: basePath,
	}
}

func (d *LocalFileSystemDriver) Create(path string) (io.WriteCloser, error) {
	return os.Create(d.Path(path))
}

func (d *LocalFileSystemDriver) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(d.Path(path), perm)
}

func (d *LocalFileSystemDriver) Open(path string) (io.ReadCloser, error) {
	return os.Open(d.Path(path))
}

func (d *LocalFileSystemDriver) Path(path string) string {
	if path == "" {
		return d.basePath
	}

	var builder strings.Builder

	builder.Grow(len(d.basePath) + 1 + len(path))
	builder.WriteString(d.basePath)
	builder.WriteString("/")
	builder.WriteString(path)

	return builder.String()
}

func (d *LocalFileSystemDriver) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(d.Path(path))
}

func (d *LocalFileSystemDriver) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(d.Path(path))
}

func (d *LocalFileSystemDriver) Remove(path string) error {
	return os.Remove(d.Path(path))
}

func (d *LocalFileSystemDriver) Rename(oldPath, newPath string) error {
	return os.Rename(d.Path(oldPath), d.Path(newPath))
}

func (d *LocalFileSystemDriver) Stat(path string) (os.FileInfo, error) {
	return os.Stat(d.Path(path))
}

func (d *LocalFileSystemDriver) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(d.Path(path), data, perm)
}
