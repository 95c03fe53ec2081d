package storage

import (
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/dbsnap/dbsnap/pkg/config"
)

// The FileSystem struct is used to abstract the underlying file system
// implementation. This allows snapshots to be kept on a local directory or on
// remote object storage.
type FileSystem struct {
	driver FileSystemDriver
	mutex  *sync.Mutex
}

// The FileSystemDriver interface defines the methods that must be implemented
// by a file system driver.
type FileSystemDriver interface {
	Create(path string) (io.WriteCloser, error)
	MkdirAll(path string, perm fs.FileMode) error
	Open(path string) (io.ReadCloser, error)
	ReadDir(path string) ([]os.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (os.FileInfo, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

func NewFileSystem(driver FileSystemDriver) *FileSystem {
	return &FileSystem{
		driver: driver,
		mutex:  &sync.Mutex{},
	}
}

// Returns a FileSystem backed by the driver named in the configuration.
func NewFileSystemFromConfig(c *config.Config) (*FileSystem, error) {
	switch c.StorageDriver {
	case config.StorageDriverObject:
		driver, err := NewObjectFileSystemDriver(c)

		if err != nil {
			return nil, err
		}

		return NewFileSystem(driver), nil
	default:
		return NewFileSystem(NewLocalFileSystemDriver(c.SnapshotDirectory)), nil
	}
}

func (fs *FileSystem) Create(path string) (io.WriteCloser, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.Create(path)
}

func (fs *FileSystem) MkdirAll(path string, perm fs.FileMode) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.MkdirAll(path, perm)
}

func (fs *FileSystem) Open(path string) (io.ReadCloser, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.Open(path)
}

func (fs *FileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.ReadDir(path)
}

func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.ReadFile(path)
}

func (fs *FileSystem) Remove(path string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.Remove(path)
}

func (fs *FileSystem) Rename(oldPath, newPath string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.Rename(oldPath, newPath)
}

func (fs *FileSystem) Stat(path string) (os.FileInfo, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.Stat(path)
}

func (fs *FileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	return fs.driver.WriteFile(path, data, perm)
}
