package storage

import (
	"bytes"
	"io/fs"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectWriter buffers writes and uploads the object when closed. Snapshot
// payloads are published with a single put so a reader can never observe a
// partially written object.
type objectWriter struct {
	buffer *bytes.Buffer
	closed bool
	driver *ObjectFileSystemDriver
	key    string
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}

	return w.buffer.Write(p)
}

func (w *objectWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}

	w.closed = true

	_, err := w.driver.S3Client.PutObject(w.driver.context, &s3.PutObjectInput{
		Body:   bytes.NewReader(w.buffer.Bytes()),
		Bucket: aws.String(w.driver.bucket),
		Key:    aws.String(w.key),
	})

	if err != nil {
		return pathError("write", w.key, err)
	}

	return nil
}

type ObjectFileInfo struct {
	modTime time.Time
	name    string
	size    int64
}

func (fi *ObjectFileInfo) IsDir() bool {
	// Check if name ends with a slash
	return strings.HasSuffix(fi.name, "/")
}

func (fi *ObjectFileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *ObjectFileInfo) Mode() fs.FileMode {
	return 0
}

func (fi *ObjectFileInfo) Name() string {
	return fi.name
}

func (fi *ObjectFileInfo) Size() int64 {
	return fi.size
}

func (fi *ObjectFileInfo) Sys() any {
	return nil
}

type ObjectDirEntry struct {
	modTime time.Time
	name    string
	size    int64
}

func (entry *ObjectDirEntry) Info() (fs.FileInfo, error) {
	return &ObjectFileInfo{
		modTime: entry.modTime,
		name:    entry.name,
		size:    entry.size,
	}, nil
}

func (entry *ObjectDirEntry) IsDir() bool {
	return false
}

func (entry *ObjectDirEntry) Name() string {
	return entry.name
}

func (entry *ObjectDirEntry) Type() fs.FileMode {
	return 0
}
