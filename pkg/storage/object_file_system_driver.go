package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dbsnap/dbsnap/pkg/config"
)

// ObjectFileSystemDriver keeps snapshot artifacts on S3-compatible object
// storage. Object keys are the same relative paths the local driver uses, so
// the snapshot store does not know which driver it is running on.
type ObjectFileSystemDriver struct {
	bucket   string
	context  context.Context
	prefix   string
	S3Client *s3.Client
}

func NewObjectFileSystemDriver(c *config.Config) (*ObjectFileSystemDriver, error) {
	ctx := context.Background()

	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(c.StorageRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.StorageAccessKeyId,
				c.StorageSecretAccessKey,
				"",
			),
		),
	)

	if err != nil {
		return nil, fmt.Errorf("error loading object storage configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if c.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(c.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	return &ObjectFileSystemDriver{
		bucket:   c.StorageBucket,
		context:  ctx,
		prefix:   strings.Trim(c.SnapshotDirectory, "/"),
		S3Client: s3Client,
	}, nil
}

func (d *ObjectFileSystemDriver) Create(path string) (io.WriteCloser, error) {
	return &objectWriter{
		buffer: bytes.NewBuffer(nil),
		driver: d,
		key:    d.Key(path),
	}, nil
}

func (d *ObjectFileSystemDriver) Key(path string) string {
	if d.prefix == "" {
		return path
	}

	if path == "" {
		return d.prefix
	}

	return fmt.Sprintf("%s/%s", d.prefix, path)
}

// Object storage has no directories to create.
func (d *ObjectFileSystemDriver) MkdirAll(path string, perm fs.FileMode) error {
	return nil
}

func (d *ObjectFileSystemDriver) Open(path string) (io.ReadCloser, error) {
	output, err := d.S3Client.GetObject(d.context, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.Key(path)),
	})

	if err != nil {
		return nil, pathError("open", path, err)
	}

	return output.Body, nil
}

func (d *ObjectFileSystemDriver) ReadDir(path string) ([]os.DirEntry, error) {
	prefix := d.Key(path)

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(d.S3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(d.bucket),
		Prefix: aws.String(prefix),
	})

	entries := make([]os.DirEntry, 0)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(d.context)

		if err != nil {
			return nil, pathError("readdir", path, err)
		}

		for _, object := range page.Contents {
			name := strings.TrimPrefix(*object.Key, prefix)

			if name == "" || strings.Contains(name, "/") {
				continue
			}

			entries = append(entries, &ObjectDirEntry{
				modTime: aws.ToTime(object.LastModified),
				name:    name,
				size:    aws.ToInt64(object.Size),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (d *ObjectFileSystemDriver) ReadFile(path string) ([]byte, error) {
	file, err := d.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	return io.ReadAll(file)
}

// Remove is idempotent, S3 DeleteObject does not fail for missing keys.
func (d *ObjectFileSystemDriver) Remove(path string) error {
	_, err := d.S3Client.DeleteObject(d.context, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.Key(path)),
	})

	if err != nil {
		return pathError("remove", path, err)
	}

	return nil
}

// Rename on object storage is a copy followed by a delete of the source key.
func (d *ObjectFileSystemDriver) Rename(oldPath, newPath string) error {
	_, err := d.S3Client.CopyObject(d.context, &s3.CopyObjectInput{
		Bucket:     aws.String(d.bucket),
		CopySource: aws.String(fmt.Sprintf("%s/%s", d.bucket, d.Key(oldPath))),
		Key:        aws.String(d.Key(newPath)),
	})

	if err != nil {
		return pathError("rename", oldPath, err)
	}

	return d.Remove(oldPath)
}

func (d *ObjectFileSystemDriver) Stat(path string) (os.FileInfo, error) {
	output, err := d.S3Client.HeadObject(d.context, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.Key(path)),
	})

	if err != nil {
		return nil, pathError("stat", path, err)
	}

	return &ObjectFileInfo{
		modTime: aws.ToTime(output.LastModified),
		name:    path,
		size:    aws.ToInt64(output.ContentLength),
	}, nil
}

func (d *ObjectFileSystemDriver) WriteFile(path string, data []byte, perm fs.FileMode) error {
	_, err := d.S3Client.PutObject(d.context, &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.Key(path)),
	})

	if err != nil {
		return pathError("write", path, err)
	}

	return nil
}

// Translate missing-key API errors into fs.ErrNotExist so callers can use
// os.IsNotExist regardless of the driver.
func pathError(op, path string, err error) error {
	var apiError smithy.APIError

	if errors.As(err, &apiError) {
		switch apiError.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
		}
	}

	return &fs.PathError{Op: op, Path: path, Err: err}
}
