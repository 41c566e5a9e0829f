package archive

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"recwatch/internal/config"
)

// S3Archiver pushes downloaded recordings to an S3 compatible bucket.
type S3Archiver struct {
	bucket            string
	prefix            string
	deleteAfterUpload bool
	uploader          s3manageriface.UploaderAPI
}

func NewS3Archiver(cfg config.ArchiveConfig) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return &S3Archiver{
		bucket:            cfg.Bucket,
		prefix:            strings.Trim(cfg.Prefix, "/"),
		deleteAfterUpload: cfg.DeleteAfterUpload,
		uploader:          s3manager.NewUploader(sess),
	}, nil
}

// Key builds the object key for a recording's relative path.
func (a *S3Archiver) Key(relativePath string) string {
	clean := strings.TrimLeft(path.Clean("/"+filepath.ToSlash(relativePath)), "/")
	if a.prefix == "" {
		return clean
	}
	return a.prefix + "/" + clean
}

// Upload stores localPath under key and returns the final object key.
func (a *S3Archiver) Upload(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	objectKey := a.Key(key)

	contentType := contentTypeFor(localPath)

	slog.Info("archiving recording", "bucket", a.bucket, "key", objectKey, "file", localPath)

	_, err = a.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	if a.deleteAfterUpload {
		f.Close()
		if err := os.Remove(localPath); err != nil {
			slog.Warn("failed to remove archived file", "file", localPath, "error", err)
		}
	}

	return objectKey, nil
}

var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".mkv": "video/x-matroska",
	".ts":  "video/mp2t",
	".avi": "video/x-msvideo",
	".mov": "video/quicktime",
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
