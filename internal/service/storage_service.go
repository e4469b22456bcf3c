package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider stores uploaded media and returns a public URL for it.
type StorageProvider interface {
	Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// LocalStorageProvider keeps uploads on the local disk under a static-file
// root that the router serves at /uploads.
type LocalStorageProvider struct {
	BasePath string
}

func (p *LocalStorageProvider) Store(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	path := filepath.Join(p.BasePath, objectName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		os.Remove(path)
		return "", err
	}
	return "/uploads/" + objectName, nil
}

// MinioStorageProvider stores uploads in a MinIO (or S3-compatible) bucket.
type MinioStorageProvider struct {
	client *minio.Client
	bucket string
}

func NewMinioStorageProvider(cfg config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStorageProvider{client: client, bucket: cfg.MinioBucket}, nil
}

func (p *MinioStorageProvider) Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s/%s/%s", p.client.EndpointURL().Host, p.bucket, objectName), nil
}

// StorageService handles question media and avatar uploads.
type StorageService struct {
	provider StorageProvider
	logger   *zap.Logger
}

func NewStorageService(cfg config.StorageConfig, logger *zap.Logger) (*StorageService, error) {
	var provider StorageProvider
	switch cfg.Type {
	case "minio":
		p, err := NewMinioStorageProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		base := cfg.LocalPath
		if base == "" {
			base = "uploads"
		}
		provider = &LocalStorageProvider{BasePath: base}
	}
	return &StorageService{provider: provider, logger: logger}, nil
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".ogg": true, ".m4a": true,
}

// UploadImage stores a question image or avatar and returns its URL.
func (s *StorageService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", util.ErrUnsupportedMedia
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("images/%d_%s%s", time.Now().UnixNano(), util.GenerateRandomString(4), ext)
	contentType := file.Header.Get("Content-Type")
	return s.provider.Store(ctx, objectName, src, file.Size, contentType)
}

// UploadAudio stores a question audio clip. The file is probed first; uploads
// without a playable audio stream are rejected.
func (s *StorageService) UploadAudio(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !audioExtensions[ext] {
		return "", util.ErrUnsupportedMedia
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	info, err := util.GetAudioInfo(tmpPath)
	if err != nil {
		return "", util.ErrUnsupportedMedia
	}
	s.logger.Debug("audio upload probed",
		zap.Float64("duration", info.Duration),
		zap.String("format", info.Format))

	probed, err := os.Open(tmpPath)
	if err != nil {
		return "", err
	}
	defer probed.Close()

	objectName := fmt.Sprintf("audio/%d_%s%s", time.Now().UnixNano(), util.GenerateRandomString(4), ext)
	contentType := file.Header.Get("Content-Type")
	return s.provider.Store(ctx, objectName, probed, info.Size, contentType)
}
