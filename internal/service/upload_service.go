package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/primeitclub/ict-meetup-api/internal/dto"
	circuitbreaker "github.com/primeitclub/ict-meetup-api/internal/infrastructure/circuit-breaker"
	"github.com/primeitclub/ict-meetup-api/internal/infrastructure/storage/cloudinary"
	"github.com/primeitclub/ict-meetup-api/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

const MaxImageSize = 150 * 1024

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

var allowedImageMIMETypes = map[string]bool{
	"image/png":   true,
	"image/jpeg":  true,
	"image/jpg":   true,
	"image/webp":  true,
	"image/pjpeg": true,
	"image/x-png": true,
}

var pathSegmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ImageStorage is the remote backup target for uploaded images.
type ImageStorage interface {
	UploadImage(ctx context.Context, path string, folder string) (cloudinary.UploadResult, error)
}

type UploadServiceImpl struct {
	uploadDir string
	storage   ImageStorage
	breaker   *gobreaker.CircuitBreaker[cloudinary.UploadResult]
	now       func() time.Time
}

// CreateUploadService stores images under uploadDir. storage may be nil, in
// which case images are only kept locally.
func CreateUploadService(uploadDir string, storage ImageStorage) UploadService {
	return &UploadServiceImpl{
		uploadDir: uploadDir,
		storage:   storage,
		breaker:   circuitbreaker.CreateCircuitBreaker[cloudinary.UploadResult]("cloudinary"),
		now:       time.Now,
	}
}

func (s *UploadServiceImpl) UploadImage(ctx context.Context, version string, module string, file *multipart.FileHeader) (res dto.UploadedImage, err error) {
	if file == nil {
		return res, errs.ErrImageRequired
	}

	if !pathSegmentPattern.MatchString(version) || !pathSegmentPattern.MatchString(module) {
		return res, fmt.Errorf("%w: invalid upload folder", errs.ErrClient)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return res, errs.ErrNotAnImage
	}

	mediaType, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil || !allowedImageMIMETypes[mediaType] {
		return res, errs.ErrNotAnImage
	}

	if file.Size > MaxImageSize {
		return res, errs.ErrFileSizeExceedingLimit
	}

	dir := filepath.Join(s.uploadDir, "assets", version, module)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating upload directory: %w", err)
	}

	fileName := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), ulid.Make().String(), ext)
	localPath := filepath.Join(dir, fileName)

	if err = saveFile(file, localPath); err != nil {
		return res, err
	}

	log.Info().Str("component", "UploadImage").Str("path", localPath).Msg("image stored locally")

	res.LocalPath = localPath
	res.LocalURL = path.Join("/public/assets", version, module, fileName)

	if s.storage == nil {
		return res, nil
	}

	folder := path.Join("assets", version, module)
	result, err := s.breaker.Execute(func() (cloudinary.UploadResult, error) {
		return s.storage.UploadImage(ctx, localPath, folder)
	})
	if err != nil {
		log.Error().Err(err).Str("component", "UploadImage").Str("path", localPath).Msg("cloud backup failed")

		if rmErr := os.Remove(localPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Error().Err(rmErr).Str("component", "UploadImage").Str("path", localPath).Msg("failed to delete local file")
		}

		return dto.UploadedImage{}, fmt.Errorf("%w: %v", errs.ErrBadGateway, err)
	}

	res.CloudURL = result.SecureURL
	res.PublicID = result.PublicID

	return res, nil
}

func saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating local file: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, src); err != nil {
		os.Remove(dst)
		return fmt.Errorf("writing local file: %w", err)
	}

	return nil
}
