package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxPhotoSize      = 5 * 1024 * 1024
	MinPhotoWidth     = 50
	MinPhotoHeight    = 50
	ThumbnailWidth    = 200
	DisplayWidth      = 800
	JPEGQuality       = 85
	PhotoURLExpiry    = time.Hour
	photoContentType  = "image/jpeg"
	photoVariantThumb = "thumb"
)

var (
	ErrPhotoTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidPhotoFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrPhotoTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidPhotoData          = errors.New("invalid image data")
	ErrPhotoStorageNotConfigured = errors.New("photo storage not configured")
)

// AllowedPhotoExtensions maps upload extensions to content types
var AllowedPhotoExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type photoVariant struct {
	name     string
	maxWidth int
}

// Every upload is stored in these sizes. A zero width keeps the original size.
var photoVariants = []photoVariant{
	{photoVariantThumb, ThumbnailWidth},
	{"display", DisplayWidth},
	{"original", 0},
}

// PhotoURLs are short-lived signed URLs of a stored vehicle photo
type PhotoURLs struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
	OriginalURL  string `json:"originalUrl"`
}

// PhotoService resizes vehicle photos and keeps them in object storage. The
// stored photo path is the object key prefix shared by all variants.
type PhotoService struct {
	storage storage.PhotoRepository
}

// NewPhotoService creates a PhotoService. A nil storage disables uploads.
func NewPhotoService(storage storage.PhotoRepository) *PhotoService {
	return &PhotoService{storage: storage}
}

// IsEnabled reports whether photo storage is configured
func (s *PhotoService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidatePhoto checks size, extension and dimensions
func (s *PhotoService) ValidatePhoto(data []byte, filename string) error {
	_, err := decodePhoto(data, filename)
	return err
}

func decodePhoto(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxPhotoSize {
		return nil, ErrPhotoTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedPhotoExtensions[ext]; !ok {
		return nil, ErrInvalidPhotoFormat
	}

	// Phone cameras store rotation in EXIF
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidPhotoData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinPhotoWidth || bounds.Dy() < MinPhotoHeight {
		return nil, ErrPhotoTooSmall
	}
	return img, nil
}

// Upload stores every variant of a vehicle photo and returns the photo path.
// On failure the variants already stored are removed.
func (s *PhotoService) Upload(ctx context.Context, workspaceID, vehicleID int32, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrPhotoStorageNotConfigured
	}

	img, err := decodePhoto(data, filename)
	if err != nil {
		return "", err
	}

	basePath := fmt.Sprintf("%d/vehicles/%d/%s", workspaceID, vehicleID, uuid.NewString())
	var uploaded []string

	for _, variant := range photoVariants {
		processed := img
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, processed, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
			s.deleteObjects(ctx, uploaded)
			return "", fmt.Errorf("failed to encode %s variant: %w", variant.name, err)
		}

		objectPath := variantPath(basePath, variant.name)
		if _, err := s.storage.Upload(ctx, objectPath, &buf, photoContentType, int64(buf.Len())); err != nil {
			s.deleteObjects(ctx, uploaded)
			return "", fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, objectPath)
	}

	return basePath, nil
}

// Delete removes every variant of a photo. Missing objects are not an error.
func (s *PhotoService) Delete(ctx context.Context, basePath string) error {
	if basePath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrPhotoStorageNotConfigured
	}

	paths := make([]string, 0, len(photoVariants))
	for _, variant := range photoVariants {
		paths = append(paths, variantPath(basePath, variant.name))
	}
	s.deleteObjects(ctx, paths)
	return nil
}

// URLs signs the variants of a photo
func (s *PhotoService) URLs(ctx context.Context, basePath string) (*PhotoURLs, error) {
	if basePath == "" || !s.IsEnabled() {
		return nil, nil
	}

	urls := make(map[string]string, len(photoVariants))
	for _, variant := range photoVariants {
		url, err := s.storage.GeneratePresignedURL(ctx, variantPath(basePath, variant.name), PhotoURLExpiry)
		if err != nil {
			return nil, err
		}
		urls[variant.name] = url
	}

	return &PhotoURLs{
		ThumbnailURL: urls[photoVariantThumb],
		DisplayURL:   urls["display"],
		OriginalURL:  urls["original"],
	}, nil
}

func (s *PhotoService) deleteObjects(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.storage.Delete(ctx, p); err != nil {
			log.Warn().Err(err).Str("object", p).Msg("Failed to delete photo object")
		}
	}
}

func variantPath(basePath, variant string) string {
	return basePath + "_" + variant + ".jpg"
}

// PhotoContentType returns the content type for an upload filename
func PhotoContentType(filename string) string {
	if ct, ok := AllowedPhotoExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
