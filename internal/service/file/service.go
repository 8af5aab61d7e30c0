package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orbithr/hr-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Avatars are normalized to fit this bounding box before storage.
const maxAvatarDimension = 512

type FileService interface {
	// UploadAvatar normalizes a profile picture (resize + JPEG re-encode)
	// and stores it, returning the storage path.
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadLeaveAttachment stores a supporting document for a leave request.
	UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	normalized, err := normalizeAvatar(file)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uuid.New().String())
	path := filepath.Join("avatars", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(normalized), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadedPath, nil
}

// UploadLeaveAttachment implements FileService.
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".pdf" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png, pdf allowed")
	}

	newFilename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	path := filepath.Join("leave", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL implements FileService.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// normalizeAvatar decodes an uploaded image, scales it down to fit the
// avatar bounding box and re-encodes it as JPEG. Images already inside the
// box keep their dimensions but are still re-encoded, which strips any
// non-image payload from the original file.
func normalizeAvatar(file io.Reader) ([]byte, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxAvatarDimension || height > maxAvatarDimension {
		scale := float64(maxAvatarDimension) / float64(width)
		if height > width {
			scale = float64(maxAvatarDimension) / float64(height)
		}
		dstWidth := int(float64(width) * scale)
		dstHeight := int(float64(height) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return buf.Bytes(), nil
}
