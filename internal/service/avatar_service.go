package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Levuisha/parfumerie/internal/config"
	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultAvatarUploadDir       = "/tmp/parfumerie/uploads/avatars"
	DefaultAvatarMaxUploadSizeMB = 5
	AvatarSize                   = 512
	AvatarWebPQuality            = 80
)

// AvatarService validates, squares, and re-encodes avatar uploads to WebP.
// Each user has exactly one avatar file; a new upload replaces it in place.
type AvatarService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

type UploadAvatarInput struct {
	UserID      uint
	ContentType string
	Content     []byte
}

func NewAvatarService(cfg *config.Config) *AvatarService {
	uploadDir := DefaultAvatarUploadDir
	maxUploadSizeMB := DefaultAvatarMaxUploadSizeMB

	if cfg != nil {
		if cfg.AvatarUploadDir != "" {
			uploadDir = cfg.AvatarUploadDir
		}
		if cfg.AvatarMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.AvatarMaxUploadSizeMB
		}
	}

	return &AvatarService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadDir exposes the configured root so the server can mount it as a
// static route.
func (s *AvatarService) UploadDir() string {
	return s.uploadDir
}

// Upload stores the user's avatar and returns its public URL.
func (s *AvatarService) Upload(in UploadAvatarInput) (string, error) {
	if in.UserID == 0 {
		return "", models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedAvatarMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	squared := squareCrop(decoded)
	resized := resizeSquare(squared, AvatarSize)

	encoded, err := encodeAvatarWebP(resized)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	rel := filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(in.UserID), 10), "avatar.webp"))
	abs := filepath.Join(s.uploadDir, rel)
	if err := writeAvatarFile(abs, encoded); err != nil {
		return "", models.NewInternalError(err)
	}

	return "/uploads/avatars/" + rel, nil
}

// squareCrop center-crops to a square so resizing never distorts faces.
func squareCrop(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}

	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Copy(dst, image.Point{}, src, image.Rect(x, y, x+side, y+side), xdraw.Src, nil)
	return dst
}

func resizeSquare(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodeAvatarWebP(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedAvatarMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func writeAvatarFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
