package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const maxImageSize = 10 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService prefers explicit credentials and falls back to
// CLOUDINARY_URL.
func NewCloudinaryService(cldURL, cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cloudName != "" && apiKey != "" && apiSecret != "":
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	case cldURL != "":
		cld, err = cloudinary.NewFromURL(cldURL)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

func ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > maxImageSize {
		return errors.New("file too large (max 10MB)")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	}
	return nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(base, " ", "_"))

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", errors.New("cloudinary returned no URL")
}
