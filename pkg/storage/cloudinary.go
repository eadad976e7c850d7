package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryOptions struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	prefix string
}

// NewCloudinaryStorage creates Cloudinary-backed implementation of ImageStorage.
// With empty credentials the SDK falls back to CLOUDINARY_URL.
func NewCloudinaryStorage(opts CloudinaryOptions) (ImageStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if opts.CloudName != "" && opts.APIKey != "" && opts.APISecret != "" {
		cld, err = cloudinary.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld, prefix: opts.UploadFolder}, nil
}

// UploadImage uploads an image to Cloudinary and returns the secure URL.
func (s *cloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), strings.TrimSuffix(fileName, filepath.Ext(fileName)))

	if s.prefix != "" {
		folder = s.prefix + "/" + folder
	}

	params := uploader.UploadParams{
		Folder:         folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		PublicID:       publicID,
		Overwrite:      api.Bool(false),
	}

	// Apply WebP conversion and compression only for images
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".gif", ".webp":
		params.Format = "webp"
		params.Transformation = "q_auto"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}

	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

// DeleteImage deletes image from Cloudinary.
func (s *cloudinaryStorage) DeleteImage(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	// Invalidate: true helps to clear CDN cache
	params := uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// Owns matches secure delivery URLs of the configured cloud, inside the
// upload folder when one is set.
func (s *cloudinaryStorage) Owns(fileURL string) bool {
	if s == nil || s.cld == nil {
		return false
	}
	u, err := url.Parse(fileURL)
	if err != nil || u.Host != "res.cloudinary.com" {
		return false
	}
	if !strings.HasPrefix(u.Path, "/"+s.cld.Config.Cloud.CloudName+"/") {
		return false
	}
	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return false
	}
	return s.prefix == "" || strings.HasPrefix(publicID, s.prefix+"/")
}

// extractPublicID attempts to extract the public ID from a Cloudinary URL.
// Example: https://res.cloudinary.com/demo/image/upload/v123456789/folder/sample.jpg -> folder/sample
func extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	// Path is roughly /<cloud_name>/image/upload/v<version>/<folder>/<file>.<ext>
	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	relevantParts := parts[uploadIndex+1:]

	if len(relevantParts) > 0 && isVersionSegment(relevantParts[0]) {
		relevantParts = relevantParts[1:]
	}

	if len(relevantParts) == 0 {
		return ""
	}

	publicIDWithExt := strings.Join(relevantParts, "/")
	return strings.TrimSuffix(publicIDWithExt, filepath.Ext(publicIDWithExt))
}

// isVersionSegment matches Cloudinary's "v<digits>" path segment.
func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
