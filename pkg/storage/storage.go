package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

// Uploader stores an image and returns its URL.
type Uploader interface {
	UploadImage(ctx context.Context, folder, publicID string, data []byte) (string, error)
}

// CloudinaryUploader uploads to Cloudinary.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL.
// Returns nil (and no error) when the URL is empty, so callers can fall back
// to inline images in development.
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration error: %v", err)
	}
	return &CloudinaryUploader{client: cld}, nil
}

func (c *CloudinaryUploader) UploadImage(ctx context.Context, folder, publicID string, data []byte) (string, error) {
	result, err := c.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		Transformation: "c_limit,w_800,h_800,q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %v", err)
	}
	return result.SecureURL, nil
}

// ImageStore wraps an Uploader with the data-URI fallback: when the upload
// fails (or no uploader is configured) the image is inlined as base64 and
// served straight from the document. This is a normal code path, not an
// exceptional one.
type ImageStore struct {
	uploader Uploader
}

func NewImageStore(uploader Uploader) *ImageStore {
	return &ImageStore{uploader: uploader}
}

// Store returns a URL for the image: a Cloudinary URL when the upload
// succeeds, otherwise a base64 data URI.
func (s *ImageStore) Store(ctx context.Context, folder, publicID string, data []byte) string {
	if s.uploader != nil {
		url, err := s.uploader.UploadImage(ctx, folder, publicID, data)
		if err == nil {
			return url
		}
		logrus.WithError(err).Warn("Image upload failed, inlining as data URI")
	}
	return DataURI(data)
}

// DataURI encodes image bytes as a base64 data URI.
func DataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
