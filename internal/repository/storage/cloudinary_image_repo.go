package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/finman-app/finman-backend/internal/config"
)

const cloudinaryUploadURL = "https://api.cloudinary.com/v1_1/%s/image/upload"

// CloudinaryImageRepository implements ImageRepository using Cloudinary's
// unsigned upload API: multipart form with a file part and an upload_preset
// field, secure_url in the response.
type CloudinaryImageRepository struct {
	uploadURL    string
	uploadPreset string
	httpClient   *http.Client
}

// NewCloudinaryImageRepository creates a new Cloudinary image repository
func NewCloudinaryImageRepository(cfg config.CloudinaryConfig) (*CloudinaryImageRepository, error) {
	if cfg.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud name is required")
	}
	if cfg.UploadPreset == "" {
		return nil, fmt.Errorf("cloudinary upload preset is required")
	}
	return &CloudinaryImageRepository{
		uploadURL:    fmt.Sprintf(cloudinaryUploadURL, cfg.CloudName),
		uploadPreset: cfg.UploadPreset,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload posts the image and returns its secure URL.
func (r *CloudinaryImageRepository) Upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.WriteField("upload_preset", r.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to write upload_preset field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("image host upload failed: status %d", resp.StatusCode)
	}

	var uploaded cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if uploaded.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}
	return uploaded.SecureURL, nil
}
