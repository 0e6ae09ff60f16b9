package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// UploadConfig describes the Cloudinary account firmware assets are hosted on.
type UploadConfig struct {
	// Endpoint is the API origin, without a trailing slash.
	Endpoint string `json:"endpoint"`
	Account  string `json:"account"`
	Preset   string `json:"preset"`
	APIKey   string `json:"api_key"`
	Source   string `json:"source"`
}

// DefaultUploadConfig returns the account the console ships with.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		Endpoint: "https://api.cloudinary.com",
		Account:  "xiaolong",
		Preset:   "**",
		Source:   "ml",
	}
}

// URL is the upload endpoint of the account.
func (u UploadConfig) URL() string {
	return fmt.Sprintf("%s/v1_1/%s/upload", strings.TrimRight(u.Endpoint, "/"), u.Account)
}

// UploadFirmwareAsset posts file to the media host as a multipart form and
// returns where it was stored. It goes straight to the media host: no
// session token is attached.
func (c *Client) UploadFirmwareAsset(ctx context.Context, filename string, file io.Reader) (models.Upload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return models.Upload{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.Upload{}, fmt.Errorf("read %s: %w", filename, err)
	}
	fields := [][2]string{
		{"upload_preset", c.upload.Preset},
		{"api_key", c.upload.APIKey},
		{"source", c.upload.Source},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return models.Upload{}, fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return models.Upload{}, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.upload.URL(), &buf)
	if err != nil {
		return models.Upload{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return send[models.Upload](c, req)
}
