// Package assets talks to the Cloudinary REST API. Only deletion lives
// here; uploads go straight from the admin UI to Cloudinary with an unsigned
// preset.
package assets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const destroyEndpoint = "https://api.cloudinary.com/v1_1/%s/image/destroy"

// CloudinaryConfig carries the account credentials for signed API calls.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

type CloudinaryStore struct {
	cfg    CloudinaryConfig
	client *http.Client
}

func NewCloudinaryStore(cfg CloudinaryConfig) *CloudinaryStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CloudinaryStore{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// Destroy deletes the image identified by publicID. Cloudinary answers
// {"result":"ok"} on success and {"result":"not found"} for unknown IDs;
// the latter is treated as success since the asset is gone either way.
func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", ts)
	form.Set("api_key", s.cfg.APIKey)
	form.Set("signature", s.sign(publicID, ts))

	endpoint := fmt.Sprintf(destroyEndpoint, s.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build destroy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cloudinary destroy: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode destroy response: %w", err)
	}
	if body.Result != "ok" && body.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: result %q", body.Result)
	}
	return nil
}

// sign builds the SHA-1 request signature over the sorted parameter string,
// per the Cloudinary authentication scheme.
func (s *CloudinaryStore) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.cfg.APISecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
