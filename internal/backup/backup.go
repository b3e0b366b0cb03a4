// Package backup mirrors the full application state to the Google Drive
// app-data folder. The folder is invisible to the user's Drive and holds a
// single fixed-name file that every save overwrites.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// BackupFilename is the single file kept in the app-data folder.
const BackupFilename = "vetprep_cloud_backup.json"

const (
	defaultBaseURL   = "https://www.googleapis.com"
	defaultUploadURL = "https://www.googleapis.com/upload"
)

// ErrNotAuthenticated reports a missing or rejected Drive token. The UI
// treats backup as unavailable rather than broken, so this error is logged
// and swallowed, never shown.
type ErrNotAuthenticated struct {
	Err error
}

func (e *ErrNotAuthenticated) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("drive not authenticated: %v", e.Err)
	}
	return "drive not authenticated"
}

func (e *ErrNotAuthenticated) Unwrap() error { return e.Err }

// Config holds the Drive client settings.
type Config struct {
	// Token is an OAuth2 bearer token with the drive.appdata scope. Empty
	// means backup is disabled.
	Token string

	// BaseURL and UploadURL override the Drive endpoints, for tests.
	BaseURL   string
	UploadURL string

	Timeout time.Duration
}

// DefaultConfig returns Drive client defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   defaultBaseURL,
		UploadURL: defaultUploadURL,
		Timeout:   30 * time.Second,
	}
}

// Client talks to the Drive v3 REST API.
type Client struct {
	http      *http.Client
	token     string
	baseURL   string
	uploadURL string
	logger    *zap.Logger
}

// NewClient creates a Drive backup client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UploadURL == "" {
		cfg.UploadURL = defaultUploadURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		token:     cfg.Token,
		baseURL:   cfg.BaseURL,
		uploadURL: cfg.UploadURL,
		logger:    logger,
	}
}

// Enabled reports whether a token is configured.
func (c *Client) Enabled() bool { return c.token != "" }

// Save writes the snapshot to the app-data folder, overwriting any previous
// backup.
func (c *Client) Save(ctx context.Context, snap *Snapshot) error {
	if !c.Enabled() {
		return &ErrNotAuthenticated{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	fileID, err := c.findBackup(ctx)
	if err != nil {
		return err
	}
	if fileID == "" {
		err = c.createBackup(ctx, data)
	} else {
		err = c.updateBackup(ctx, fileID, data)
	}
	if err != nil {
		return err
	}

	c.logger.Info("cloud backup saved", zap.Int("bytes", len(data)))
	return nil
}

// Load fetches and parses the backup. Returns (nil, false, nil) when no
// backup exists yet.
func (c *Client) Load(ctx context.Context) (*Snapshot, bool, error) {
	if !c.Enabled() {
		return nil, false, &ErrNotAuthenticated{}
	}

	fileID, err := c.findBackup(ctx)
	if err != nil {
		return nil, false, err
	}
	if fileID == "" {
		return nil, false, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/drive/v3/files/%s?alt=media", c.baseURL, fileID))
	if err != nil {
		return nil, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, false, fmt.Errorf("parse backup: %w", err)
	}
	if err := snap.CheckVersion(); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

// findBackup returns the file ID of the backup, empty when absent.
func (c *Client) findBackup(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("spaces", "appDataFolder")
	q.Set("q", fmt.Sprintf("name = '%s'", BackupFilename))
	q.Set("fields", "files(id, name)")

	body, err := c.get(ctx, fmt.Sprintf("%s/drive/v3/files?%s", c.baseURL, q.Encode()))
	if err != nil {
		return "", err
	}

	var listing struct {
		Files []struct {
			ID string `json:"id"`
		} `json:"files"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return "", fmt.Errorf("parse file listing: %w", err)
	}
	if len(listing.Files) == 0 {
		return "", nil
	}
	return listing.Files[0].ID, nil
}

// createBackup uploads a new file via a multipart request: a JSON metadata
// part naming the file and its appDataFolder parent, then the content.
func (c *Client) createBackup(ctx context.Context, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	meta, _ := json.Marshal(map[string]any{
		"name":    BackupFilename,
		"parents": []string{"appDataFolder"},
	})
	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := w.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}
	part.Write(meta)

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", "application/json")
	part, err = w.CreatePart(mediaHeader)
	if err != nil {
		return fmt.Errorf("build multipart: %w", err)
	}
	part.Write(data)
	w.Close()

	u := fmt.Sprintf("%s/drive/v3/files?uploadType=multipart", c.uploadURL)
	contentType := "multipart/related; boundary=" + w.Boundary()
	_, err = c.do(ctx, http.MethodPost, u, contentType, buf.Bytes())
	return err
}

// updateBackup overwrites an existing file's content in place.
func (c *Client) updateBackup(ctx context.Context, fileID string, data []byte) error {
	u := fmt.Sprintf("%s/drive/v3/files/%s?uploadType=media", c.uploadURL, fileID)
	_, err := c.do(ctx, http.MethodPatch, u, "application/json", data)
	return err
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, u, "", nil)
}

func (c *Client) do(ctx context.Context, method, u, contentType string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ErrNotAuthenticated{Err: fmt.Errorf("drive returned %d", resp.StatusCode)}
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("drive returned %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
