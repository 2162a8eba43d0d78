package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal HTTP client for the attestation ledger service. The
// ledger is an opaque key-value store: Write returns a transaction hash for
// traceability, Read returns the attested fields or nil when the uid was
// never attested.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	debug      bool
}

// Config holds the connection settings for a ledger Client.
type Config struct {
	BaseURL string
	APIKey  string
}

// NewClient constructs a new ledger client with sane defaults.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Write records an attestation and returns its transaction hash.
func (c *Client) Write(ctx context.Context, att *Attestation) (string, error) {
	payload, err := json.Marshal(att)
	if err != nil {
		return "", fmt.Errorf("failed to marshal attestation: %w", err)
	}

	body, status, err := c.doRequest(ctx, http.MethodPost, "/attestations", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		return "", fmt.Errorf("ledger write rejected (status %d): %s", status, e.Message)
	}

	var resp writeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode write response: %w", err)
	}
	if resp.TxHash == "" {
		return "", fmt.Errorf("ledger write returned no tx hash")
	}
	return resp.TxHash, nil
}

// Read fetches the attestation for uid. A uid the ledger has never seen
// returns (nil, nil); transport and server failures return an error.
func (c *Client) Read(ctx context.Context, uid string) (*Attestation, error) {
	body, status, err := c.doRequest(ctx, http.MethodGet, "/attestations/"+uid, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ledger read failed with status %d", status)
	}

	var att Attestation
	if err := json.Unmarshal(body, &att); err != nil {
		return nil, fmt.Errorf("failed to decode attestation: %w", err)
	}
	return &att, nil
}

// Ping checks that the ledger service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, status, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("ledger health returned status %d", status)
	}
	return nil
}

// doRequest performs one HTTP call against the ledger and returns the raw
// response body and status code.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", c.baseURL+endpoint).
			Msg("[LEDGER] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[LEDGER] Incoming response")
	}

	return body, resp.StatusCode, nil
}
