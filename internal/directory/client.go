// Package directory is the client for the customer directory service used
// during owner enrichment.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"feedc/internal/models"
)

// Service batch-fetches customer profiles for a page. The caller's access
// token is passed through; the engine performs no auth of its own.
type Service interface {
	GetProfiles(ctx context.Context, pageID uint, ids []string, authToken string) ([]models.Profile, error)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

type batchResponse struct {
	Customers []models.Profile `json:"customers"`
}

// GetProfiles fetches the profiles for the given customer ids.
func (c *Client) GetProfiles(ctx context.Context, pageID uint, ids []string, authToken string) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(batchRequest{IDs: ids})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v4/pages/%d/customers/batch", c.baseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory service returned status %d", resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Customers, nil
}
