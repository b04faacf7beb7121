// Package iracing is the client for the iRacing member stats site.
package iracing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/results-collector/internal/config"
)

const (
	loginPath         = "/membersite/Login"
	failedLoginMarker = "failedlogin"
	formContentType   = "application/x-www-form-urlencoded"
)

// Client implements StatsService over the member site's HTTP endpoints.
type Client struct {
	httpClient *RateLimitedHTTPClient
	config     *config.IRacingConfig
	baseURL    string
	logger     *logrus.Entry

	mu            sync.RWMutex
	authenticated bool
	catalog       Catalog
}

var _ StatsService = (*Client)(nil)

// NewClient creates a new member site client
func NewClient(cfg *config.IRacingConfig, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if httpClient == nil {
		httpClient = NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), logger)
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.WithField("component", "iracing_client"),
	}
}

// Login posts the member credentials and, on success, loads the reference
// catalog. A redirect to the failed-login page or any non-200 answer is an
// AuthenticationError.
func (c *Client) Login(ctx context.Context) error {
	c.logger.WithField("username", c.config.Username).Info("Logging in")

	form := url.Values{}
	form.Set("username", c.config.Username)
	form.Set("password", c.config.Password)
	form.Set("utcoffset", "0")
	form.Set("todaysdate", "")

	resp, err := c.httpClient.Post(ctx, c.baseURL+loginPath, formContentType, strings.NewReader(form.Encode()))
	if err != nil {
		c.setAuthenticated(false)
		return NewAuthenticationError("login request failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.setAuthenticated(false)
		return NewAuthenticationError(fmt.Sprintf("login failed with status %d", resp.StatusCode), nil)
	}
	if resp.Request != nil && strings.Contains(strings.ToLower(resp.Request.URL.String()), failedLoginMarker) {
		c.setAuthenticated(false)
		return NewAuthenticationError("login rejected, check your credentials", nil)
	}

	catalog, err := c.loadCatalog(ctx)
	if err != nil {
		c.setAuthenticated(false)
		return err
	}

	c.mu.Lock()
	c.authenticated = true
	c.catalog = catalog
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"cars":        len(catalog.Cars),
		"car_classes": len(catalog.CarClasses),
		"tracks":      len(catalog.Tracks),
	}).Info("Login successful")
	return nil
}

// IsAuthenticated reports whether the last Login succeeded.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Catalog returns the snapshot loaded at login.
func (c *Client) Catalog() Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

func (c *Client) setAuthenticated(v bool) {
	c.mu.Lock()
	c.authenticated = v
	c.mu.Unlock()
}

// getJSON fetches path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, c.baseURL+path)
	if err != nil {
		return NewAPIError(path, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(path, resp.StatusCode, "unexpected status", nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewAPIError(path, resp.StatusCode, "failed to decode response", err)
	}
	return nil
}
