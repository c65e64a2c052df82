package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type RemoteConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Timeout      time.Duration
}

// RemoteSource reads catalog entries from an HTTP catalog API authenticated
// with the OAuth2 client credentials grant.
type RemoteSource struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewRemoteSource(ctx context.Context, cfg RemoteConfig, logger *slog.Logger) (*RemoteSource, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid catalog URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// The token fetch shares the request timeout.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}

	client := cc.Client(ctx)
	client.Timeout = timeout

	logger.Debug("Initializing remote catalog source", "base_url", cfg.BaseURL, "scopes", cfg.Scopes)

	return &RemoteSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		logger:  logger,
	}, nil
}

func (s *RemoteSource) LookupByIndex(ctx context.Context, index int) (Row, error) {
	logger := s.logger.With("component", "catalog_remote", "operation", "lookup_by_index", "catalog_index", index)
	logger.Debug("Requesting catalog entry")

	endpoint := s.baseURL + "/stars/" + strconv.Itoa(index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Row{}, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("Failed to request catalog entry", "error", err)
		return Row{}, fmt.Errorf("failed to request catalog entry: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close response body", "error", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		logger.Debug("Catalog entry not found")
		return Row{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	default:
		logger.Error("Catalog API returned error status", "status_code", resp.StatusCode, "status", resp.Status)
		return Row{}, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var row Row
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		logger.Error("Failed to decode catalog entry", "error", err)
		return Row{}, fmt.Errorf("failed to decode catalog entry: %w", err)
	}
	if row.Index != index {
		logger.Error("Catalog API returned a different entry", "returned_index", row.Index)
		return Row{}, fmt.Errorf("catalog API returned index %d for %d", row.Index, index)
	}
	if err := row.Validate(); err != nil {
		return Row{}, fmt.Errorf("invalid catalog entry: %w", err)
	}

	logger.Debug("Catalog entry retrieved", "spectral_type", row.SpectralType)
	return row, nil
}
