// Package unpaywall checks the Unpaywall database for free copies of a DOI.
package unpaywall

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/provider"
	"github.com/korima-app/korima-backend/pkg/validate"
)

const (
	name            = "unpaywall"
	defaultBaseURL  = "https://api.unpaywall.org/v2"
	defaultVersion  = "publishedVersion"
	defaultHostType = "publisher"
)

// Provider queries Unpaywall once per call, without retries or caching.
type Provider struct {
	baseURL    string
	email      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. Unpaywall requires a contact email on
// every request.
func NewProvider(baseURL, email string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", name),
	}
}

// CheckOpenAccess reports whether doi has a free copy. A DOI Unpaywall does
// not know is domain.ErrNotFound; a known but closed DOI is a result with
// IsOpen false.
func (p *Provider) CheckOpenAccess(ctx context.Context, doi string) (*provider.OpenAccess, error) {
	clean := validate.CleanDOI(doi)
	if !strings.HasPrefix(clean, "10.") {
		return nil, domain.NewValidationError("doi", "must start with 10.")
	}

	reqURL := fmt.Sprintf("%s/%s?email=%s", p.baseURL, url.PathEscape(clean), url.QueryEscape(p.email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("unpaywall: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "unpaywall request failed",
			slog.String("doi", clean),
			slog.String("error", err.Error()))
		return nil, provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, provider.NotFound(name, "doi "+clean)
	default:
		return nil, &provider.StatusError{Provider: name, Status: resp.StatusCode}
	}

	var rec apiRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, provider.DecodeError(name, err)
	}

	result := &provider.OpenAccess{DOI: clean}
	if rec.DOI != "" {
		result.DOI = rec.DOI
	}
	loc := rec.BestOALocation
	if rec.IsOA && loc != nil {
		result.URL = loc.URLForPDF
		if result.URL == "" {
			result.URL = loc.URL
		}
	}
	if result.URL != "" {
		result.IsOpen = true
		result.Version = loc.Version
		if result.Version == "" {
			result.Version = defaultVersion
		}
		result.HostType = loc.HostType
		if result.HostType == "" {
			result.HostType = defaultHostType
		}
	}

	p.log.DebugContext(ctx, "unpaywall lookup",
		slog.String("doi", clean),
		slog.Bool("open", result.IsOpen))

	return result, nil
}
