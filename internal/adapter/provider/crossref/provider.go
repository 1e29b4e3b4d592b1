// Package crossref queries the CrossRef REST API for citation metadata.
package crossref

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/provider"
	"github.com/korima-app/korima-backend/pkg/validate"
)

const (
	name           = "crossref"
	defaultBaseURL = "https://api.crossref.org"
	selectFields   = "DOI,title,author,published,container-title,publisher,subject,abstract"
)

// Provider fetches works from CrossRef. It performs exactly one request per
// call: no retries and no caching.
type Provider struct {
	baseURL    string
	userAgent  string
	rows       int
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects the public API;
// contact is advertised in the User-Agent as CrossRef asks polite clients to do.
func NewProvider(baseURL, contact string, rows int, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if rows <= 0 {
		rows = 10
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  fmt.Sprintf("Korima/1.0 (mailto:%s)", contact),
		rows:       rows,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", name),
	}
}

// SearchByTitle returns up to the configured number of works whose title
// matches query. An empty result is not an error.
func (p *Provider) SearchByTitle(ctx context.Context, query string) ([]provider.Work, error) {
	q := url.Values{}
	q.Set("query.title", query)
	q.Set("rows", strconv.Itoa(p.rows))
	q.Set("select", selectFields)

	var body apiList
	status, err := p.get(ctx, p.baseURL+"/works?"+q.Encode(), &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &provider.StatusError{Provider: name, Status: status}
	}

	works := make([]provider.Work, 0, len(body.Message.Items))
	for _, item := range body.Message.Items {
		works = append(works, item.toWork())
	}

	p.log.DebugContext(ctx, "crossref search",
		slog.String("query", query),
		slog.Int("results", len(works)))

	return works, nil
}

// LookupDOI returns the work registered under doi. The DOI may carry a
// doi.org prefix; anything not starting with "10." is rejected.
func (p *Provider) LookupDOI(ctx context.Context, doi string) (*provider.Work, error) {
	clean := validate.CleanDOI(doi)
	if !strings.HasPrefix(clean, "10.") {
		return nil, domain.NewValidationError("doi", "must start with 10.")
	}

	var body apiSingle
	status, err := p.get(ctx, p.baseURL+"/works/"+url.PathEscape(clean), &body)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, provider.NotFound(name, "doi "+clean)
	case status != http.StatusOK:
		return nil, &provider.StatusError{Provider: name, Status: status}
	case body.Message == nil:
		return nil, provider.NotFound(name, "doi "+clean)
	}

	work := body.Message.toWork()
	return &work, nil
}

// get performs the request and decodes a 200 body into out.
func (p *Provider) get(ctx context.Context, reqURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("crossref: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "crossref request failed", slog.String("error", err.Error()))
		return 0, provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, provider.DecodeError(name, err)
	}
	return resp.StatusCode, nil
}
