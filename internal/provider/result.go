// Package provider holds the normalized results returned by the external
// bibliographic catalogs, independent of each catalog's wire format.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/korima-app/korima-backend/internal/domain"
)

// UntitledWork is shown when a catalog record carries no title.
const UntitledWork = "Sin título"

// Work is one bibliographic record.
type Work struct {
	DOI       string
	Title     string
	Authors   string // first three names, then "et al."
	Year      *int
	Journal   string
	Publisher string
	Subjects  []string
	Abstract  string
}

// OpenAccess describes where a DOI can be read for free, if anywhere.
type OpenAccess struct {
	DOI      string
	IsOpen   bool
	URL      string
	Version  string
	HostType string
}

// Author is a name as split by the catalogs.
type Author struct {
	Given  string
	Family string
}

// FormatAuthors joins up to three names and appends "et al." when more exist.
func FormatAuthors(authors []Author) string {
	if len(authors) == 0 {
		return ""
	}

	names := make([]string, 0, 3)
	for i, a := range authors {
		if i == 3 {
			break
		}
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name != "" {
			names = append(names, name)
		}
	}

	joined := strings.Join(names, ", ")
	if len(authors) > 3 {
		joined += " et al."
	}
	return joined
}

// StatusError is returned for an unexpected HTTP status from a catalog.
type StatusError struct {
	Provider string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstreamUnavailable }

// NotFound reports a missing record as domain.ErrNotFound.
func NotFound(provider, what string) error {
	return fmt.Errorf("%s: %s: %w", provider, what, domain.ErrNotFound)
}

// TransportError classifies a failed round trip: deadlines become
// domain.ErrUpstreamTimeout, everything else domain.ErrUpstreamUnavailable.
func TransportError(provider string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %v", provider, domain.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%s: %w: %v", provider, domain.ErrUpstreamUnavailable, err)
}

// DecodeError wraps a malformed response body.
func DecodeError(provider string, err error) error {
	return fmt.Errorf("%s: decode response: %w: %v", provider, domain.ErrUpstreamUnavailable, err)
}
