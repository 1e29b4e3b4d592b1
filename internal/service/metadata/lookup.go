package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/internal/provider"
	"github.com/korima-app/korima-backend/pkg/validate"
)

const maxQueryLen = 300

// Prefill is what the request form needs from a DOI.
type Prefill struct {
	Work              provider.Work
	SuggestedCategory domain.Category
	OpenAccess        *provider.OpenAccess
}

// SearchByTitle searches the citation catalog by free-text title.
func (s *Service) SearchByTitle(ctx context.Context, query string) ([]provider.Work, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("query", "required")
	}
	if utf8.RuneCountInString(query) > maxQueryLen {
		return nil, domain.NewValidationError("query", "too long")
	}

	works, err := s.catalog.SearchByTitle(ctx, query)
	s.metrics.ProviderCall("crossref", outcome(err))
	if err != nil {
		return nil, fmt.Errorf("metadata.SearchByTitle: %w", err)
	}
	return works, nil
}

// LookupDOI returns the citation record for a DOI.
func (s *Service) LookupDOI(ctx context.Context, doi string) (*provider.Work, error) {
	clean, err := cleanDOI(doi)
	if err != nil {
		return nil, err
	}

	work, err := s.catalog.LookupDOI(ctx, clean)
	s.metrics.ProviderCall("crossref", outcome(err))
	if err != nil {
		return nil, fmt.Errorf("metadata.LookupDOI: %w", err)
	}
	return work, nil
}

// CheckOpenAccess reports whether a free copy of doi is known.
func (s *Service) CheckOpenAccess(ctx context.Context, doi string) (*provider.OpenAccess, error) {
	clean, err := cleanDOI(doi)
	if err != nil {
		return nil, err
	}

	oa, err := s.openAccess.CheckOpenAccess(ctx, clean)
	s.metrics.ProviderCall("unpaywall", outcome(err))
	if err != nil {
		return nil, fmt.Errorf("metadata.CheckOpenAccess: %w", err)
	}
	return oa, nil
}

// Prefill looks up doi and suggests a category from the record's subjects.
// The open-access check is advisory: its failure is logged and leaves
// OpenAccess nil.
func (s *Service) Prefill(ctx context.Context, doi string) (*Prefill, error) {
	work, err := s.LookupDOI(ctx, doi)
	if err != nil {
		return nil, err
	}

	out := &Prefill{Work: *work, SuggestedCategory: suggestCategory(work.Subjects)}

	oa, err := s.CheckOpenAccess(ctx, work.DOI)
	if err != nil {
		s.log.WarnContext(ctx, "open access check failed during prefill",
			slog.String("doi", work.DOI),
			slog.String("error", err.Error()))
	} else {
		out.OpenAccess = oa
	}
	return out, nil
}

// suggestCategory returns the first subject that maps to a known category.
func suggestCategory(subjects []string) domain.Category {
	for _, subject := range subjects {
		if c := domain.CategoryFromSubject(subject); c != domain.CategoryOther {
			return c
		}
	}
	return domain.CategoryOther
}

func cleanDOI(doi string) (string, error) {
	clean := validate.CleanDOI(doi)
	if clean == "" {
		return "", domain.NewValidationError("doi", "required")
	}
	if !validate.DOI(clean) {
		return "", domain.NewValidationError("doi", "must look like 10.xxxx/suffix")
	}
	return clean, nil
}
