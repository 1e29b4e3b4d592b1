package request

import (
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/validate"
)

const (
	maxTitleLen       = 300
	maxDescriptionLen = 5000
	maxMessageLen     = 1000
	maxSearchLen      = 200
	maxLinkLen        = 2048
	defaultPageSize   = 20
	maxPageSize       = 100
)

// CreateRequestInput holds parameters for CreateRequest. Category is free
// text matched against the known categories; Points zero selects the default
// offer.
type CreateRequestInput struct {
	Title       string
	Description string
	Category    string
	DOI         string
	Urgent      bool
	Points      int
}

// Validate validates the create input against the offer rules.
func (i CreateRequestInput) Validate(economy domain.Economy) error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if utf8.RuneCountInString(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if i.Category == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	} else if _, ok := domain.ParseCategory(i.Category); !ok {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if i.DOI != "" && !validate.DOI(i.DOI) {
		errs = append(errs, domain.FieldError{Field: "doi", Message: "invalid DOI"})
	}

	if !economy.IsValidOffer(i.Points) {
		errs = append(errs, domain.FieldError{Field: "points", Message: "invalid offer"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i *CreateRequestInput) normalize(economy domain.Economy) {
	i.Title = strings.TrimSpace(i.Title)
	i.Description = strings.TrimSpace(i.Description)
	i.Category = strings.TrimSpace(i.Category)
	i.DOI = validate.CleanDOI(i.DOI)
	if i.Points == 0 {
		i.Points = economy.DefaultOffer
	}
}

// ListRequestsInput holds the public listing filters. Empty strings mean
// "any".
type ListRequestsInput struct {
	Category string
	Status   string
	Search   string
	Urgent   *bool
	Sort     string
	Limit    int
	Offset   int
}

// Validate validates the list input.
func (i ListRequestsInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != "" {
		if _, ok := domain.ParseCategory(i.Category); !ok {
			errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
		}
	}
	if i.Status != "" && !domain.RequestStatus(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Sort != "" && !domain.RequestSort(i.Sort).IsValid() {
		errs = append(errs, domain.FieldError{Field: "sort", Message: "unknown sort"})
	}
	if utf8.RuneCountInString(i.Search) > maxSearchLen {
		errs = append(errs, domain.FieldError{Field: "search", Message: "too long"})
	}
	if i.Limit < 0 || i.Limit > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "out of range"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ListRequestsInput) filter() domain.RequestFilter {
	f := domain.RequestFilter{
		Urgent: i.Urgent,
		Search: strings.TrimSpace(i.Search),
		Sort:   domain.RequestSort(i.Sort),
		Limit:  i.Limit,
		Offset: i.Offset,
	}
	if f.Sort == "" {
		f.Sort = domain.SortNewest
	}
	if f.Limit == 0 {
		f.Limit = defaultPageSize
	}
	if c, ok := domain.ParseCategory(i.Category); ok {
		f.Category = &c
	}
	if i.Status != "" {
		st := domain.RequestStatus(i.Status)
		f.Status = &st
	}
	return f
}

// FileUpload is an uploaded document as received by the transport layer.
type FileUpload struct {
	Name string
	Size int64
	Body io.Reader
}

// SubmitResponseInput carries exactly one payload: LinkURL or File.
type SubmitResponseInput struct {
	LinkURL string
	File    *FileUpload
	Message string
}

// Validate validates the submit input against the upload limit.
func (i SubmitResponseInput) Validate(maxUpload int64) error {
	var errs []domain.FieldError

	hasLink := i.LinkURL != ""
	hasFile := i.File != nil

	switch {
	case hasLink && hasFile:
		errs = append(errs, domain.FieldError{Field: "payload", Message: "provide a file or a link, not both"})
	case !hasLink && !hasFile:
		errs = append(errs, domain.FieldError{Field: "payload", Message: "a file or a link is required"})
	case hasLink:
		if len(i.LinkURL) > maxLinkLen || !validate.HTTPURL(i.LinkURL) {
			errs = append(errs, domain.FieldError{Field: "link_url", Message: "invalid URL"})
		}
	case hasFile:
		if !strings.EqualFold(filepath.Ext(i.File.Name), ".pdf") {
			errs = append(errs, domain.FieldError{Field: "file", Message: "only PDF files are accepted"})
		}
		if i.File.Size <= 0 {
			errs = append(errs, domain.FieldError{Field: "file", Message: "empty file"})
		} else if i.File.Size > maxUpload {
			errs = append(errs, domain.FieldError{Field: "file", Message: "file too large"})
		}
	}

	if utf8.RuneCountInString(i.Message) > maxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
