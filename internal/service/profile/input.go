package profile

import (
	"strings"
	"unicode/utf8"

	"github.com/korima-app/korima-backend/internal/domain"
	"github.com/korima-app/korima-backend/pkg/validate"
)

const (
	maxNameLen  = 120
	maxShortLen = 120
	maxBioLen   = 1000
	maxURLLen   = 512
)

// UpdateProfileInput holds the editable profile fields.
// nil leaves a field unchanged; "" clears an optional field.
type UpdateProfileInput struct {
	FullName    *string
	AvatarURL   *string
	Country     *string
	Institution *string
	Specialty   *string
	Bio         *string
	Website     *string
}

func (i UpdateProfileInput) normalize() UpdateProfileInput {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	return UpdateProfileInput{
		FullName:    trim(i.FullName),
		AvatarURL:   trim(i.AvatarURL),
		Country:     trim(i.Country),
		Institution: trim(i.Institution),
		Specialty:   trim(i.Specialty),
		Bio:         trim(i.Bio),
		Website:     trim(i.Website),
	}
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.update().IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "profile", Message: "nothing to update"})
	}

	if i.FullName != nil {
		if *i.FullName == "" {
			errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
		} else if utf8.RuneCountInString(*i.FullName) > maxNameLen {
			errs = append(errs, domain.FieldError{Field: "full_name", Message: "too long"})
		}
	}

	for _, f := range []struct {
		name string
		val  *string
	}{
		{"country", i.Country},
		{"institution", i.Institution},
		{"specialty", i.Specialty},
	} {
		if f.val != nil && utf8.RuneCountInString(*f.val) > maxShortLen {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "too long"})
		}
	}

	if i.Bio != nil && utf8.RuneCountInString(*i.Bio) > maxBioLen {
		errs = append(errs, domain.FieldError{Field: "bio", Message: "too long"})
	}

	errs = append(errs, checkURL("avatar_url", i.AvatarURL)...)
	errs = append(errs, checkURL("website", i.Website)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func checkURL(field string, v *string) []domain.FieldError {
	if v == nil || *v == "" {
		return nil
	}
	if len(*v) > maxURLLen {
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	if !validate.HTTPURL(*v) {
		return []domain.FieldError{{Field: field, Message: "must be an http(s) URL"}}
	}
	return nil
}

func (i UpdateProfileInput) update() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:    i.FullName,
		AvatarURL:   i.AvatarURL,
		Country:     i.Country,
		Institution: i.Institution,
		Specialty:   i.Specialty,
		Bio:         i.Bio,
		Website:     i.Website,
	}
}
