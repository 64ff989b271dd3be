package pubstatic

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the fields every page template relies on.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Slug, validation.Required),
		validation.Field(&d.Path, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Date, validation.Required),
		validation.Field(&d.ReadingTime, validation.By(func(any) error {
			if d.ReadingTime.Minutes < 1 {
				return errors.New("must be at least one minute")
			}
			return nil
		})),
	)
}

// Validate checks an index entry before it is handed to a renderer.
func (e TagIndexEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Value, validation.Required, validation.By(isKebab)),
		validation.Field(&e.Display, validation.Required),
		validation.Field(&e.TotalCount, validation.Required, validation.Min(1)),
	)
}

// Validate checks that a planned page is internally consistent: its count
// matches its documents and the documents are newest first.
func (p TagPage) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Tag, validation.Required),
		validation.Field(&p.Value, validation.Required, validation.By(isKebab)),
		validation.Field(&p.Path, validation.Required),
		validation.Field(&p.TotalCount, validation.Required, validation.By(func(any) error {
			if p.TotalCount != len(p.Documents) {
				return fmt.Errorf("must equal the number of documents (%d)", len(p.Documents))
			}
			return nil
		})),
		validation.Field(&p.Documents, validation.Required, validation.By(func(any) error {
			for i := 1; i < len(p.Documents); i++ {
				if p.Documents[i].Date.After(p.Documents[i-1].Date) {
					return fmt.Errorf("not sorted by date at position %d", i)
				}
			}
			return nil
		})),
	)
}

// Validate checks the whole site: every document, index entry and page, and
// that there is exactly one page per index entry.
func (s *Site) Validate() error {
	if err := validation.Validate(s.Documents); err != nil {
		return fmt.Errorf("documents: %w", err)
	}
	if err := validation.Validate(s.Index); err != nil {
		return fmt.Errorf("tag index: %w", err)
	}
	if err := validation.Validate(s.Pages); err != nil {
		return fmt.Errorf("tag pages: %w", err)
	}
	if len(s.Index) != len(s.Pages) {
		return fmt.Errorf("tag pages: %d pages for %d tags", len(s.Pages), len(s.Index))
	}
	for i, entry := range s.Index {
		if s.Pages[i].Value != entry.Value || s.Pages[i].TotalCount != entry.TotalCount {
			return fmt.Errorf("tag pages: page %d (%s) does not match index entry %s", i, s.Pages[i].Value, entry.Value)
		}
	}
	return nil
}

func isKebab(v any) error {
	s, _ := v.(string)
	if KebabCase(s) != s {
		return errors.New("must be a lower-kebab-case value")
	}
	return nil
}
