package study

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/internal/domain"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
)

const (
	maxFieldRunes    = 4000
	maxAPIKeyLength  = 512
	maxFileNameRunes = 255
)

// LoadFileInput holds an uploaded file.
type LoadFileInput struct {
	SessionID uuid.UUID
	FileName  string
	Content   []byte
	// Progress, if set, is called after each annotation request.
	Progress assist.ProgressFunc
}

// Validate checks all fields and collects all errors.
func (i *LoadFileInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if len(i.Content) == 0 {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}
	if utf8.RuneCountInString(i.FileName) > maxFileNameRunes {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// NavigateInput holds a relative navigation request.
type NavigateInput struct {
	SessionID uuid.UUID
	Direction Direction
}

// Validate checks all fields and collects all errors.
func (i *NavigateInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be prev, next, first or last"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GoToInput holds an absolute navigation request.
type GoToInput struct {
	SessionID uuid.UUID
	Index     int
}

// Validate checks all fields and collects all errors.
func (i *GoToInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.Index < 0 {
		errs = append(errs, domain.FieldError{Field: "index", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetFilterInput holds a new category filter.
type SetFilterInput struct {
	SessionID  uuid.UUID
	Categories []domain.GrammarCategory
}

// Validate checks all fields and collects all errors.
func (i *SetFilterInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	for _, c := range i.Categories {
		if !c.IsValid() {
			errs = append(errs, domain.FieldError{Field: "categories", Message: "unknown category " + string(c)})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SaveEditInput holds an edited translation and grammar note.
type SaveEditInput struct {
	SessionID uuid.UUID
	Index     int
	Japanese  string
	Grammar   string
}

// Validate checks all fields and collects all errors.
func (i *SaveEditInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.Index < 0 {
		errs = append(errs, domain.FieldError{Field: "index", Message: "must be non-negative"})
	}
	if utf8.RuneCountInString(i.Japanese) > maxFieldRunes {
		errs = append(errs, domain.FieldError{Field: "japanese", Message: "too long"})
	}
	if utf8.RuneCountInString(i.Grammar) > maxFieldRunes {
		errs = append(errs, domain.FieldError{Field: "grammar", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetCredentialInput holds an interactively supplied API key.
type SetCredentialInput struct {
	SessionID uuid.UUID
	APIKey    string
}

// Validate checks all fields and collects all errors.
func (i *SetCredentialInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if len(i.APIKey) > maxAPIKeyLength {
		errs = append(errs, domain.FieldError{Field: "api_key", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ExportInput selects a session and output format.
type ExportInput struct {
	SessionID uuid.UUID
	Format    string
}

// Validate checks all fields and collects all errors.
func (i *ExportInput) Validate() error {
	if i.SessionID == uuid.Nil {
		return domain.NewValidationError("session_id", "required")
	}
	return nil
}
