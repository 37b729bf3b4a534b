package client

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidDraft is returned by Save when validation fails. No network call
// is made in that case.
var ErrInvalidDraft = errors.New("draft failed validation")

// ErrSessionClosed is returned by Save when no session is open.
var ErrSessionClosed = errors.New("no open edit session")

// Mode distinguishes create from edit sessions.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Field declares one editable field of a schema: its name, its validation
// rules, and accessors into the draft.
type Field[T any] struct {
	Name string

	// Required rejects empty strings, zero numbers are allowed.
	Required bool
	// NonNegative rejects negative numeric values.
	NonNegative bool
	// MinItems rejects slices shorter than this. Zero disables the rule.
	MinItems int

	Get func(*T) any
	Set func(*T, any)
}

// Schema declares how an entity type behaves in an edit form: its defaults
// for create mode, how to read its persisted identifier, and its fields.
type Schema[T any] struct {
	Defaults func() T
	ID       func(*T) uint
	Fields   []Field[T]
}

// EditSession owns one in-progress create-or-update form over an entity
// type. Mode is decided by ID presence when the session opens; validation
// gates every save; a failed save keeps the draft so user input is never
// lost.
type EditSession[T any] struct {
	res    *ResourceClient[T]
	schema Schema[T]

	open   bool
	mode   Mode
	id     uint
	draft  T
	errors map[string]string
}

// NewEditSession creates a closed session bound to a resource and schema.
func NewEditSession[T any](res *ResourceClient[T], schema Schema[T]) *EditSession[T] {
	return &EditSession[T]{
		res:    res,
		schema: schema,
		errors: make(map[string]string),
	}
}

// Open starts a session. A nil entity opens create mode with the schema's
// defaults; a non-nil entity with a persisted ID opens edit mode with the
// draft pre-populated from a copy of the entity.
func (s *EditSession[T]) Open(entity *T) {
	s.errors = make(map[string]string)
	s.open = true

	if entity == nil {
		s.mode = ModeCreate
		s.id = 0
		if s.schema.Defaults != nil {
			s.draft = s.schema.Defaults()
		} else {
			var zero T
			s.draft = zero
		}
		return
	}

	s.draft = *entity
	s.id = 0
	if s.schema.ID != nil {
		s.id = s.schema.ID(entity)
	}
	if s.id > 0 {
		s.mode = ModeEdit
	} else {
		s.mode = ModeCreate
	}
}

// Cancel closes the session and discards the draft.
func (s *EditSession[T]) Cancel() {
	s.open = false
	s.errors = make(map[string]string)
}

// IsOpen reports whether a session is in progress.
func (s *EditSession[T]) IsOpen() bool { return s.open }

// Mode returns the session mode. Only meaningful while open.
func (s *EditSession[T]) Mode() Mode { return s.mode }

// Draft returns a copy of the in-progress values.
func (s *EditSession[T]) Draft() T { return s.draft }

// SetField updates one draft field and eagerly clears that field's
// validation error, so the user is not stuck staring at a stale message
// after fixing the input.
func (s *EditSession[T]) SetField(name string, value any) {
	for _, f := range s.schema.Fields {
		if f.Name != name {
			continue
		}
		if f.Set != nil {
			f.Set(&s.draft, value)
		}
		delete(s.errors, name)
		return
	}
}

// FieldError returns the validation message for one field, or "".
func (s *EditSession[T]) FieldError(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the current field error map.
func (s *EditSession[T]) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Validate runs every field rule against the draft, populates the error
// map, and reports whether the draft is submittable.
func (s *EditSession[T]) Validate() bool {
	s.errors = make(map[string]string)
	for _, f := range s.schema.Fields {
		if f.Get == nil {
			continue
		}
		if msg := validateField(f, f.Get(&s.draft)); msg != "" {
			s.errors[f.Name] = msg
		}
	}
	return len(s.errors) == 0
}

// Save validates the draft and dispatches to create or update. Validation
// failure returns ErrInvalidDraft without any network call. On failure of
// the call itself the session stays open with the draft intact; on success
// the session closes and the saved entity is returned.
func (s *EditSession[T]) Save(ctx context.Context) (*T, error) {
	if !s.open {
		return nil, ErrSessionClosed
	}
	if !s.Validate() {
		return nil, ErrInvalidDraft
	}

	var (
		saved *T
		err   error
	)
	if s.mode == ModeEdit {
		saved, err = s.res.Update(ctx, s.id, s.draft)
	} else {
		saved, err = s.res.Create(ctx, s.draft)
	}
	if err != nil {
		return nil, err
	}

	s.open = false
	s.errors = make(map[string]string)
	return saved, nil
}

// validateField applies one field's rules to its current value.
func validateField[T any](f Field[T], value any) string {
	if f.Required {
		if isEmpty(value) {
			return "is required"
		}
	}
	if f.NonNegative {
		if n, ok := asFloat(value); ok && n < 0 {
			return "must not be negative"
		}
	}
	if f.MinItems > 0 {
		if n, ok := itemCount(value); ok && n < f.MinItems {
			if f.MinItems == 1 {
				return "requires at least one entry"
			}
			return "requires more entries"
		}
	}
	return ""
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func itemCount(value any) (int, bool) {
	switch v := value.(type) {
	case []string:
		return len(v), true
	case []any:
		return len(v), true
	case []uint:
		return len(v), true
	case []int:
		return len(v), true
	default:
		return 0, false
	}
}
