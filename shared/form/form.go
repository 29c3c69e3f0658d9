// Package form holds the draft state of a record being created and turns it
// into exactly one create request per submission.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"rkhub/shared/failure"
	"rkhub/shared/notification"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const MissingFieldsTitle = "Please fill all required fields"

var (
	ErrUnknownField     = errors.New("unknown form field")
	ErrMissingFields    = errors.New("missing required fields")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrSubmitFailed     = errors.New("submission failed")
)

// MissingFieldsError lists the required fields that were blank at submit time.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// Unwrap exposes a 400 failure so transports map it without knowing forms.
func (e *MissingFieldsError) Unwrap() error {
	return failure.BadRequestFromString(MissingFieldsTitle)
}

// Schema names the fields of a form and which of them must be filled.
type Schema struct {
	Name     string
	Fields   []string
	Required []string
}

func (s Schema) has(name string) bool {
	return slices.Contains(s.Fields, name)
}

func (s Schema) empty() Values {
	values := make(Values, len(s.Fields))
	for _, field := range s.Fields {
		values[field] = ""
	}

	return values
}

func (s Schema) missing(values Values) []string {
	var missing []string

	for _, field := range s.Required {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}

	return missing
}

// Values maps field name to its current string value.
type Values map[string]string

// Optional returns nil for a blank value so the store records it as absent.
func (v Values) Optional(name string) *string {
	value := strings.TrimSpace(v[name])
	if value == "" {
		return nil
	}

	return &value
}

func (v Values) Required(name string) string {
	return strings.TrimSpace(v[name])
}

type Creator[T any] interface {
	Create(ctx context.Context, record T) error
}

type CreatorFunc[T any] func(ctx context.Context, record T) error

func (f CreatorFunc[T]) Create(ctx context.Context, record T) error {
	return f(ctx, record)
}

// Messages are the notification texts for the outcome of a submission.
type Messages struct {
	SuccessTitle       string
	SuccessDescription string
	FailureTitle       string
	FailureDescription string
}

type options struct {
	refresh  func(ctx context.Context) error
	messages Messages
}

type Option func(*options)

// WithRefresh runs refresh after every successful submission.
func WithRefresh(refresh func(ctx context.Context) error) Option {
	return func(o *options) {
		o.refresh = refresh
	}
}

func WithMessages(messages Messages) Option {
	return func(o *options) {
		o.messages = messages
	}
}

type Form[T any] struct {
	schema  Schema
	build   func(Values) T
	creator Creator[T]
	sink    notification.Sink
	opts    options

	mu         sync.Mutex
	values     Values
	submitting atomic.Bool
}

func New[T any](schema Schema, build func(Values) T, creator Creator[T], sink notification.Sink, opts ...Option) *Form[T] {
	o := options{
		messages: Messages{
			SuccessTitle: "Saved successfully!",
			FailureTitle: "Submission Failed",
		},
	}

	for _, opt := range opts {
		opt(&o)
	}

	if sink == nil {
		sink = notification.Discard
	}

	return &Form[T]{
		schema:  schema,
		build:   build,
		creator: creator,
		sink:    sink,
		opts:    o,
		values:  schema.empty(),
	}
}

// SetField updates exactly one field of the draft.
func (f *Form[T]) SetField(name, value string) error {
	if !f.schema.has(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[name] = value

	return nil
}

// Bind reads a JSON object of strings and sets every schema field it contains.
// Keys outside the schema are ignored.
func (f *Form[T]) Bind(r io.Reader) error {
	var payload map[string]string
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return failure.BadRequestFromString("invalid request body")
	}

	for name, value := range payload {
		if !f.schema.has(name) {
			continue
		}

		if err := f.SetField(name, value); err != nil {
			return err
		}
	}

	return nil
}

// Values returns a copy of the draft.
func (f *Form[T]) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	return maps.Clone(f.values)
}

func (f *Form[T]) Submitting() bool {
	return f.submitting.Load()
}

func (f *Form[T]) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = f.schema.empty()
}

// Submit validates the draft and sends one create request for it.
//
// A blank required field aborts before any request with a *MissingFieldsError.
// On success the draft is reset, a success notification is emitted and the
// refresh callback runs. On failure the draft is kept, a failure notification
// is emitted and the returned error wraps both ErrSubmitFailed and the cause.
func (f *Form[T]) Submit(ctx context.Context) error {
	if !f.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer f.submitting.Store(false)

	values := f.Values()

	if missing := f.schema.missing(values); len(missing) > 0 {
		f.sink.Notify(notification.KindError, MissingFieldsTitle, "")

		return &MissingFieldsError{Fields: missing}
	}

	if err := f.creator.Create(ctx, f.build(values)); err != nil {
		log.Error().Err(err).Str("form", f.schema.Name).Msg("failed to submit form")
		f.sink.Notify(notification.KindError, f.opts.messages.FailureTitle, f.opts.messages.FailureDescription)

		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	f.reset()
	f.sink.Notify(notification.KindSuccess, f.opts.messages.SuccessTitle, f.opts.messages.SuccessDescription)

	if f.opts.refresh != nil {
		if err := f.opts.refresh(ctx); err != nil {
			log.Warn().Err(err).Str("form", f.schema.Name).Msg("refresh after submit failed")
		}
	}

	return nil
}
