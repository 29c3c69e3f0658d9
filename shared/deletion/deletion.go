// Package deletion removes one record by id and reloads the affected view.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"rkhub/shared/notification"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingID    = errors.New("missing record id")
	ErrDeleteFailed = errors.New("delete failed")
)

type Deleter interface {
	Delete(ctx context.Context, id string) error
}

type DeleterFunc func(ctx context.Context, id string) error

func (f DeleterFunc) Delete(ctx context.Context, id string) error {
	return f(ctx, id)
}

type Messages struct {
	SuccessTitle string
	FailureTitle string
}

type Controller struct {
	deleter  Deleter
	sink     notification.Sink
	refresh  func(ctx context.Context) error
	messages Messages
}

func New(deleter Deleter, sink notification.Sink, refresh func(ctx context.Context) error, messages Messages) *Controller {
	if sink == nil {
		sink = notification.Discard
	}

	return &Controller{
		deleter:  deleter,
		sink:     sink,
		refresh:  refresh,
		messages: messages,
	}
}

// DeleteByID sends one delete request for id. On success the refresh callback
// reloads the view from the store; on failure nothing is reloaded.
func (c *Controller) DeleteByID(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	if err := c.deleter.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete record")
		c.sink.Notify(notification.KindError, c.messages.FailureTitle, "")

		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	c.sink.Notify(notification.KindSuccess, c.messages.SuccessTitle, "")

	if c.refresh != nil {
		if err := c.refresh(ctx); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("refresh after delete failed")
		}
	}

	return nil
}
