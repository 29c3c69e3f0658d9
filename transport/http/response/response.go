// Package response writes the JSON bodies every handler answers with.
package response

import (
	"encoding/json"
	"net/http"
	"rkhub/shared/constant"
	"rkhub/shared/failure"
	"rkhub/shared/logger"
	"rkhub/shared/notification"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// Envelope carries a payload together with the notifications raised while
// producing it. Notifications is always an array.
type Envelope struct {
	Data          any                         `json:"data,omitempty"`
	Error         *string                     `json:"error,omitempty"`
	Notifications []notification.Notification `json:"notifications"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError reports err with its own status. Anything that is not a client
// error goes out as the generic request failure message.
func WithError(writer http.ResponseWriter, err error) {
	msg := failure.PublicMessage(err)

	write(writer, failure.GetCode(err), Error{Error: &msg})
}

// WithNotifications sends data along with the queued notifications.
func WithNotifications(writer http.ResponseWriter, code int, data any, queue *notification.Queue) {
	write(writer, code, Envelope{Data: data, Notifications: queue.Drain()})
}

// WithNotifiedError sends the status derived from err with the queued
// notifications. Only client errors carry their message in the body.
func WithNotifiedError(writer http.ResponseWriter, err error, data any, queue *notification.Queue) {
	envelope := Envelope{Data: data, Notifications: queue.Drain()}

	if failure.IsClientError(err) {
		msg := err.Error()
		envelope.Error = &msg
	}

	write(writer, failure.GetCode(err), envelope)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write encodes payload before touching the headers so an encoding failure
// never leaves a half written response.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, failure.ErrRequestFailed, http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
