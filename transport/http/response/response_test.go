package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkhub/shared/failure"
	"rkhub/shared/notification"
	"rkhub/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithNotifications(t *testing.T) {
	queue := notification.NewQueue()
	queue.Notify(notification.KindSuccess, "Saved successfully!", "")

	rec := httptest.NewRecorder()
	response.WithNotifications(rec, http.StatusCreated, map[string]int{"count": 1}, queue)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"count":1},"notifications":[{"kind":"success","title":"Saved successfully!"}]}`, rec.Body.String())
	assert.Zero(t, queue.Len())
}

func TestWithNotifications_EmptyQueue(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithNotifications(rec, http.StatusOK, []string{}, notification.NewQueue())

	assert.JSONEq(t, `{"data":[],"notifications":[]}`, rec.Body.String())
}

func TestWithNotifiedError(t *testing.T) {
	t.Run("client error exposes message", func(t *testing.T) {
		queue := notification.NewQueue()
		queue.Notify(notification.KindError, "Please fill all required fields", "")

		rec := httptest.NewRecorder()
		response.WithNotifiedError(rec, failure.BadRequestFromString("name is required"), nil, queue)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "name is required", body["error"])
		assert.Len(t, body["notifications"], 1)
	})

	t.Run("server error stays generic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		response.WithNotifiedError(rec, errors.New("pq: connection refused"), nil, notification.NewQueue())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithError(rec, failure.Unauthorized("Invalid token"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestWithError_HidesServerFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithError(rec, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"request failed"}`, rec.Body.String())
}

func TestWithPreparingShutdown(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithPreparingShutdown(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"SERVER PREPARING TO SHUT DOWN"}`, rec.Body.String())
}

func TestWithJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "request failed\n", rec.Body.String())
}
