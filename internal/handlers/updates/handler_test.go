package updates_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rkhub/infras/otel/mocks"
	"rkhub/internal/domains/announcement/model/dto"
	serviceMocks "rkhub/internal/domains/announcement/service/mocks"
	"rkhub/internal/handlers/updates"
	gDto "rkhub/shared/dto"
	"rkhub/shared/notification"
)

type envelope struct {
	Data          []dto.AnnouncementResponse  `json:"data"`
	Notifications []notification.Notification `json:"notifications"`
}

func get(t *testing.T, svc *serviceMocks.MockAnnouncement, target string) envelope {
	t.Helper()

	handler := updates.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestGetUpdates(t *testing.T) {
	tests := []struct {
		name   string
		target string
		params gDto.QueryParams
	}{
		{name: "all updates", target: "/updates", params: gDto.NewestFirst(0)},
		{name: "limited", target: "/updates?limit=2", params: gDto.NewestFirst(2)},
		{name: "sort overrides ignored", target: "/updates?sort_by=title&sort_dir=ASC", params: gDto.NewestFirst(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceMocks.NewMockAnnouncement(gomock.NewController(t))
			svc.EXPECT().List(gomock.Any(), tt.params).
				Return([]dto.AnnouncementResponse{{ID: "b"}, {ID: "a"}}, nil)

			body := get(t, svc, tt.target)

			require.Len(t, body.Data, 2)
			assert.Equal(t, "b", body.Data[0].ID)
			assert.Empty(t, body.Notifications)
		})
	}
}

func TestGetUpdates_EmptyTable(t *testing.T) {
	svc := serviceMocks.NewMockAnnouncement(gomock.NewController(t))
	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]dto.AnnouncementResponse{}, nil)

	body := get(t, svc, "/updates")

	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
	assert.Empty(t, body.Notifications)
}

func TestGetUpdates_StoreFailure(t *testing.T) {
	svc := serviceMocks.NewMockAnnouncement(gomock.NewController(t))
	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	body := get(t, svc, "/updates")

	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
	assert.Empty(t, body.Notifications)
}
