package admin_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rkhub/config"
	jwtMocks "rkhub/infras/jwt/mocks"
	"rkhub/infras/otel/mocks"
	admissionDto "rkhub/internal/domains/admission/model/dto"
	admissionMocks "rkhub/internal/domains/admission/service/mocks"
	announcementDto "rkhub/internal/domains/announcement/model/dto"
	announcementMocks "rkhub/internal/domains/announcement/service/mocks"
	galleryDto "rkhub/internal/domains/gallery/model/dto"
	galleryMocks "rkhub/internal/domains/gallery/service/mocks"
	"rkhub/internal/handlers/admin"
	"rkhub/permissions"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"rkhub/transport/http/middleware"
)

const apiKey = "internal-key"

type envelope struct {
	Data          admin.DashboardResponse     `json:"data"`
	Error         *string                     `json:"error"`
	Notifications []notification.Notification `json:"notifications"`
}

type fixture struct {
	updates    *announcementMocks.MockAnnouncement
	gallery    *galleryMocks.MockGallery
	admissions *admissionMocks.MockAdmission
	router     chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	f := fixture{
		updates:    announcementMocks.NewMockAnnouncement(ctrl),
		gallery:    galleryMocks.NewMockGallery(ctrl),
		admissions: admissionMocks.NewMockAdmission(ctrl),
		router:     chi.NewRouter(),
	}

	authRole := middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), mocks.NewOtel(), permissions.Get(), cfg)

	handler := admin.New(f.updates, f.gallery, f.admissions, mocks.NewOtel(), authRole)
	f.router.Route("/v1", handler.Router)

	return f
}

func (f fixture) expectDashboard() {
	f.updates.EXPECT().List(gomock.Any(), gDto.NewestFirst(0)).
		Return([]announcementDto.AnnouncementResponse{{ID: "u1"}}, nil)
	f.gallery.EXPECT().List(gomock.Any(), gDto.NewestFirst(0)).
		Return([]galleryDto.GalleryItemResponse{{ID: "g1"}}, nil)
	f.admissions.EXPECT().List(gomock.Any(), gDto.NewestFirst(0)).
		Return([]admissionDto.AdmissionResponse{{ID: "a1"}}, nil)
}

func (f fixture) do(t *testing.T, method, target string, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var res envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	return rec.Code, res
}

func TestAdmin_RequiresCredentials(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_WrongAPIKey(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/dashboard", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, "guess")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)
	f.expectDashboard()

	code, body := f.do(t, http.MethodGet, "/v1/admin/dashboard", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Data.Updates, 1)
	assert.Len(t, body.Data.Gallery, 1)
	assert.Len(t, body.Data.Admissions, 1)
	assert.Empty(t, body.Notifications)
}

func TestGetDashboard_OneCollectionFails(t *testing.T) {
	f := newFixture(t)
	f.updates.EXPECT().List(gomock.Any(), gomock.Any()).Return([]announcementDto.AnnouncementResponse{{ID: "u1"}}, nil)
	f.gallery.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	f.admissions.EXPECT().List(gomock.Any(), gomock.Any()).Return([]admissionDto.AdmissionResponse{}, nil)

	code, body := f.do(t, http.MethodGet, "/v1/admin/dashboard", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Data.Updates, 1)
	assert.Empty(t, body.Data.Gallery)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, listing.ErrorLoadingTitle, body.Notifications[0].Title)
}

func TestGetAdmissions(t *testing.T) {
	f := newFixture(t)
	f.admissions.EXPECT().List(gomock.Any(), gDto.NewestFirst(0)).
		Return([]admissionDto.AdmissionResponse{{ID: "a2"}, {ID: "a1"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/admissions", nil)
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []admissionDto.AdmissionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	require.Len(t, body.Data, 2)
	assert.Equal(t, "a2", body.Data[0].ID)
}

func TestCreateUpdate_RefreshesDashboard(t *testing.T) {
	f := newFixture(t)

	f.updates.EXPECT().Create(gomock.Any(), announcementDto.CreateAnnouncementRequest{
		Title:   "Holiday",
		Content: "School closed **Friday**",
	}).Return(nil).Times(1)
	f.expectDashboard()

	code, body := f.do(t, http.MethodPost, "/v1/admin/updates", `{"title":"Holiday","content":"School closed **Friday**","image_url":""}`)

	assert.Equal(t, http.StatusCreated, code)
	assert.Len(t, body.Data.Updates, 1)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notification.KindSuccess, body.Notifications[0].Kind)
}

func TestCreateUpdate_MissingContent(t *testing.T) {
	f := newFixture(t)
	f.updates.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	code, body := f.do(t, http.MethodPost, "/v1/admin/updates", `{"title":"Holiday"}`)

	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, notification.KindError, body.Notifications[0].Kind)
}

func TestCreateGalleryItem_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.gallery.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	code, body := f.do(t, http.MethodPost, "/v1/admin/gallery", `{"title":"Sports Day","image_url":"https://cdn.example.com/a.png"}`)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Nil(t, body.Error)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Failed to add gallery item", body.Notifications[0].Title)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		target string
		expect func(f fixture)
	}{
		{
			name:   "update",
			target: "/v1/admin/updates/u1",
			expect: func(f fixture) { f.updates.EXPECT().Delete(gomock.Any(), "u1").Return(nil) },
		},
		{
			name:   "gallery item",
			target: "/v1/admin/gallery/g1",
			expect: func(f fixture) { f.gallery.EXPECT().Delete(gomock.Any(), "g1").Return(nil) },
		},
		{
			name:   "admission",
			target: "/v1/admin/admissions/a1",
			expect: func(f fixture) { f.admissions.EXPECT().Delete(gomock.Any(), "a1").Return(nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.expect(f)
			f.expectDashboard()

			code, body := f.do(t, http.MethodDelete, tt.target, "")

			assert.Equal(t, http.StatusOK, code)
			require.Len(t, body.Notifications, 1)
			assert.Equal(t, notification.KindSuccess, body.Notifications[0].Kind)
		})
	}
}

func TestDelete_FailureSkipsRefresh(t *testing.T) {
	f := newFixture(t)
	f.admissions.EXPECT().Delete(gomock.Any(), "a1").Return(errors.New("connection reset"))
	f.admissions.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	code, body := f.do(t, http.MethodDelete, "/v1/admin/admissions/a1", "")

	assert.Equal(t, http.StatusInternalServerError, code)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "Failed to delete admission", body.Notifications[0].Title)
}

func TestUploadGalleryImage(t *testing.T) {
	f := newFixture(t)

	var payload bytes.Buffer
	writer := multipart.NewWriter(&payload)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="day.png"`)
	header.Set("Content-Type", constant.ContentTypePNG)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	f.gallery.EXPECT().UploadImage(gomock.Any(), galleryDto.UploadImageRequest{
		FileName:    "day.png",
		ContentType: constant.ContentTypePNG,
		Size:        9,
		Data:        []byte("png-bytes"),
	}).Return(galleryDto.UploadImageResponse{URL: "https://cdn.example.com/gallery/x.png", FileName: "day.png"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/gallery/upload", &payload)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data galleryDto.UploadImageResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, "https://cdn.example.com/gallery/x.png", body.Data.URL)
}

func TestUploadGalleryImage_MissingFile(t *testing.T) {
	f := newFixture(t)
	f.gallery.EXPECT().UploadImage(gomock.Any(), gomock.Any()).Times(0)

	var payload bytes.Buffer
	writer := multipart.NewWriter(&payload)
	require.NoError(t, writer.WriteField("title", "no file"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/gallery/upload", &payload)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
