package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"rkhub/infras/otel"
	admissionDto "rkhub/internal/domains/admission/model/dto"
	admissionService "rkhub/internal/domains/admission/service"
	announcementDto "rkhub/internal/domains/announcement/model/dto"
	announcementService "rkhub/internal/domains/announcement/service"
	galleryDto "rkhub/internal/domains/gallery/model/dto"
	galleryService "rkhub/internal/domains/gallery/service"
	"rkhub/shared/constant"
	"rkhub/shared/deletion"
	"rkhub/shared/failure"
	"rkhub/shared/form"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"rkhub/transport/http/middleware"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var (
	updateMessages = form.Messages{
		SuccessTitle: "Update added successfully!",
		FailureTitle: "Failed to add update",
	}
	galleryMessages = form.Messages{
		SuccessTitle: "Gallery item added successfully!",
		FailureTitle: "Failed to add gallery item",
	}
	deleteUpdateMessages = deletion.Messages{
		SuccessTitle: "Update deleted successfully",
		FailureTitle: "Failed to delete update",
	}
	deleteGalleryMessages = deletion.Messages{
		SuccessTitle: "Gallery item deleted successfully",
		FailureTitle: "Failed to delete gallery item",
	}
	deleteAdmissionMessages = deletion.Messages{
		SuccessTitle: "Admission deleted successfully",
		FailureTitle: "Failed to delete admission",
	}
)

type Handler struct {
	updates    announcementService.Announcement
	gallery    galleryService.Gallery
	admissions admissionService.Admission
	otel       otel.Otel
	middleware middleware.AuthRole
}

func New(
	updates announcementService.Announcement,
	gallery galleryService.Gallery,
	admissions admissionService.Admission,
	otel otel.Otel,
	authRole middleware.AuthRole,
) Handler {
	return Handler{
		updates:    updates,
		gallery:    gallery,
		admissions: admissions,
		otel:       otel,
		middleware: authRole,
	}
}

// DashboardResponse is the full admin view: every record of each collection.
type DashboardResponse struct {
	Updates    []announcementDto.AnnouncementResponse `json:"updates"`
	Gallery    []galleryDto.GalleryItemResponse       `json:"gallery"`
	Admissions []admissionDto.AdmissionResponse       `json:"admissions"`
}

type dashboard struct {
	view       *listing.View
	updates    *listing.Collection[announcementDto.AnnouncementResponse]
	gallery    *listing.Collection[galleryDto.GalleryItemResponse]
	admissions *listing.Collection[admissionDto.AdmissionResponse]
}

func (handler *Handler) newDashboard(sink notification.Sink) *dashboard {
	d := &dashboard{
		updates:    listing.NewCollection[announcementDto.AnnouncementResponse]("updates", handler.updates.List, 0),
		gallery:    listing.NewCollection[galleryDto.GalleryItemResponse]("gallery", handler.gallery.List, 0),
		admissions: listing.NewCollection[admissionDto.AdmissionResponse]("admissions", handler.admissions.List, 0),
	}

	d.view = listing.NewView("admin", []listing.Loader{d.updates, d.gallery, d.admissions}, listing.WithErrorNotification(sink, listing.ErrorLoadingTitle))

	return d
}

func (d *dashboard) response() DashboardResponse {
	return DashboardResponse{
		Updates:    d.updates.Items(),
		Gallery:    d.gallery.Items(),
		Admissions: d.admissions.Items(),
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		r.Get("/dashboard", handler.GetDashboard)
		r.Get("/admissions", handler.GetAdmissions)
		r.Delete("/admissions/{id}", handler.DeleteAdmission)

		r.Post("/updates", handler.CreateUpdate)
		r.Delete("/updates/{id}", handler.DeleteUpdate)

		r.Post("/gallery", handler.CreateGalleryItem)
		r.Post("/gallery/upload", handler.UploadGalleryImage)
		r.Delete("/gallery/{id}", handler.DeleteGalleryItem)
	})
}

// GetDashboard loads every collection for the admin dashboard
// @Summary Admin dashboard
// @Description All updates, gallery items and admissions, newest first, loaded concurrently.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope{data=DashboardResponse}
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	queue := notification.NewQueue()
	d := handler.newDashboard(queue)

	if err := d.view.Load(ctx); err != nil {
		scope.TraceError(err)
	}

	response.WithNotifications(w, http.StatusOK, d.response(), queue)
}

// GetAdmissions lists admission enquiries
// @Summary List admissions
// @Description All admission enquiries, newest first.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope{data=[]admissionDto.AdmissionResponse}
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/admissions [get]
// @Security BearerAuth
func (handler *Handler) GetAdmissions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmissions")
	defer scope.End()

	queue := notification.NewQueue()
	admissions := listing.NewCollection[admissionDto.AdmissionResponse]("admissions", handler.admissions.List, 0)

	view := listing.NewView("admissions", []listing.Loader{admissions}, listing.WithErrorNotification(queue, listing.ErrorLoadingTitle))
	if err := view.Load(ctx); err != nil {
		scope.TraceError(err)
	}

	response.WithNotifications(w, http.StatusOK, admissions.Items(), queue)
}

// CreateUpdate adds an update and returns the refreshed dashboard
// @Summary Add an update
// @Description Title and content are required. On success the dashboard is reloaded and returned.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body announcementDto.CreateAnnouncementRequest true "Update"
// @Success 201 {object} response.Envelope{data=DashboardResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/updates [post]
// @Security BearerAuth
func (handler *Handler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUpdate")
	defer scope.End()

	queue := notification.NewQueue()
	d := handler.newDashboard(queue)

	updateForm := form.New(
		announcementDto.FormSchema,
		announcementDto.FromValues,
		form.Creator[announcementDto.CreateAnnouncementRequest](handler.updates),
		queue,
		form.WithMessages(updateMessages),
		form.WithRefresh(d.view.Load),
	)

	if err := submit(ctx, r.Body, updateForm); err != nil {
		scope.TraceError(err)

		response.WithNotifiedError(w, err, nil, queue)

		return
	}

	response.WithNotifications(w, http.StatusCreated, d.response(), queue)
}

// CreateGalleryItem adds a gallery item and returns the refreshed dashboard
// @Summary Add a gallery item
// @Description Title and image URL are required. On success the dashboard is reloaded and returned.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body galleryDto.CreateGalleryItemRequest true "Gallery item"
// @Success 201 {object} response.Envelope{data=DashboardResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGalleryItem")
	defer scope.End()

	queue := notification.NewQueue()
	d := handler.newDashboard(queue)

	galleryForm := form.New(
		galleryDto.FormSchema,
		galleryDto.FromValues,
		form.Creator[galleryDto.CreateGalleryItemRequest](handler.gallery),
		queue,
		form.WithMessages(galleryMessages),
		form.WithRefresh(d.view.Load),
	)

	if err := submit(ctx, r.Body, galleryForm); err != nil {
		scope.TraceError(err)

		response.WithNotifiedError(w, err, nil, queue)

		return
	}

	response.WithNotifications(w, http.StatusCreated, d.response(), queue)
}

// UploadGalleryImage stores an image in the bucket
// @Summary Upload a gallery image
// @Description Stores a PNG, JPEG or WebP image (up to 10 MB) and a thumbnail. Returns the public URLs.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 201 {object} response.Data[galleryDto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gallery/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadGalleryImage")
	defer scope.End()

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory+(1<<20))

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(w, failure.BadRequestFromString("failed to read file"))

		return
	}

	res, err := handler.gallery.UploadImage(ctx, galleryDto.UploadImageRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(constant.RequestHeaderContentType),
		Size:        int64(len(data)),
		Data:        data,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to upload gallery image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteUpdate removes an update and returns the refreshed dashboard
// @Summary Delete an update
// @Tags Admin
// @Produce json
// @Param id path string true "Update ID"
// @Success 200 {object} response.Envelope{data=DashboardResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/updates/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUpdate(w http.ResponseWriter, r *http.Request) {
	handler.deleteByID(w, r, ".DeleteUpdate", deletion.DeleterFunc(handler.updates.Delete), deleteUpdateMessages)
}

// DeleteGalleryItem removes a gallery item and its stored image
// @Summary Delete a gallery item
// @Tags Admin
// @Produce json
// @Param id path string true "Gallery item ID"
// @Success 200 {object} response.Envelope{data=DashboardResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	handler.deleteByID(w, r, ".DeleteGalleryItem", deletion.DeleterFunc(handler.gallery.Delete), deleteGalleryMessages)
}

// DeleteAdmission removes an admission enquiry
// @Summary Delete an admission
// @Tags Admin
// @Produce json
// @Param id path string true "Admission ID"
// @Success 200 {object} response.Envelope{data=DashboardResponse}
// @Failure 500 {object} response.Envelope
// @Router /v1/admin/admissions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAdmission(w http.ResponseWriter, r *http.Request) {
	handler.deleteByID(w, r, ".DeleteAdmission", deletion.DeleterFunc(handler.admissions.Delete), deleteAdmissionMessages)
}

func (handler *Handler) deleteByID(w http.ResponseWriter, r *http.Request, scopeName string, deleter deletion.Deleter, messages deletion.Messages) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+scopeName)
	defer scope.End()

	queue := notification.NewQueue()
	d := handler.newDashboard(queue)

	id := chi.URLParam(r, constant.RequestParamID)

	if err := deletion.New(deleter, queue, d.view.Load, messages).DeleteByID(ctx, id); err != nil {
		scope.TraceError(err)

		if errors.Is(err, deletion.ErrMissingID) {
			err = failure.BadRequest(err)
		}

		response.WithNotifiedError(w, err, nil, queue)

		return
	}

	response.WithNotifications(w, http.StatusOK, d.response(), queue)
}

type submitter interface {
	Bind(body io.Reader) error
	Submit(ctx context.Context) error
}

func submit(ctx context.Context, body io.Reader, f submitter) error {
	if err := f.Bind(body); err != nil {
		return err
	}

	if err := f.Submit(ctx); err != nil {
		log.Error().Err(err).Msg("failed to submit admin form")

		return err
	}

	return nil
}
