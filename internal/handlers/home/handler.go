package home

import (
	"net/http"
	"rkhub/infras/otel"
	announcementDto "rkhub/internal/domains/announcement/model/dto"
	announcementService "rkhub/internal/domains/announcement/service"
	galleryDto "rkhub/internal/domains/gallery/model/dto"
	galleryService "rkhub/internal/domains/gallery/service"
	"rkhub/shared/constant"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	updates announcementService.Announcement
	gallery galleryService.Gallery
	otel    otel.Otel
}

func New(updates announcementService.Announcement, gallery galleryService.Gallery, otel otel.Otel) Handler {
	return Handler{
		updates: updates,
		gallery: gallery,
		otel:    otel,
	}
}

type Response struct {
	Updates []announcementDto.AnnouncementResponse `json:"updates"`
	Gallery []galleryDto.GalleryItemResponse       `json:"gallery"`
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/home", handler.GetHome)
}

// GetHome loads the homepage collections
// @Summary Homepage
// @Description Latest updates (up to 3) and gallery items (up to 6), loaded concurrently. A failed collection is returned empty without any notification.
// @Tags Home
// @Produce json
// @Success 200 {object} response.Envelope{data=Response}
// @Router /v1/home [get]
func (handler *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHome")
	defer scope.End()

	queue := notification.NewQueue()

	updates := listing.NewCollection[announcementDto.AnnouncementResponse]("updates", handler.updates.List, constant.HomeUpdatesLimit)
	gallery := listing.NewCollection[galleryDto.GalleryItemResponse]("gallery", handler.gallery.List, constant.HomeGalleryLimit)

	view := listing.NewView("home", []listing.Loader{updates, gallery})

	if err := view.Load(ctx); err != nil {
		scope.TraceError(err)
	}

	response.WithNotifications(w, http.StatusOK, Response{
		Updates: updates.Items(),
		Gallery: gallery.Items(),
	}, queue)
}
