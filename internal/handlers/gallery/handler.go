package gallery

import (
	"net/http"
	"rkhub/infras/otel"
	"rkhub/internal/domains/gallery/model/dto"
	"rkhub/internal/domains/gallery/service"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/gallery", handler.GetGallery)
}

// GetGallery lists gallery items newest first
// @Summary List gallery items
// @Description All gallery items ordered by creation time, newest first. A failed load returns an empty list without any notification.
// @Tags Gallery
// @Produce json
// @Param limit query int false "Maximum number of items"
// @Success 200 {object} response.Envelope{data=[]dto.GalleryItemResponse}
// @Router /v1/gallery [get]
func (handler *Handler) GetGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGallery")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	queue := notification.NewQueue()
	items := listing.NewCollection[dto.GalleryItemResponse]("gallery", handler.service.List, queryParams.Limit)

	view := listing.NewView("gallery", []listing.Loader{items})
	if err := view.Load(ctx); err != nil {
		scope.TraceError(err)
	}

	response.WithNotifications(w, http.StatusOK, items.Items(), queue)
}
