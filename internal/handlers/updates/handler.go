package updates

import (
	"net/http"
	"rkhub/infras/otel"
	"rkhub/internal/domains/announcement/model/dto"
	"rkhub/internal/domains/announcement/service"
	"rkhub/shared/constant"
	gDto "rkhub/shared/dto"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Announcement
	otel    otel.Otel
}

func New(service service.Announcement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/updates", handler.GetUpdates)
}

// GetUpdates lists updates newest first
// @Summary List updates
// @Description All updates ordered by creation time, newest first. A failed load returns an empty list without any notification.
// @Tags Updates
// @Produce json
// @Param limit query int false "Maximum number of updates"
// @Success 200 {object} response.Envelope{data=[]dto.AnnouncementResponse}
// @Router /v1/updates [get]
func (handler *Handler) GetUpdates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpdates")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	queue := notification.NewQueue()
	updates := listing.NewCollection[dto.AnnouncementResponse]("updates", handler.service.List, queryParams.Limit)

	view := listing.NewView("updates", []listing.Loader{updates})
	if err := view.Load(ctx); err != nil {
		scope.TraceError(err)
	}

	response.WithNotifications(w, http.StatusOK, updates.Items(), queue)
}
