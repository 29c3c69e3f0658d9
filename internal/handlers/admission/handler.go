package admission

import (
	"net/http"
	"rkhub/infras/otel"
	"rkhub/internal/domains/admission/model/dto"
	"rkhub/internal/domains/admission/service"
	"rkhub/shared/constant"
	"rkhub/shared/form"
	"rkhub/shared/notification"
	"rkhub/transport/http/middleware"
	"rkhub/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var submitMessages = form.Messages{
	SuccessTitle:       "Application submitted!",
	SuccessDescription: "We'll contact you soon.",
	FailureTitle:       "Submission Failed",
	FailureDescription: "Please try again later.",
}

type Handler struct {
	service    service.Admission
	otel       otel.Otel
	middleware middleware.AppMiddleware
}

func New(service service.Admission, otel otel.Otel, appMiddleware middleware.AppMiddleware) Handler {
	return Handler{
		service:    service,
		otel:       otel,
		middleware: appMiddleware,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admissions", func(r chi.Router) {
		r.Get("/courses", handler.GetCourses)
		r.With(handler.middleware.RateLimit()).Post("/", handler.Submit)
	})
}

// GetCourses lists the selectable courses
// @Summary Admission courses
// @Description The fixed course catalog offered on the admission form.
// @Tags Admissions
// @Produce json
// @Success 200 {object} response.Data[dto.CoursesResponse]
// @Router /v1/admissions/courses [get]
func (handler *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCourses")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, dto.CoursesResponse{Courses: handler.service.Courses()})
}

// Submit stores one admission enquiry
// @Summary Submit an admission enquiry
// @Description Name, email, phone and course are required; message is optional. Returns the outcome as notifications.
// @Tags Admissions
// @Accept json
// @Produce json
// @Param request body dto.CreateAdmissionRequest true "Admission enquiry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Envelope
// @Router /v1/admissions [post]
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitAdmission")
	defer scope.End()

	queue := notification.NewQueue()
	admissionForm := form.New(dto.FormSchema, dto.FromValues, form.Creator[dto.CreateAdmissionRequest](handler.service), queue, form.WithMessages(submitMessages))

	if err := admissionForm.Bind(r.Body); err != nil {
		scope.TraceError(err)

		response.WithNotifiedError(w, err, nil, queue)

		return
	}

	if err := admissionForm.Submit(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit admission")

		response.WithNotifiedError(w, err, nil, queue)

		return
	}

	response.WithNotifications(w, http.StatusCreated, nil, queue)
}
