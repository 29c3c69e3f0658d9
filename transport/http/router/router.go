package router

import (
	"rkhub/internal/handlers/admin"
	"rkhub/internal/handlers/admission"
	"rkhub/internal/handlers/auth"
	"rkhub/internal/handlers/gallery"
	"rkhub/internal/handlers/home"
	"rkhub/internal/handlers/updates"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Home      home.Handler
	Updates   updates.Handler
	Gallery   gallery.Handler
	Admission admission.Handler
	Admin     admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Home.Router(routerGroup)
		r.DomainHandlers.Updates.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Admission.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
