package routers

import (
	"clinica-service/internal/app/delivery/http/controllers"
	"clinica-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachProfileRoutes(router chi.Router, avatarLimiter *middlewares.RateLimiter, profileController *controllers.ProfileController) {
	router.Get("/profile/me", profileController.GetMe)
	router.Patch("/profile/me", profileController.UpdateMe)
	if avatarLimiter != nil {
		router.With(avatarLimiter.Limit).Put("/profile/me/avatar", profileController.UploadAvatar)
	} else {
		router.Put("/profile/me/avatar", profileController.UploadAvatar)
	}
	router.Get("/staff", profileController.ListStaff)
}
