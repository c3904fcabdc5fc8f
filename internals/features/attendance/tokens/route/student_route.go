package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/tokens/controller"
	"absensiku_backend/internals/middlewares"
)

// QRResolveRoutes: endpoint student untuk resolve short token
func QRResolveRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResolveController(db)

	qr := r.Group("/qr")
	qr.Post("/resolve", middlewares.ResolveRateLimiter(), ctrl.ResolveQRToken)
}
