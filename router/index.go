package router

import (
	"sortear_api/handler"
	"sortear_api/middleware"
	"sortear_api/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	user := v1.Group("/users", logger.New())
	user.Post("/", validate.CreateUser(), handler.CreateUser)
	user.Get("/me", middleware.Protected(), handler.Me)
	user.Put("/me", middleware.Protected(), validate.UpdateUser(), handler.UpdateMe)
	user.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	user.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	promotion := v1.Group("/promotions", logger.New())
	promotion.Get("/", middleware.Protected(), handler.GetPromotions)
	promotion.Post("/", middleware.Protected(), validate.CreatePromotion(), handler.CreatePromotion)
	promotion.Get("/:promotionId", middleware.Protected(), validate.GetById("promotionId"), handler.GetPromotionById)
	promotion.Put("/:promotionId", middleware.Protected(), validate.UpdatePromotion("promotionId"), handler.UpdatePromotion)
	promotion.Delete("/:promotionId", middleware.Protected(), validate.GetById("promotionId"), handler.DeletePromotion)
	promotion.Get("/:promotionId/qrcode", middleware.Protected(), validate.GetById("promotionId"), handler.GetPromotionQRCode)
	promotion.Post("/:promotionId/banner", middleware.Protected(), validate.GetById("promotionId"), handler.UploadPromotionBanner)
	promotion.Get("/:promotionId/participants", middleware.Protected(), validate.GetById("promotionId"), handler.GetParticipantsByPromotion)
	promotion.Get("/:promotionId/participants/count", middleware.Protected(), validate.GetById("promotionId"), handler.CountParticipants)
	promotion.Get("/:promotionId/draws", middleware.Protected(), validate.GetById("promotionId"), handler.GetDrawsByPromotion)

	participant := v1.Group("/participants", logger.New())
	participant.Post("/", middleware.Protected(), validate.CreateParticipant(), handler.CreateParticipant)
	participant.Get("/:participantId", middleware.Protected(), validate.GetById("participantId"), handler.GetParticipantById)
	participant.Put("/:participantId", middleware.Protected(), validate.UpdateParticipant("participantId"), handler.UpdateParticipant)
	participant.Delete("/:participantId", middleware.Protected(), validate.GetById("participantId"), handler.DeleteParticipant)

	draw := v1.Group("/draws", logger.New())
	draw.Post("/", middleware.Protected(), validate.CreateDraw(), handler.CreateDraw)
	draw.Get("/:drawId", middleware.Protected(), validate.GetById("drawId"), handler.GetDrawById)
	draw.Put("/:drawId", middleware.Protected(), validate.UpdateDraw("drawId"), handler.UpdateDraw)
	draw.Delete("/:drawId", middleware.Protected(), validate.GetById("drawId"), handler.DeleteDraw)
	draw.Post("/:drawId/execute", middleware.Protected(), validate.ExecuteDraw("drawId"), handler.ExecuteDraw)
	draw.Get("/:drawId/winners", middleware.Protected(), validate.GetById("drawId"), handler.GetWinners)

	// Feed ao vivo dos sorteios de uma promoção
	v1.Get("/ws/promotions/:id/draws", websocket.New(handler.DrawFeedConnection))
}
