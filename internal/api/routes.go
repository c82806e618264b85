package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/setup", handler.Setup)
	auth.Post("/login", handler.Login)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	intervals := api.Group("/intervals", handler.AuthRequired)
	intervals.Get("", handler.ListIntervals)
	intervals.Post("/:date/toggle", handler.ToggleDay)

	api.Get("/calculations", handler.AuthRequired, handler.GetCalculations)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
