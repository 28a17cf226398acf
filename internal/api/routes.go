package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/login", handler.LoginHint)
	app.Get("/", handler.AuthRequired, handler.GetDashboard)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)
	profile.Post("/password", handler.ChangePassword)

	contractors := api.Group("/contractors", handler.AuthRequired)
	contractors.Get("", handler.ListContractors)
	contractors.Post("", handler.CreateContractor)
	contractors.Get("/:id", handler.GetContractor)
	contractors.Put("/:id", handler.UpdateContractor)
	contractors.Delete("/:id", handler.DeleteContractor)

	students := api.Group("/students", handler.AuthRequired)
	students.Get("", handler.ListStudents)
	students.Post("", handler.CreateStudent)
	students.Get("/:id", handler.GetStudent)
	students.Put("/:id", handler.UpdateStudent)
	students.Delete("/:id", handler.DeleteStudent)

	classes := api.Group("/classes", handler.AuthRequired)
	classes.Get("", handler.ListClasses)
	classes.Post("", handler.CreateClass)
	classes.Get("/:id", handler.GetClass)
	classes.Patch("/:id/status", handler.UpdateClassStatus)
	classes.Delete("/:id", handler.DeleteClass)

	payments := api.Group("/payments", handler.AuthRequired)
	payments.Get("", handler.ListPayments)
	payments.Post("", handler.CreatePayment)
	payments.Get("/:id", handler.GetPayment)
	payments.Patch("/:id/status", handler.UpdatePaymentStatus)

	api.Get("/summary", handler.AuthRequired, handler.GetFinancialSummary)
	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)

	app.Use(handler.NotFound)
}
