package routes

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/controllers"
	"roombooking-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	auth := api.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)

	// Public browsing (no token needed to look at rooms)
	api.Get("/hotels", controllers.GetHotels)
	api.Get("/hotels/:id", controllers.GetHotel)
	api.Get("/floors", controllers.GetFloors)
	api.Get("/floors/:id", controllers.GetFloor)
	api.Get("/rooms", controllers.GetRooms)
	api.Get("/rooms/available", controllers.GetAvailableRooms)
	api.Get("/rooms/:id", controllers.GetRoom)
	api.Get("/services", controllers.GetServices)
	api.Get("/services/:id", controllers.GetService)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to the request TX)
	protected.Use(middlewares.Idempotency())

	// Then the per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	protected.Get("/users/profile", controllers.GetProfile)

	// Bookings
	protected.Post("/bookings", controllers.CreateBooking)
	protected.Get("/bookings/user", controllers.GetUserBookings)
	protected.Get("/bookings", middlewares.RequireAdmin(), controllers.GetBookings)
	protected.Get("/bookings/:id", controllers.GetBooking)
	protected.Put("/bookings/:id/cancel", controllers.CancelBooking)
	protected.Put("/bookings/:id/confirm", middlewares.RequireAdmin(), controllers.ConfirmBooking)
	protected.Delete("/bookings/:id", controllers.DeleteBooking)

	// Invoices (fixed paths before the :id catch-alls)
	protected.Post("/invoices", controllers.CreateInvoice)
	protected.Get("/invoices/all", middlewares.RequireAdmin(), controllers.GetAllInvoices)
	protected.Get("/invoices/user", controllers.GetUserInvoices)
	protected.Get("/invoices/booking/:bookingId", controllers.GetInvoiceByBooking)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id/status", middlewares.RequireAdmin(), controllers.UpdateInvoiceStatus)
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)

	// Back office
	admin := protected.Group("", middlewares.RequireAdmin())

	admin.Get("/users", controllers.GetUsers)
	admin.Get("/users/:id", controllers.GetUser)
	admin.Put("/users/:id", controllers.UpdateUser)
	admin.Delete("/users/:id", controllers.DeleteUser)

	admin.Post("/roles", controllers.CreateRole)
	admin.Get("/roles", controllers.GetRoles)
	admin.Get("/roles/:id", controllers.GetRole)
	admin.Put("/roles/:id", controllers.UpdateRole)
	admin.Delete("/roles/:id", controllers.DeleteRole)

	admin.Post("/hotels", controllers.CreateHotel)
	admin.Put("/hotels/:id", controllers.UpdateHotel)
	admin.Delete("/hotels/:id", controllers.DeleteHotel)

	admin.Post("/floors", controllers.CreateFloor)
	admin.Put("/floors/:id", controllers.UpdateFloor)
	admin.Delete("/floors/:id", controllers.DeleteFloor)

	admin.Post("/rooms", controllers.CreateRoom)
	admin.Put("/rooms/:id", controllers.UpdateRoom)
	admin.Delete("/rooms/:id", controllers.DeleteRoom)

	admin.Post("/services", controllers.CreateServices) // batch create
	admin.Put("/services/:id", controllers.UpdateService)
	admin.Delete("/services/:id", controllers.DeleteService)

	admin.Post("/servicebills", controllers.CreateServiceBill)
	admin.Get("/servicebills", controllers.GetServiceBills)
	admin.Get("/servicebills/:id", controllers.GetServiceBill)
	admin.Put("/servicebills/:id/status", controllers.UpdateServiceBillStatus)
	admin.Delete("/servicebills/:id", controllers.DeleteServiceBill)
}
