package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/reconcile"
	"roombooking-backend/utils"
)

const dateLayout = "2006-01-02"

type BookingInput struct {
	RoomId       string `json:"roomId" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
}

func CreateBooking(c *fiber.Ctx) error {
	var input BookingInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)

	checkIn, err := time.Parse(dateLayout, input.CheckInDate)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid checkInDate (want YYYY-MM-DD)")
	}
	checkOut, err := time.Parse(dateLayout, input.CheckOutDate)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid checkOutDate (want YYYY-MM-DD)")
	}
	if !checkOut.After(checkIn) {
		return respondError(c, fiber.StatusBadRequest, "checkOutDate must be after checkInDate")
	}

	db := database.GetDB(c)

	var room models.Room
	if err := db.First(&room, "id = ?", input.RoomId).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "room not found")
	}
	if !room.IsAvailable {
		return respondError(c, fiber.StatusBadRequest, "room is not available")
	}

	// Price is computed server side; the client total is not trusted.
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	booking := models.Booking{
		UserId:       userID,
		RoomId:       room.Id,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalPrice:   utils.Round2(room.Price * float64(nights)),
		Status:       models.BookingStatusPending,
	}
	if err := db.Create(&booking).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not create booking")
	}
	if err := db.Model(&room).Update("is_available", false).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not reserve room")
	}

	booking.Room = room
	return respondCreated(c, booking)
}

// GetBookings lists every booking for the back office.
func GetBookings(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var bookings []models.Booking
	if err := database.GetDB(c).Preload("Room").Preload("User").Preload("User.Role").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list bookings")
	}
	return respondData(c, bookings)
}

type bookingWithInvoice struct {
	models.Booking
	Invoice *models.Invoice       `json:"invoice"`
	Summary *reconcile.Reconciled `json:"summary"`
}

// GetUserBookings returns the caller's bookings with each booking's invoice
// loaded concurrently. A missing or failed invoice lookup leaves that
// booking's invoice null instead of failing the whole listing.
func GetUserBookings(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var bookings []models.Booking
	if err := database.GetDB(c).Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list bookings")
	}

	// Fan out on the shared handle, not the request transaction: a gorm.DB
	// is safe for concurrent use, a single transaction is not.
	r := invoiceReconciler()
	results := make([]bookingWithInvoice, len(bookings))
	var g errgroup.Group
	for i, booking := range bookings {
		i, booking := i, booking
		g.Go(func() error {
			results[i].Booking = booking

			var invoice models.Invoice
			if err := database.DB.Preload("Items").
				Where("booking_id = ?", booking.Id).
				First(&invoice).Error; err != nil {
				return nil // no invoice for this booking
			}
			summary := r.Reconcile(invoice.LineItems())
			results[i].Invoice = &invoice
			results[i].Summary = &summary
			return nil
		})
	}
	_ = g.Wait() // tasks never fail; they degrade to a null invoice

	return respondData(c, results)
}

func GetBooking(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var booking models.Booking
	if err := database.GetDB(c).Preload("Room").First(&booking, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}
	if booking.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your booking")
	}
	return respondData(c, booking)
}

func CancelBooking(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	db := database.GetDB(c)
	var booking models.Booking
	if err := db.First(&booking, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}
	if booking.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your booking")
	}
	if booking.Status == models.BookingStatusCancelled {
		return respondError(c, fiber.StatusBadRequest, "booking already cancelled")
	}

	if err := db.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not cancel booking")
	}
	if err := db.Model(&models.Room{}).Where("id = ?", booking.RoomId).Update("is_available", true).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not release room")
	}
	// An unpaid invoice follows its booking.
	db.Model(&models.Invoice{}).
		Where("booking_id = ? AND status = ?", booking.Id, models.InvoiceStatusUnpaid).
		Update("status", models.InvoiceStatusCancelled)

	booking.Status = models.BookingStatusCancelled
	return respondData(c, booking)
}

// ConfirmBooking moves a pending booking to confirmed (back office).
func ConfirmBooking(c *fiber.Ctx) error {
	db := database.GetDB(c)
	var booking models.Booking
	if err := db.First(&booking, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}
	if booking.Status != models.BookingStatusPending {
		return respondError(c, fiber.StatusBadRequest, "only pending bookings can be confirmed")
	}
	if err := db.Model(&booking).Update("status", models.BookingStatusConfirmed).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not confirm booking")
	}
	booking.Status = models.BookingStatusConfirmed
	return respondData(c, booking)
}

func DeleteBooking(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	db := database.GetDB(c)
	var booking models.Booking
	if err := db.First(&booking, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}
	if booking.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your booking")
	}

	var invoice models.Invoice
	if err := db.Where("booking_id = ?", booking.Id).First(&invoice).Error; err == nil {
		db.Where("invoice_id = ?", invoice.Id).Delete(&models.InvoiceItem{})
		db.Delete(&invoice)
	}
	if err := db.Delete(&booking).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not delete booking")
	}
	db.Model(&models.Room{}).Where("id = ?", booking.RoomId).Update("is_available", true)

	return respondMessage(c, "booking deleted")
}
