package controllers

import (
	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/reconcile"
	"roombooking-backend/utils"
)

// invoiceReconciler builds the reconciliation core with the configured
// booking sentinel. Cheap to construct; one per request is fine.
func invoiceReconciler() *reconcile.Reconciler {
	return reconcile.New(database.RoomServiceID())
}

// invoiceView is an invoice plus its reconciled summary. The summary is
// derived on every request and recomputes all totals; the stored
// totalAmount/grandTotal stay untouched for display even when stale.
type invoiceView struct {
	models.Invoice
	Summary reconcile.Reconciled `json:"summary"`
}

func newInvoiceView(invoice models.Invoice, r *reconcile.Reconciler) invoiceView {
	return invoiceView{Invoice: invoice, Summary: r.Reconcile(invoice.LineItems())}
}

type InvoiceItemInput struct {
	ServiceId   string  `json:"serviceId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	TotalPrice  float64 `json:"totalPrice"`
}

type CreateInvoiceInput struct {
	BookingId   string             `json:"bookingId" validate:"required"`
	Items       []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" validate:"gte=0"`
	GrandTotal  float64            `json:"grandTotal" validate:"gte=0"`
}

func CreateInvoice(c *fiber.Ctx) error {
	var input CreateInvoiceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	// The owner comes from the token, never from the body.
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	db := database.GetDB(c)

	var booking models.Booking
	if err := db.First(&booking, "id = ?", input.BookingId).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}
	if booking.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your booking")
	}

	var count int64
	db.Model(&models.Invoice{}).Where("booking_id = ?", booking.Id).Count(&count)
	if count > 0 {
		return respondError(c, fiber.StatusBadRequest, "booking already has an invoice")
	}

	items := make([]models.InvoiceItem, 0, len(input.Items))
	for _, item := range input.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, models.InvoiceItem{
			ServiceId:   item.ServiceId,
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   utils.Round2(item.UnitPrice),
			// Written consistent; readers still recompute (stored totals
			// can go stale when items are appended later).
			TotalPrice: utils.Round2(item.UnitPrice * float64(qty)),
		})
	}

	invoice := models.Invoice{
		BookingId: booking.Id,
		UserId:    booking.UserId,
		Items:     items,
		Status:    models.InvoiceStatusUnpaid,
	}

	r := invoiceReconciler()
	summary := r.Reconcile(invoice.LineItems())
	invoice.TotalAmount = input.TotalAmount
	invoice.GrandTotal = input.GrandTotal
	if invoice.GrandTotal == 0 {
		invoice.GrandTotal = summary.GrandTotal
	}
	if invoice.TotalAmount == 0 {
		invoice.TotalAmount = summary.GrandTotal
	}

	if err := db.Create(&invoice).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not create invoice")
	}

	return respondCreated(c, invoiceView{Invoice: invoice, Summary: summary})
}

// GetAllInvoices lists every invoice with its reconciled summary (back office).
func GetAllInvoices(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	var invoices []models.Invoice
	if err := database.GetDB(c).Preload("Items").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invoices).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list invoices")
	}

	r := invoiceReconciler()
	views := make([]invoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, newInvoiceView(invoice, r))
	}
	return respondData(c, views)
}

func GetInvoice(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var invoice models.Invoice
	if err := database.GetDB(c).Preload("Items").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "invoice not found")
	}
	if invoice.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your invoice")
	}
	return respondData(c, newInvoiceView(invoice, invoiceReconciler()))
}

func GetInvoiceByBooking(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var invoice models.Invoice
	if err := database.GetDB(c).Preload("Items").
		Where("booking_id = ?", c.Params("bookingId")).
		First(&invoice).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "invoice not found")
	}
	if invoice.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your invoice")
	}
	return respondData(c, newInvoiceView(invoice, invoiceReconciler()))
}

func GetUserInvoices(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var invoices []models.Invoice
	if err := database.GetDB(c).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list invoices")
	}

	r := invoiceReconciler()
	views := make([]invoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, newInvoiceView(invoice, r))
	}
	return respondData(c, views)
}

type InvoiceStatusInput struct {
	Status string `json:"status" validate:"required,oneof=unpaid paid cancelled"`
}

func UpdateInvoiceStatus(c *fiber.Ctx) error {
	var input InvoiceStatusInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := database.GetDB(c)
	var invoice models.Invoice
	if err := db.Preload("Items").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "invoice not found")
	}
	if err := db.Model(&invoice).Update("status", input.Status).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not update invoice")
	}
	invoice.Status = input.Status
	return respondData(c, newInvoiceView(invoice, invoiceReconciler()))
}
