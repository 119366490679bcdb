package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type PaymentInput struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required"`
	Reference string  `json:"reference"`
}

// CreatePayment simulates settling an invoice. The invoice flips to paid
// once the rollup covers the reconciled grand total, and the summary used
// for that decision is frozen on the payment row.
func CreatePayment(c *fiber.Ctx) error {
	var input PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	db := database.GetDB(c)

	var invoice models.Invoice
	if err := db.Preload("Items").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "invoice not found")
	}
	if invoice.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your invoice")
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return respondError(c, fiber.StatusBadRequest, "invoice is cancelled")
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return respondError(c, fiber.StatusBadRequest, "invoice already paid")
	}

	summary := invoiceReconciler().Reconcile(invoice.LineItems())
	snapshot, err := json.Marshal(summary)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not snapshot invoice")
	}

	payment := models.Payment{
		InvoiceID: invoice.Id,
		Amount:    utils.Round2(input.Amount),
		Method:    input.Method,
		Reference: input.Reference,
		Snapshot:  snapshot,
		PaidAt:    time.Now().UTC(),
	}
	if err := db.Create(&payment).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not record payment")
	}

	paidTotal := utils.Round2(invoice.PaidTotal + payment.Amount)
	updates := map[string]any{"paid_total": paidTotal}
	if paidTotal >= summary.GrandTotal {
		updates["status"] = models.InvoiceStatusPaid
	}
	if err := db.Model(&invoice).Updates(updates).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not update invoice")
	}
	invoice.PaidTotal = paidTotal
	if paidTotal >= summary.GrandTotal {
		invoice.Status = models.InvoiceStatusPaid
	}

	return respondCreated(c, fiber.Map{
		"payment": payment,
		"invoice": invoiceView{Invoice: invoice, Summary: summary},
	})
}

func ListPayments(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	db := database.GetDB(c)

	var invoice models.Invoice
	if err := db.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "invoice not found")
	}
	if invoice.UserId != userID && role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "not your invoice")
	}

	var payments []models.Payment
	if err := db.Where("invoice_id = ?", invoice.Id).Order("paid_at").Find(&payments).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list payments")
	}
	return respondData(c, payments)
}
