package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"roombooking-backend/database"
	"roombooking-backend/middlewares"
	"roombooking-backend/models"
	"roombooking-backend/utils"
)

type ServiceBillItemInput struct {
	ServiceId string `json:"serviceId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type CreateServiceBillInput struct {
	BookingId string                 `json:"bookingId" validate:"required"`
	Items     []ServiceBillItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateServiceBill charges add-on services to a booking after the fact.
// Unit prices come from the service catalogue, and the billed items are
// appended to the booking's invoice so the next reconciliation picks them
// up (the invoice's stored totals are deliberately left alone — readers
// recompute).
func CreateServiceBill(c *fiber.Ctx) error {
	var input CreateServiceBillInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := database.GetDB(c)

	var booking models.Booking
	if err := db.First(&booking, "id = ?", input.BookingId).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "booking not found")
	}

	var invoice models.Invoice
	if err := db.Where("booking_id = ?", booking.Id).First(&invoice).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "booking has no invoice to bill against")
	}

	var billItems []models.ServiceBillItem
	var invoiceItems []models.InvoiceItem
	var total float64
	for i, item := range input.Items {
		var service models.Service
		if err := db.First(&service, "id = ?", item.ServiceId).Error; err != nil {
			return respondError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown service at index %d", i))
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		lineTotal := utils.Round2(service.Price * float64(qty))
		total += lineTotal

		billItems = append(billItems, models.ServiceBillItem{
			ServiceId:  service.Id,
			Quantity:   qty,
			UnitPrice:  service.Price,
			TotalPrice: lineTotal,
		})
		invoiceItems = append(invoiceItems, models.InvoiceItem{
			InvoiceID:   invoice.Id,
			ServiceId:   service.Id,
			Description: service.Name,
			Quantity:    qty,
			UnitPrice:   service.Price,
			TotalPrice:  lineTotal,
		})
	}

	bill := models.ServiceBill{
		BookingId: booking.Id,
		UserId:    booking.UserId,
		Items:     billItems,
		Total:     utils.Round2(total),
		Status:    models.ServiceBillStatusPending,
	}
	if err := db.Create(&bill).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not create service bill")
	}
	if err := db.Create(&invoiceItems).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not bill services to the invoice")
	}

	return respondCreated(c, bill)
}

func GetServiceBills(c *fiber.Ctx) error {
	var bills []models.ServiceBill
	q := database.GetDB(c).Preload("Items").Preload("Items.Service")
	if bookingID := c.Query("bookingId"); bookingID != "" {
		q = q.Where("booking_id = ?", bookingID)
	}
	if err := q.Order("created_at DESC").Find(&bills).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not list service bills")
	}
	return respondData(c, bills)
}

func GetServiceBill(c *fiber.Ctx) error {
	var bill models.ServiceBill
	if err := database.GetDB(c).Preload("Items").Preload("Items.Service").
		First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "service bill not found")
	}
	return respondData(c, bill)
}

type ServiceBillStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled"`
}

func UpdateServiceBillStatus(c *fiber.Ctx) error {
	var input ServiceBillStatusInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db := database.GetDB(c)
	var bill models.ServiceBill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "service bill not found")
	}
	if err := db.Model(&bill).Update("status", input.Status).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "could not update service bill")
	}
	bill.Status = input.Status
	return respondData(c, bill)
}

func DeleteServiceBill(c *fiber.Ctx) error {
	db := database.GetDB(c)
	var bill models.ServiceBill
	if err := db.First(&bill, "id = ?", c.Params("id")).Error; err != nil {
		return respondError(c, fiber.StatusNotFound, "service bill not found")
	}
	db.Where("service_bill_id = ?", bill.Id).Delete(&models.ServiceBillItem{})
	if err := db.Delete(&bill).Error; err != nil {
		return respondError(c, fiber.StatusBadRequest, "could not delete service bill")
	}
	return respondMessage(c, "service bill deleted")
}
