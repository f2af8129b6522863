// file: internals/features/finance/payments/controller/midtrans_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	invoiceModel "bimbelku_backend/internals/features/finance/invoices/model"
	dto "bimbelku_backend/internals/features/finance/payments/dto"
	model "bimbelku_backend/internals/features/finance/payments/model"
	service "bimbelku_backend/internals/features/finance/payments/service"
	studentModel "bimbelku_backend/internals/features/school/students/model"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type MidtransController struct {
	DB *gorm.DB
}

func NewMidtransController(db *gorm.DB) *MidtransController {
	return &MidtransController{DB: db}
}

// POST /api/u/invoices/:id/checkout
//
// Opens a Snap transaction for the invoice's remaining amount. The
// invoice itself is untouched; money only moves when the webhook
// reports a settlement.
func (ctl *MidtransController) Checkout(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AllRoles...); err != nil {
		return helper.FromFiberError(c, err)
	}

	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoice id")
	}

	var inv invoiceModel.Invoice
	if err := ctl.DB.WithContext(c.Context()).
		Where("invoice_id = ? AND invoice_center_id = ?", invoiceID, centerID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load invoice")
	}
	if inv.InvoiceRemainingAmountIDR <= 0 {
		return helper.JsonError(c, fiber.StatusConflict, "invoice is already settled")
	}

	var student studentModel.Student
	if err := ctl.DB.WithContext(c.Context()).
		Where("student_id = ?", inv.InvoiceStudentID).
		First(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load student")
	}

	payerName := student.StudentName
	if student.StudentParentName != nil && *student.StudentParentName != "" {
		payerName = *student.StudentParentName
	}

	token, redirectURL, orderID, err := service.CreateInvoiceCheckout(
		inv.InvoiceID, inv.InvoiceNumber, inv.InvoiceRemainingAmountIDR,
		service.CheckoutCustomer{
			Name:  payerName,
			Phone: student.StudentContactNumber,
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "payment gateway rejected the checkout")
	}

	return helper.JsonCreated(c, "checkout created", dto.CheckoutResponse{
		OrderID:     orderID,
		SnapToken:   token,
		RedirectURL: redirectURL,
		AmountIDR:   inv.InvoiceRemainingAmountIDR,
		ClientKey:   configs.MidtransClientKey,
	})
}

// POST /api/payments/midtrans/webhook
//
// Unauthenticated by design; trust comes from the signature check.
// Always answers 200 once the event is archived so the gateway stops
// retrying; a duplicate settlement bounces off the recorder's
// remaining-balance check without touching any row.
func (ctl *MidtransController) Webhook(c *fiber.Ctx) error {
	var body dto.MidtransNotificationDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notification body")
	}
	if body.OrderID == "" || body.SignatureKey == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "incomplete notification")
	}

	if !service.VerifySignature(body.OrderID, body.StatusCode, body.GrossAmount, body.SignatureKey) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
	}

	invoiceID, parseErr := service.ParseOrderID(body.OrderID)

	event := model.PaymentGatewayEvent{
		PaymentGatewayEventOrderID: body.OrderID,
		PaymentGatewayEventStatus:  body.TransactionStatus,
		PaymentGatewayEventPayload: datatypes.JSON(c.Body()),
	}
	if parseErr == nil {
		event.PaymentGatewayEventInvoiceID = &invoiceID
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&event).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to archive gateway event")
	}

	if parseErr != nil {
		log.Printf("[midtrans] unroutable order_id %q", body.OrderID)
		return helper.JsonOK(c, "event archived", nil)
	}

	switch service.MapMidtransStatus(body.TransactionStatus, body.FraudStatus) {
	case service.GatewayOutcomeSettle:
		var inv invoiceModel.Invoice
		if err := ctl.DB.WithContext(c.Context()).
			Where("invoice_id = ?", invoiceID).
			First(&inv).Error; err != nil {
			log.Printf("[midtrans] settlement for unknown invoice %s", invoiceID)
			return helper.JsonOK(c, "event archived", nil)
		}
		if inv.InvoiceRemainingAmountIDR <= 0 {
			// retry of an already-applied settlement
			return helper.JsonOK(c, "already settled", nil)
		}

		ref := body.TransactionID
		_, err := service.RecordPayment(c.Context(), ctl.DB, inv.InvoiceCenterID, service.RecordPaymentInput{
			InvoiceID:       &inv.InvoiceID,
			AmountIDR:       inv.InvoiceRemainingAmountIDR,
			Method:          model.PaymentMethodGateway,
			ReferenceNumber: &ref,
		})
		if err != nil {
			log.Printf("[midtrans] settlement apply failed for invoice %s: %v", invoiceID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to apply settlement")
		}
		return helper.JsonOK(c, "settlement applied", nil)

	case service.GatewayOutcomeFailed:
		return helper.JsonOK(c, "event archived", nil)

	default:
		return helper.JsonOK(c, "event archived", nil)
	}
}
