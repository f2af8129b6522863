// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/finance/payments/dto"
	model "bimbelku_backend/internals/features/finance/payments/model"
	service "bimbelku_backend/internals/features/finance/payments/service"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// POST /api/a/payments
//
// The only write path for manual payments. All balance math happens in
// the recorder service under a row lock; the controller just maps the
// request and the response.
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cc, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceWriters...)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.PaymentCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	method := model.PaymentMethod(strings.ToLower(strings.TrimSpace(body.Method)))
	if !model.ValidPaymentMethod(method) {
		return helper.JsonError(c, fiber.StatusBadRequest, "unknown payment method")
	}

	in := service.RecordPaymentInput{
		InvoiceID:        body.InvoiceID,
		AmountIDR:        body.AmountIDR,
		Method:           method,
		ReferenceNumber:  body.ReferenceNumber,
		Notes:            body.Notes,
		RecordedByUserID: &cc.UserID,
	}
	if body.PaymentDate != nil {
		in.PaymentDate = *body.PaymentDate
	}
	for _, a := range body.Allocations {
		in.Allocations = append(in.Allocations, service.AllocationInput{
			InvoiceID: a.InvoiceID,
			AmountIDR: a.AmountIDR,
		})
	}

	res, err := service.RecordPayment(c.Context(), ctl.DB, centerID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	invoices := make([]fiber.Map, 0, len(res.Invoices))
	for _, inv := range res.Invoices {
		invoices = append(invoices, fiber.Map{
			"invoice_id":                   inv.InvoiceID,
			"invoice_status":               inv.InvoiceStatus,
			"invoice_paid_amount_idr":      inv.InvoicePaidAmountIDR,
			"invoice_remaining_amount_idr": inv.InvoiceRemainingAmountIDR,
		})
	}
	return helper.JsonCreated(c, "payment recorded", fiber.Map{
		"payment":  dto.ToPaymentResponse(res.Payment),
		"invoices": invoices,
	})
}

// GET /api/a/payments
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.Payment{}).
		Where("payment_center_id = ?", centerID)
	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("payment_student_id = ?", studentID)
	}
	if m := strings.ToLower(strings.TrimSpace(c.Query("method"))); m != "" {
		q = q.Where("payment_method = ?", m)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count payments")
	}

	var rows []model.Payment
	if err := q.
		Preload("PaymentAllocations").
		Order("payment_date DESC, payment_number DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list payments")
	}

	out := make([]dto.PaymentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToPaymentResponse(r))
	}
	return helper.JsonList(c, "payments", out, helper.BuildPagination(p, total, len(out)))
}

// GET /api/a/payments/:id
func (ctl *PaymentController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	var payment model.Payment
	if err := ctl.DB.WithContext(c.Context()).
		Preload("PaymentAllocations").
		Where("payment_id = ? AND payment_center_id = ?", id, centerID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load payment")
	}
	return helper.JsonOK(c, "payment", dto.ToPaymentResponse(payment))
}
