// file: internals/features/finance/invoices/controller/invoice_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/finance/invoices/dto"
	model "bimbelku_backend/internals/features/finance/invoices/model"
	service "bimbelku_backend/internals/features/finance/invoices/service"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type InvoiceController struct {
	DB *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

// POST /api/a/invoices/generate
//
// Runs the monthly billing batch for the caller's center. Safe to
// retry: a re-run reports every already-billed student as skipped.
func (ctl *InvoiceController) Generate(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceWriters...); err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.GenerateInvoicesDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	res, err := service.GenerateInvoices(c.Context(), ctl.DB, centerID, service.GenerateInput{
		AcademicYear:     body.AcademicYear,
		Month:            body.Month,
		Year:             body.Year,
		DueInDays:        body.DueInDays,
		LateFeePerDayIDR: body.LateFeePerDayIDR,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "invoice generation finished", res)
}

// GET /api/a/invoices
func (ctl *InvoiceController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.Invoice{}).
		Where("invoice_center_id = ?", centerID)

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("invoice_status = ?", s)
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		q = q.Where("invoice_month = ?", m)
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		q = q.Where("invoice_year = ?", y)
	}
	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("invoice_student_id = ?", studentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count invoices")
	}

	var rows []model.Invoice
	if err := q.
		Order("invoice_year DESC, invoice_month DESC, invoice_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list invoices")
	}

	out := make([]dto.InvoiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToInvoiceResponse(r))
	}
	return helper.JsonList(c, "invoices", out, helper.BuildPagination(p, total, len(out)))
}

// GET /api/a/invoices/outstanding
//
// Per-student open balances, heaviest debtors first. Purely derived
// from invoice rows so it can never disagree with them.
func (ctl *InvoiceController) Outstanding(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := service.ListOutstanding(c.Context(), ctl.DB, centerID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "outstanding balances", rows)
}

// GET /api/a/invoices/:id
func (ctl *InvoiceController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoice id")
	}

	var inv model.Invoice
	if err := ctl.DB.WithContext(c.Context()).
		Preload("InvoiceItems").
		Where("invoice_id = ? AND invoice_center_id = ?", id, centerID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load invoice")
	}
	return helper.JsonOK(c, "invoice", dto.ToInvoiceResponse(inv))
}
