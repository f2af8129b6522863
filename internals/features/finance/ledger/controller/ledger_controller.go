// file: internals/features/finance/ledger/controller/ledger_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/finance/ledger/dto"
	model "bimbelku_backend/internals/features/finance/ledger/model"
	service "bimbelku_backend/internals/features/finance/ledger/service"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type LedgerController struct {
	DB *gorm.DB
}

func NewLedgerController(db *gorm.DB) *LedgerController {
	return &LedgerController{DB: db}
}

// POST /api/a/expenses
func (ctl *LedgerController) CreateExpense(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	cc, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceWriters...)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.ExpenseCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	in := service.RecordExpenseInput{
		Category:         body.ExpenseCategory,
		Description:      body.ExpenseDescription,
		AmountIDR:        body.ExpenseAmountIDR,
		RecordedByUserID: &cc.UserID,
	}
	if body.ExpenseDate != nil {
		in.ExpenseDate = *body.ExpenseDate
	}

	expense, err := service.RecordExpense(c.Context(), ctl.DB, centerID, in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "expense recorded", dto.ToExpenseResponse(*expense))
}

// GET /api/a/expenses
func (ctl *LedgerController) ListExpenses(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.Expense{}).
		Where("expense_center_id = ?", centerID)
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("expense_category = ?", cat)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("expense_date >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("expense_date <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count expenses")
	}

	var rows []model.Expense
	if err := q.
		Order("expense_date DESC, expense_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list expenses")
	}

	out := make([]dto.ExpenseResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToExpenseResponse(r))
	}
	return helper.JsonList(c, "expenses", out, helper.BuildPagination(p, total, len(out)))
}

// GET /api/a/ledger
//
// The append-only cash book, newest first. Filters: type, from, to
// (transaction date, inclusive).
func (ctl *LedgerController) ListEntries(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.LedgerEntry{}).
		Where("ledger_entry_center_id = ?", centerID)
	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("ledger_entry_type = ?", t)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q = q.Where("ledger_entry_transaction_date >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q = q.Where("ledger_entry_transaction_date < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count ledger entries")
	}

	var rows []model.LedgerEntry
	if err := q.
		Order("ledger_entry_created_at DESC, ledger_entry_id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list ledger entries")
	}

	out := make([]dto.LedgerEntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToLedgerEntryResponse(r))
	}
	return helper.JsonList(c, "ledger entries", out, helper.BuildPagination(p, total, len(out)))
}
