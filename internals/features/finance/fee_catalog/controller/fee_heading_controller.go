// file: internals/features/finance/fee_catalog/controller/fee_heading_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/finance/fee_catalog/dto"
	model "bimbelku_backend/internals/features/finance/fee_catalog/model"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type FeeHeadingController struct {
	DB *gorm.DB
}

func NewFeeHeadingController(db *gorm.DB) *FeeHeadingController {
	return &FeeHeadingController{DB: db}
}

// POST /api/a/fee-headings
func (ctl *FeeHeadingController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.FeeHeadingCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	heading := model.FeeHeading{
		FeeHeadingCenterID:  centerID,
		FeeHeadingName:      strings.TrimSpace(body.FeeHeadingName),
		FeeHeadingCode:      strings.ToUpper(strings.TrimSpace(body.FeeHeadingCode)),
		FeeHeadingIsActive:  true,
		FeeHeadingSortOrder: body.FeeHeadingSortOrder,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&heading).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee heading code already exists in this center")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create fee heading")
	}
	return helper.JsonCreated(c, "fee heading created", dto.ToFeeHeadingResponse(heading))
}

// GET /api/a/fee-headings
func (ctl *FeeHeadingController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.FeeHeading{}).
		Where("fee_heading_center_id = ?", centerID)
	if c.Query("active") == "true" {
		q = q.Where("fee_heading_is_active")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count fee headings")
	}

	var rows []model.FeeHeading
	if err := q.
		Order("fee_heading_sort_order ASC, fee_heading_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list fee headings")
	}

	out := make([]dto.FeeHeadingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeHeadingResponse(r))
	}
	return helper.JsonList(c, "fee headings", out, helper.BuildPagination(p, total, len(out)))
}

// PUT /api/a/fee-headings/:id
func (ctl *FeeHeadingController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee heading id")
	}

	var body dto.FeeHeadingUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	var heading model.FeeHeading
	if err := ctl.DB.WithContext(c.Context()).
		Where("fee_heading_id = ? AND fee_heading_center_id = ?", id, centerID).
		First(&heading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee heading not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load fee heading")
	}

	dto.ApplyFeeHeadingUpdate(&heading, body)
	if err := ctl.DB.WithContext(c.Context()).Save(&heading).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update fee heading")
	}
	return helper.JsonUpdated(c, "fee heading updated", dto.ToFeeHeadingResponse(heading))
}

// DELETE /api/a/fee-headings/:id (soft delete)
func (ctl *FeeHeadingController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee heading id")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("fee_heading_id = ? AND fee_heading_center_id = ?", id, centerID).
		Delete(&model.FeeHeading{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete fee heading")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "fee heading not found")
	}
	return helper.JsonDeleted(c, "fee heading deleted", fiber.Map{"fee_heading_id": id})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key value") || strings.Contains(s, "SQLSTATE 23505")
}
