// file: internals/features/finance/fee_catalog/controller/fee_structure_controller.go
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

type FeeStructureController struct {
	DB *gorm.DB
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db}
}

// POST /api/a/fee-structures
//
// Creates the structure together with its items in one transaction so a
// half-written bundle can never be applied to students.
func (ctl *FeeStructureController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.FeeStructureCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	structure := model.FeeStructure{
		FeeStructureCenterID:      centerID,
		FeeStructureGrade:         strings.TrimSpace(body.FeeStructureGrade),
		FeeStructureAcademicYear:  strings.TrimSpace(body.FeeStructureAcademicYear),
		FeeStructureEffectiveFrom: body.FeeStructureEffectiveFrom,
		FeeStructureEffectiveTo:   body.FeeStructureEffectiveTo,
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		// headings must belong to the same center and be active
		headingIDs := make([]uuid.UUID, 0, len(body.FeeStructureItems))
		for _, it := range body.FeeStructureItems {
			headingIDs = append(headingIDs, it.FeeHeadingID)
		}
		var known int64
		if err := tx.Model(&model.FeeHeading{}).
			Where("fee_heading_id IN ? AND fee_heading_center_id = ? AND fee_heading_is_active", headingIDs, centerID).
			Count(&known).Error; err != nil {
			return err
		}
		if int(known) != len(headingIDs) {
			return fiber.NewError(fiber.StatusBadRequest, "one or more fee headings are unknown or inactive")
		}

		if err := tx.Create(&structure).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "a fee structure for this grade and academic year already exists")
			}
			return err
		}

		items := make([]model.FeeStructureItem, 0, len(body.FeeStructureItems))
		for _, it := range body.FeeStructureItems {
			items = append(items, model.FeeStructureItem{
				FeeStructureItemStructureID:  structure.FeeStructureID,
				FeeStructureItemFeeHeadingID: it.FeeHeadingID,
				FeeStructureItemAmountIDR:    it.AmountIDR,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "duplicate fee heading in items")
			}
			return err
		}
		structure.FeeStructureItems = items
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "fee structure created", dto.ToFeeStructureResponse(structure))
}

// GET /api/a/fee-structures
func (ctl *FeeStructureController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.FeeStructure{}).
		Where("fee_structure_center_id = ?", centerID)
	if y := strings.TrimSpace(c.Query("academic_year")); y != "" {
		q = q.Where("fee_structure_academic_year = ?", y)
	}
	if g := strings.TrimSpace(c.Query("grade")); g != "" {
		q = q.Where("fee_structure_grade = ?", g)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count fee structures")
	}

	var rows []model.FeeStructure
	if err := q.
		Preload("FeeStructureItems").
		Order("fee_structure_academic_year DESC, fee_structure_grade ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list fee structures")
	}

	out := make([]dto.FeeStructureResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeStructureResponse(r))
	}
	return helper.JsonList(c, "fee structures", out, helper.BuildPagination(p, total, len(out)))
}

// GET /api/a/fee-structures/:id
func (ctl *FeeStructureController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee structure id")
	}

	var structure model.FeeStructure
	if err := ctl.DB.WithContext(c.Context()).
		Preload("FeeStructureItems").
		Where("fee_structure_id = ? AND fee_structure_center_id = ?", id, centerID).
		First(&structure).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load fee structure")
	}
	return helper.JsonOK(c, "fee structure", dto.ToFeeStructureResponse(structure))
}

// DELETE /api/a/fee-structures/:id (soft delete, items included;
// existing assignments keep their copied amounts)
func (ctl *FeeStructureController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.AdminAndAbove...); err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee structure id")
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("fee_structure_id = ? AND fee_structure_center_id = ?", id, centerID).
			Delete(&model.FeeStructure{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "fee structure not found")
		}
		return tx.
			Where("fee_structure_item_structure_id = ?", id).
			Delete(&model.FeeStructureItem{}).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "fee structure deleted", fiber.Map{"fee_structure_id": id})
}
