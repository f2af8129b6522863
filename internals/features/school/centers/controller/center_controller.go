// file: internals/features/school/centers/controller/center_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "bimbelku_backend/internals/features/school/centers/dto"
	model "bimbelku_backend/internals/features/school/centers/model"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

// CenterController is owner-only: centers are the tenant roots and
// only the platform owner provisions them.
type CenterController struct {
	DB *gorm.DB
}

func NewCenterController(db *gorm.DB) *CenterController {
	return &CenterController{DB: db}
}

// POST /api/o/centers
func (ctl *CenterController) Create(c *fiber.Ctx) error {
	cc, err := helperAuth.ResolveCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !cc.IsOwner() {
		return helper.JsonError(c, fiber.StatusForbidden, "only the owner may manage centers")
	}

	var body dto.CenterCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	center := model.Center{
		CenterName:     strings.TrimSpace(body.CenterName),
		CenterSlug:     strings.ToLower(strings.TrimSpace(body.CenterSlug)),
		CenterIsActive: true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&center).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return helper.JsonError(c, fiber.StatusConflict, "center slug already taken")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create center")
	}
	return helper.JsonCreated(c, "center created", dto.ToCenterResponse(center))
}

// GET /api/o/centers
func (ctl *CenterController) List(c *fiber.Ctx) error {
	cc, err := helperAuth.ResolveCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !cc.IsOwner() {
		return helper.JsonError(c, fiber.StatusForbidden, "only the owner may manage centers")
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.Center{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count centers")
	}

	var rows []model.Center
	if err := q.
		Order("center_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list centers")
	}

	out := make([]dto.CenterResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToCenterResponse(r))
	}
	return helper.JsonList(c, "centers", out, helper.BuildPagination(p, total, len(out)))
}

// PUT /api/o/centers/:id
func (ctl *CenterController) Update(c *fiber.Ctx) error {
	cc, err := helperAuth.ResolveCaller(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !cc.IsOwner() {
		return helper.JsonError(c, fiber.StatusForbidden, "only the owner may manage centers")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid center id")
	}

	var body dto.CenterUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	var center model.Center
	if err := ctl.DB.WithContext(c.Context()).
		Where("center_id = ?", id).
		First(&center).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load center")
	}

	if body.CenterName != nil {
		center.CenterName = strings.TrimSpace(*body.CenterName)
	}
	if body.CenterIsActive != nil {
		center.CenterIsActive = *body.CenterIsActive
	}
	if err := ctl.DB.WithContext(c.Context()).Save(&center).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update center")
	}
	return helper.JsonUpdated(c, "center updated", dto.ToCenterResponse(center))
}
