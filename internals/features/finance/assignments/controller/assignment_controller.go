// file: internals/features/finance/assignments/controller/assignment_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bimbelku_backend/internals/constants"
	dto "bimbelku_backend/internals/features/finance/assignments/dto"
	model "bimbelku_backend/internals/features/finance/assignments/model"
	service "bimbelku_backend/internals/features/finance/assignments/service"
	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"
)

type AssignmentController struct {
	DB *gorm.DB
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

// POST /api/a/fee-structures/:id/apply
//
// Enrolls students into a fee structure. Assignments are superseded,
// never mutated: any prior ACTIVE row for the same
// (student, heading, academic year) is deactivated and a fresh row is
// inserted, all in one transaction. The partial unique index on active
// rows backstops concurrent applies.
func (ctl *AssignmentController) ApplyStructure(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceWriters...); err != nil {
		return helper.FromFiberError(c, err)
	}

	structureID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid fee structure id")
	}

	var body dto.ApplyStructureDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if fe := helper.ValidateStruct(body); fe != nil {
		return helper.JsonValidationError(c, fe)
	}

	res, err := service.ApplyStructure(c.Context(), ctl.DB, centerID, service.ApplyStructureInput{
		StructureID: structureID,
		StudentIDs:  body.StudentIDs,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "fee structure applied", dto.ApplyStructureResponse{
		AssignmentsCreated:    res.Created,
		AssignmentsSuperseded: res.Superseded,
	})
}

// GET /api/a/students/:id/assignments
func (ctl *AssignmentController) ListByStudent(c *fiber.Ctx) error {
	centerID, err := helperAuth.TargetCenterID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := helperAuth.EnsureCenterRole(c, centerID, constants.FinanceReaders...); err != nil {
		return helper.FromFiberError(c, err)
	}

	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("student_fee_assignment_center_id = ? AND student_fee_assignment_student_id = ?", centerID, studentID)
	if c.Query("active", "true") == "true" {
		q = q.Where("student_fee_assignment_is_active")
	}
	if y := strings.TrimSpace(c.Query("academic_year")); y != "" {
		q = q.Where("student_fee_assignment_academic_year = ?", y)
	}

	var rows []model.StudentFeeAssignment
	if err := q.Order("student_fee_assignment_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list assignments")
	}

	out := make([]dto.AssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToAssignmentResponse(r))
	}
	return helper.JsonOK(c, "assignments", out)
}
