// file: internals/features/finance/assignments/service/apply_structure_test.go
package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "bimbelku_backend/internals/databases"
	model "bimbelku_backend/internals/features/finance/assignments/model"
	catalogModel "bimbelku_backend/internals/features/finance/fee_catalog/model"
	centerModel "bimbelku_backend/internals/features/school/centers/model"
	studentModel "bimbelku_backend/internals/features/school/students/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping DB test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&centerModel.Center{},
		&studentModel.Student{},
		&catalogModel.FeeHeading{},
		&catalogModel.FeeStructure{},
		&catalogModel.FeeStructureItem{},
		&model.StudentFeeAssignment{},
	))
	require.NoError(t, database.ApplySchemaConstraints(db))
	return db
}

type applyFixture struct {
	centerID    uuid.UUID
	structureID uuid.UUID
	studentIDs  []uuid.UUID
}

// seedStructure builds a center with n active students and a grade-10
// structure carrying two items (tuition 500k + books 100k) for
// 2025/2026.
func seedStructure(t *testing.T, db *gorm.DB, n int) applyFixture {
	t.Helper()

	center := centerModel.Center{
		CenterName: "Apply Center " + uuid.NewString()[:8],
		CenterSlug: "apply-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&center).Error)

	headings := []catalogModel.FeeHeading{
		{FeeHeadingCenterID: center.CenterID, FeeHeadingName: "Tuition", FeeHeadingCode: "SPP-" + uuid.NewString()[:4], FeeHeadingIsActive: true},
		{FeeHeadingCenterID: center.CenterID, FeeHeadingName: "Books", FeeHeadingCode: "BUK-" + uuid.NewString()[:4], FeeHeadingIsActive: true},
	}
	require.NoError(t, db.Create(&headings).Error)

	structure := catalogModel.FeeStructure{
		FeeStructureCenterID:     center.CenterID,
		FeeStructureGrade:        "10-" + uuid.NewString()[:4],
		FeeStructureAcademicYear: "2025/2026",
	}
	require.NoError(t, db.Create(&structure).Error)
	require.NoError(t, db.Create(&[]catalogModel.FeeStructureItem{
		{FeeStructureItemStructureID: structure.FeeStructureID, FeeStructureItemFeeHeadingID: headings[0].FeeHeadingID, FeeStructureItemAmountIDR: 500_000},
		{FeeStructureItemStructureID: structure.FeeStructureID, FeeStructureItemFeeHeadingID: headings[1].FeeHeadingID, FeeStructureItemAmountIDR: 100_000},
	}).Error)

	fx := applyFixture{centerID: center.CenterID, structureID: structure.FeeStructureID}
	for i := 0; i < n; i++ {
		student := studentModel.Student{
			StudentCenterID:      center.CenterID,
			StudentName:          "Student",
			StudentGrade:         "10",
			StudentContactNumber: "08" + uuid.NewString()[:10],
			StudentIsActive:      true,
		}
		require.NoError(t, db.Create(&student).Error)
		fx.studentIDs = append(fx.studentIDs, student.StudentID)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM student_fee_assignments WHERE student_fee_assignment_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM fee_structure_items WHERE fee_structure_item_structure_id = ?", structure.FeeStructureID)
		db.Exec("DELETE FROM fee_structures WHERE fee_structure_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM fee_headings WHERE fee_heading_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM students WHERE student_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM centers WHERE center_id = ?", center.CenterID)
	})
	return fx
}

// maxActivePerKey returns the largest number of ACTIVE rows sharing one
// (student, heading, academic year) key within the center. Anything
// above 1 breaks the assignment invariant.
func maxActivePerKey(t *testing.T, db *gorm.DB, centerID uuid.UUID) int {
	t.Helper()
	var n int
	require.NoError(t, db.Raw(`
		SELECT COALESCE(MAX(cnt), 0) FROM (
			SELECT COUNT(*) AS cnt
			FROM student_fee_assignments
			WHERE student_fee_assignment_center_id = ?
			  AND student_fee_assignment_is_active
			  AND student_fee_assignment_deleted_at IS NULL
			GROUP BY student_fee_assignment_student_id,
			         student_fee_assignment_fee_heading_id,
			         student_fee_assignment_academic_year
		) g`, centerID).Scan(&n).Error)
	return n
}

func TestApplyStructure_CreatesActiveAssignments(t *testing.T) {
	db := openTestDB(t)
	fx := seedStructure(t, db, 2)

	res, err := ApplyStructure(context.Background(), db, fx.centerID, ApplyStructureInput{
		StructureID: fx.structureID,
		StudentIDs:  fx.studentIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 0, res.Superseded)

	var rows []model.StudentFeeAssignment
	require.NoError(t, db.
		Where("student_fee_assignment_center_id = ? AND student_fee_assignment_is_active", fx.centerID).
		Find(&rows).Error)
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, fx.structureID, r.StudentFeeAssignmentStructureID)
		assert.Equal(t, "2025/2026", r.StudentFeeAssignmentAcademicYear)
	}
}

// Re-applying deactivates the prior rows and inserts fresh ones; the
// old rows stay behind as history.
func TestApplyStructure_SupersedesPriorActive(t *testing.T) {
	db := openTestDB(t)
	fx := seedStructure(t, db, 2)

	in := ApplyStructureInput{StructureID: fx.structureID, StudentIDs: fx.studentIDs}

	first, err := ApplyStructure(context.Background(), db, fx.centerID, in)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Created)

	second, err := ApplyStructure(context.Background(), db, fx.centerID, in)
	require.NoError(t, err)
	assert.Equal(t, 4, second.Created)
	assert.Equal(t, 4, second.Superseded)

	var total, active int64
	require.NoError(t, db.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_center_id = ?", fx.centerID).
		Count(&total).Error)
	require.NoError(t, db.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_center_id = ? AND student_fee_assignment_is_active", fx.centerID).
		Count(&active).Error)
	assert.EqualValues(t, 8, total, "superseded rows are kept, not mutated away")
	assert.EqualValues(t, 4, active)
	assert.Equal(t, 1, maxActivePerKey(t, db, fx.centerID))
}

func TestApplyStructure_UnknownStructure(t *testing.T) {
	db := openTestDB(t)
	fx := seedStructure(t, db, 1)

	_, err := ApplyStructure(context.Background(), db, fx.centerID, ApplyStructureInput{
		StructureID: uuid.New(),
		StudentIDs:  fx.studentIDs,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestApplyStructure_InactiveStudentRejected(t *testing.T) {
	db := openTestDB(t)
	fx := seedStructure(t, db, 2)

	require.NoError(t, db.Model(&studentModel.Student{}).
		Where("student_id = ?", fx.studentIDs[1]).
		Update("student_is_active", false).Error)

	_, err := ApplyStructure(context.Background(), db, fx.centerID, ApplyStructureInput{
		StructureID: fx.structureID,
		StudentIDs:  fx.studentIDs,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	var count int64
	require.NoError(t, db.Model(&model.StudentFeeAssignment{}).
		Where("student_fee_assignment_center_id = ?", fx.centerID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count, "rejected applies must write nothing")
}

// Two racing applies for the same students: uniq_active_assignment lets
// at most one of them commit fresh active rows; the loser surfaces as a
// 409.
func TestApplyStructure_ConcurrentAppliesKeepOneActive(t *testing.T) {
	db := openTestDB(t)
	fx := seedStructure(t, db, 1)

	in := ApplyStructureInput{StructureID: fx.structureID, StudentIDs: fx.studentIDs}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ApplyStructure(context.Background(), db, fx.centerID, in)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		failures++
		fe, ok := err.(*fiber.Error)
		require.True(t, ok, "unexpected error: %v", err)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	}
	assert.LessOrEqual(t, failures, 1, "at least one apply must win")
	assert.Equal(t, 1, maxActivePerKey(t, db, fx.centerID))
}
