// file: internals/features/finance/invoices/service/invoice_generator_test.go
package service

import (
	"context"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "bimbelku_backend/internals/databases"
	assignmentModel "bimbelku_backend/internals/features/finance/assignments/model"
	catalogModel "bimbelku_backend/internals/features/finance/fee_catalog/model"
	model "bimbelku_backend/internals/features/finance/invoices/model"
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
		&assignmentModel.StudentFeeAssignment{},
		&model.Invoice{},
		&model.InvoiceItem{},
	))
	require.NoError(t, database.ApplySchemaConstraints(db))
	return db
}

type generatorFixture struct {
	centerID   uuid.UUID
	studentIDs []uuid.UUID
}

// seedCohort builds a center with n active students, each assigned the
// same two fee headings (tuition 500k + books 100k) for 2025/2026.
func seedCohort(t *testing.T, db *gorm.DB, n int) generatorFixture {
	t.Helper()

	center := centerModel.Center{
		CenterName: "Gen Center " + uuid.NewString()[:8],
		CenterSlug: "gen-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&center).Error)

	headings := []catalogModel.FeeHeading{
		{FeeHeadingCenterID: center.CenterID, FeeHeadingName: "Tuition", FeeHeadingCode: "SPP-" + uuid.NewString()[:4], FeeHeadingIsActive: true},
		{FeeHeadingCenterID: center.CenterID, FeeHeadingName: "Books", FeeHeadingCode: "BUK-" + uuid.NewString()[:4], FeeHeadingIsActive: true},
	}
	require.NoError(t, db.Create(&headings).Error)
	amounts := map[int]int64{0: 500_000, 1: 100_000}

	fx := generatorFixture{centerID: center.CenterID}
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

		for hi, h := range headings {
			require.NoError(t, db.Create(&assignmentModel.StudentFeeAssignment{
				StudentFeeAssignmentCenterID:     center.CenterID,
				StudentFeeAssignmentStudentID:    student.StudentID,
				StudentFeeAssignmentFeeHeadingID: h.FeeHeadingID,
				StudentFeeAssignmentStructureID:  uuid.New(),
				StudentFeeAssignmentAcademicYear: "2025/2026",
				StudentFeeAssignmentAmountIDR:    amounts[hi],
				StudentFeeAssignmentIsActive:     true,
			}).Error)
		}
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM invoice_items WHERE invoice_item_invoice_id IN (SELECT invoice_id FROM invoices WHERE invoice_center_id = ?)", center.CenterID)
		db.Exec("DELETE FROM invoices WHERE invoice_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM student_fee_assignments WHERE student_fee_assignment_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM fee_headings WHERE fee_heading_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM students WHERE student_center_id = ?", center.CenterID)
		db.Exec("DELETE FROM centers WHERE center_id = ?", center.CenterID)
	})
	return fx
}

func TestGenerateInvoices_CreatesOnePerStudent(t *testing.T) {
	db := openTestDB(t)
	fx := seedCohort(t, db, 3)

	res, err := GenerateInvoices(context.Background(), db, fx.centerID, GenerateInput{
		AcademicYear: "2025/2026",
		Month:        3,
		Year:         2026,
		DueInDays:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 3, res.Students)

	var invoices []model.Invoice
	require.NoError(t, db.
		Preload("InvoiceItems").
		Where("invoice_center_id = ?", fx.centerID).
		Find(&invoices).Error)
	require.Len(t, invoices, 3)
	for _, inv := range invoices {
		assert.EqualValues(t, 600_000, inv.InvoiceTotalAmountIDR)
		assert.EqualValues(t, 600_000, inv.InvoiceRemainingAmountIDR)
		assert.EqualValues(t, 0, inv.InvoicePaidAmountIDR)
		assert.Equal(t, model.InvoiceStatusPending, inv.InvoiceStatus)
		assert.Len(t, inv.InvoiceItems, 2)
	}
}

func TestGenerateInvoices_RerunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	fx := seedCohort(t, db, 2)

	in := GenerateInput{AcademicYear: "2025/2026", Month: 4, Year: 2026, DueInDays: 7}

	first, err := GenerateInvoices(context.Background(), db, fx.centerID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := GenerateInvoices(context.Background(), db, fx.centerID, in)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	var count int64
	require.NoError(t, db.Model(&model.Invoice{}).
		Where("invoice_center_id = ?", fx.centerID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count, "re-run must not add invoices")
}

func TestGenerateInvoices_SkipsInactiveAndUnassigned(t *testing.T) {
	db := openTestDB(t)
	fx := seedCohort(t, db, 2)

	// deactivate one student; they must drop out of the batch
	require.NoError(t, db.Model(&studentModel.Student{}).
		Where("student_id = ?", fx.studentIDs[0]).
		Update("student_is_active", false).Error)

	res, err := GenerateInvoices(context.Background(), db, fx.centerID, GenerateInput{
		AcademicYear: "2025/2026", Month: 5, Year: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Students)
}

func TestGenerateInvoices_ZeroTotalStudentNotBilled(t *testing.T) {
	db := openTestDB(t)
	fx := seedCohort(t, db, 1)

	// one more student whose only active assignment waives the fee
	heading := catalogModel.FeeHeading{
		FeeHeadingCenterID: fx.centerID,
		FeeHeadingName:     "Scholarship Tuition",
		FeeHeadingCode:     "BEA-" + uuid.NewString()[:4],
		FeeHeadingIsActive: true,
	}
	require.NoError(t, db.Create(&heading).Error)
	waived := studentModel.Student{
		StudentCenterID:      fx.centerID,
		StudentName:          "Waived Student",
		StudentGrade:         "10",
		StudentContactNumber: "08" + uuid.NewString()[:10],
		StudentIsActive:      true,
	}
	require.NoError(t, db.Create(&waived).Error)
	require.NoError(t, db.Create(&assignmentModel.StudentFeeAssignment{
		StudentFeeAssignmentCenterID:     fx.centerID,
		StudentFeeAssignmentStudentID:    waived.StudentID,
		StudentFeeAssignmentFeeHeadingID: heading.FeeHeadingID,
		StudentFeeAssignmentStructureID:  uuid.New(),
		StudentFeeAssignmentAcademicYear: "2025/2026",
		StudentFeeAssignmentAmountIDR:    0,
		StudentFeeAssignmentIsActive:     true,
	}).Error)

	res, err := GenerateInvoices(context.Background(), db, fx.centerID, GenerateInput{
		AcademicYear: "2025/2026", Month: 8, Year: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Students)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)

	// no zero invoice may exist: it could never reach paid
	var count int64
	require.NoError(t, db.Model(&model.Invoice{}).
		Where("invoice_center_id = ? AND invoice_student_id = ?", fx.centerID, waived.StudentID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGenerateInvoices_EmptyCohortIsValid(t *testing.T) {
	db := openTestDB(t)

	center := centerModel.Center{
		CenterName: "Empty Center",
		CenterSlug: "empty-" + uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&center).Error)
	t.Cleanup(func() { db.Exec("DELETE FROM centers WHERE center_id = ?", center.CenterID) })

	res, err := GenerateInvoices(context.Background(), db, center.CenterID, GenerateInput{
		AcademicYear: "2025/2026", Month: 6, Year: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 0, res.Students)
}

func TestGenerateInvoices_InputValidation(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name string
		in   GenerateInput
	}{
		{"month too low", GenerateInput{AcademicYear: "2025/2026", Month: 0, Year: 2026}},
		{"month too high", GenerateInput{AcademicYear: "2025/2026", Month: 13, Year: 2026}},
		{"year too low", GenerateInput{AcademicYear: "2025/2026", Month: 1, Year: 1999}},
		{"negative due days", GenerateInput{AcademicYear: "2025/2026", Month: 1, Year: 2026, DueInDays: -1}},
		{"missing academic year", GenerateInput{Month: 1, Year: 2026}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateInvoices(context.Background(), db, uuid.New(), tc.in)
			require.Error(t, err)
			fe, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}

func TestListOutstanding_AggregatesUnpaid(t *testing.T) {
	db := openTestDB(t)
	fx := seedCohort(t, db, 2)

	_, err := GenerateInvoices(context.Background(), db, fx.centerID, GenerateInput{
		AcademicYear: "2025/2026", Month: 7, Year: 2026,
	})
	require.NoError(t, err)

	rows, err := ListOutstanding(context.Background(), db, fx.centerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 1, r.OpenInvoices)
		assert.EqualValues(t, 600_000, r.OutstandingIDR)
	}

	// settle one student fully; they must disappear from the view
	require.NoError(t, db.Model(&model.Invoice{}).
		Where("invoice_center_id = ? AND invoice_student_id = ?", fx.centerID, rows[0].StudentID).
		Updates(map[string]any{
			"invoice_paid_amount_idr":      600_000,
			"invoice_remaining_amount_idr": 0,
			"invoice_status":               model.InvoiceStatusPaid,
		}).Error)

	after, err := ListOutstanding(context.Background(), db, fx.centerID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.NotEqual(t, rows[0].StudentID, after[0].StudentID)
}
