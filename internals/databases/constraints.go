package database

import "gorm.io/gorm"

// ApplySchemaConstraints installs the two invariants that gorm struct
// tags cannot express:
//
//   - uniq_active_assignment: at most one ACTIVE assignment per
//     (student, fee heading, academic year). Supersede writes a new
//     row instead of mutating, so only a partial index can hold this.
//   - chk_ledger_debit_xor_credit: every ledger entry moves exactly
//     one side, never both and never neither.
//
// Each statement is guarded on its table so the function is safe to run
// against any subset of the schema. Idempotent; runs at every boot.
func ApplySchemaConstraints(db *gorm.DB) error {
	return db.Exec(`
DO $$
BEGIN
  IF to_regclass('student_fee_assignments') IS NOT NULL THEN
    CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_assignment
      ON student_fee_assignments (
        student_fee_assignment_student_id,
        student_fee_assignment_fee_heading_id,
        student_fee_assignment_academic_year
      )
      WHERE student_fee_assignment_is_active
        AND student_fee_assignment_deleted_at IS NULL;
  END IF;

  IF to_regclass('ledger_entries') IS NOT NULL THEN
    ALTER TABLE ledger_entries
      DROP CONSTRAINT IF EXISTS chk_ledger_debit_xor_credit;
    ALTER TABLE ledger_entries
      ADD CONSTRAINT chk_ledger_debit_xor_credit
      CHECK ((ledger_entry_debit_idr = 0) <> (ledger_entry_credit_idr = 0));
  END IF;
END
$$;
`).Error
}
