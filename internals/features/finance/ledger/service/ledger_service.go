// file: internals/features/finance/ledger/service/ledger_service.go
package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "bimbelku_backend/internals/features/finance/ledger/model"
)

// Account codes used by the journal. The chart of accounts is fixed:
// one cash account per center covers the whole cash book.
const (
	AccountCodeCash = "1000"
	AccountNameCash = "Cash"
)

// AppendInput describes one journal line. Exactly one of DebitIDR /
// CreditIDR must be non-zero.
type AppendInput struct {
	Type            model.LedgerEntryType
	DebitIDR        int64
	CreditIDR       int64
	ReferenceType   string
	ReferenceID     uuid.UUID
	TransactionDate time.Time
}

// AppendEntry writes one ledger row inside the caller's transaction.
//
// The center row is locked first so concurrent writers serialize and
// the running balance is computed against the true last entry. The
// caller's tx is the atomicity boundary: if anything after this fails,
// the entry rolls back with it.
func AppendEntry(ctx context.Context, tx *gorm.DB, centerID uuid.UUID, in AppendInput) (*model.LedgerEntry, error) {
	if (in.DebitIDR == 0) == (in.CreditIDR == 0) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "ledger entry requires debit xor credit")
	}
	if in.DebitIDR < 0 || in.CreditIDR < 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "ledger amounts must be positive")
	}

	// Serialize per-center appends on the tenant row.
	var lockedID uuid.UUID
	if err := tx.WithContext(ctx).
		Table("centers").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("center_id").
		Where("center_id = ? AND center_deleted_at IS NULL", centerID).
		Take(&lockedID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "center not found")
		}
		return nil, err
	}

	var lastBalance int64
	if err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(
			(SELECT ledger_entry_running_balance_idr
			   FROM ledger_entries
			  WHERE ledger_entry_center_id = ?
			  ORDER BY ledger_entry_created_at DESC, ledger_entry_id DESC
			  LIMIT 1), 0)
	`, centerID).Scan(&lastBalance).Error; err != nil {
		return nil, err
	}

	when := in.TransactionDate
	if when.IsZero() {
		when = time.Now()
	}

	entry := model.LedgerEntry{
		LedgerEntryCenterID:          centerID,
		LedgerEntryAccountCode:       AccountCodeCash,
		LedgerEntryAccountName:       AccountNameCash,
		LedgerEntryType:              in.Type,
		LedgerEntryDebitIDR:          in.DebitIDR,
		LedgerEntryCreditIDR:         in.CreditIDR,
		LedgerEntryReferenceType:     in.ReferenceType,
		LedgerEntryReferenceID:       in.ReferenceID,
		LedgerEntryRunningBalanceIDR: lastBalance + in.CreditIDR - in.DebitIDR,
		LedgerEntryTransactionDate:   when,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
