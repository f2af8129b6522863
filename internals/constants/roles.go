package constants

import "fmt"

// Role slugs as stored in users.user_roles and carried in JWT claims.
const (
	RoleOwner     = "owner" // platform owner, cross-center
	RoleAdmin     = "admin" // center administrator
	RoleStaff     = "staff" // center front-desk / finance staff
	RoleTeacher   = "teacher"
	RoleParent    = "parent"
	RolePrincipal = "principal" // read-mostly oversight role
	RoleVendor    = "vendor"
)

// Error message templates for role guards.
const (
	ErrOnlyStaffCanAccess  = "only staff, admin, or owner may access %s."
	ErrOnlyAdminsCanAccess = "only admin or owner may access %s."
	ErrOnlyOwnersCanAccess = "only the owner may access %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleStaff,
		RoleTeacher,
		RoleParent,
		RolePrincipal,
		RoleVendor,
	}

	// FinanceWriters may record payments/expenses and generate invoices.
	FinanceWriters = []string{
		RoleOwner,
		RoleAdmin,
		RoleStaff,
	}

	// FinanceReaders may view ledgers, invoices and outstanding balances.
	FinanceReaders = []string{
		RoleOwner,
		RoleAdmin,
		RoleStaff,
		RolePrincipal,
	}

	AdminAndAbove = []string{
		RoleOwner,
		RoleAdmin,
	}
)
