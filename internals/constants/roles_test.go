package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleErrorMessages(t *testing.T) {
	assert.Equal(t, "only staff, admin, or owner may access payments.", RoleErrorStaff("payments"))
	assert.Equal(t, "only admin or owner may access user management.", RoleErrorAdmin("user management"))
	assert.Equal(t, "only the owner may access centers.", RoleErrorOwner("centers"))
}

func TestRoleGroupsContainOwner(t *testing.T) {
	for _, group := range [][]string{AllRoles, FinanceWriters, FinanceReaders, AdminAndAbove} {
		assert.Contains(t, group, RoleOwner)
	}
}
