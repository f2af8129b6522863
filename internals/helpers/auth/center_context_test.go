package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bimbelku_backend/internals/constants"
)

func TestCallerContextHasAnyRole(t *testing.T) {
	cc := CallerContext{Roles: []string{"staff", "teacher"}}

	assert.True(t, cc.HasAnyRole(constants.RoleStaff))
	assert.True(t, cc.HasAnyRole(constants.RoleAdmin, constants.RoleStaff))
	assert.True(t, cc.HasAnyRole("STAFF"), "role match is case-insensitive")
	assert.False(t, cc.HasAnyRole(constants.RoleAdmin))
	assert.False(t, cc.HasAnyRole())
}

func TestCallerContextIsOwner(t *testing.T) {
	assert.True(t, CallerContext{Roles: []string{"owner"}}.IsOwner())
	assert.False(t, CallerContext{Roles: []string{"admin", "staff"}}.IsOwner())
}
