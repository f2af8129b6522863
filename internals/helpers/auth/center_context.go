package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
)

// Locals keys populated by the auth middleware. Controllers never read
// the JWT directly; everything goes through this package.
const (
	LocUserID   = "user_id"
	LocRoles    = "roles"
	LocCenterID = "center_id"
)

// CallerContext is the tenant/role context handed to every core
// operation. Services receive it explicitly instead of reading
// ambient request state.
type CallerContext struct {
	UserID   uuid.UUID
	CenterID uuid.UUID
	Roles    []string
}

func (cc CallerContext) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range cc.Roles {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func (cc CallerContext) IsOwner() bool {
	return cc.HasAnyRole(constants.RoleOwner)
}

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" invalid in token")
	}
	return id, nil
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocUserID)
}

// GetCenterIDFromToken returns the tenant the caller belongs to.
func GetCenterIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocCenterID)
}

func GetRolesFromToken(c *fiber.Ctx) []string {
	v := c.Locals(LocRoles)
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) != "" {
			return []string{strings.ToLower(strings.TrimSpace(t))}
		}
	}
	return nil
}

// ResolveCaller builds the CallerContext for the request. Every finance
// controller calls this once and passes the result down.
func ResolveCaller(c *fiber.Ctx) (CallerContext, error) {
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return CallerContext{}, err
	}
	roles := GetRolesFromToken(c)
	if len(roles) == 0 {
		return CallerContext{}, fiber.NewError(fiber.StatusUnauthorized, "roles missing from token")
	}

	cc := CallerContext{UserID: userID, Roles: roles}

	// Owner may act without a home center; everyone else must carry one.
	centerID, err := GetCenterIDFromToken(c)
	if err != nil {
		if !cc.IsOwner() {
			return CallerContext{}, err
		}
		return cc, nil
	}
	cc.CenterID = centerID
	return cc, nil
}

// TargetCenterID picks the center a request operates on: the caller's
// own center from the token, or ?center_id= when the owner acts on a
// center they do not belong to.
func TargetCenterID(c *fiber.Ctx) (uuid.UUID, error) {
	if q := strings.TrimSpace(c.Query("center_id")); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "center_id invalid")
		}
		return id, nil
	}
	return GetCenterIDFromToken(c)
}

// EnsureCenterRole rejects callers that are outside the center or hold
// none of the allowed roles. This is the single tenant-scoping gate all
// finance routes go through.
func EnsureCenterRole(c *fiber.Ctx, centerID uuid.UUID, allowed ...string) (CallerContext, error) {
	cc, err := ResolveCaller(c)
	if err != nil {
		return CallerContext{}, err
	}
	if !cc.IsOwner() && cc.CenterID != centerID {
		return CallerContext{}, fiber.NewError(fiber.StatusForbidden, "center mismatch")
	}
	if len(allowed) > 0 && !cc.HasAnyRole(allowed...) {
		return CallerContext{}, fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
	if cc.IsOwner() && cc.CenterID == uuid.Nil {
		cc.CenterID = centerID
	}
	return cc, nil
}
