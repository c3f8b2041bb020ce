package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

func TestAdminHasBlanketAccessEverywhere(t *testing.T) {
	resources := []Resource{ResourceUser, ResourceChild, ResourceAttendance, ResourceGroup, ResourceTeacher, ResourceContact}
	ops := []Operation{OpCreate, OpList, OpGet, OpUpdate, OpDelete}
	for _, res := range resources {
		for _, op := range ops {
			assert.True(t, HasBlanket(models.RoleAdmin, res, op), "admin should pass %s %s", op, res)
		}
	}
}

func TestCommentUpdateIsAuthorOnly(t *testing.T) {
	// Even an admin may not edit someone else's comment.
	admin := models.Identity{UserID: 1, Role: models.RoleAdmin}
	require.Error(t, Authorize(admin, ResourceComment, OpUpdate, 2))
	require.NoError(t, Authorize(admin, ResourceComment, OpUpdate, 1))

	parent := models.Identity{UserID: 3, Role: models.RoleParent}
	require.NoError(t, Authorize(parent, ResourceComment, OpUpdate, 3))
	require.Error(t, Authorize(parent, ResourceComment, OpUpdate, 1))
}

func TestTeacherCannotCreateAttendance(t *testing.T) {
	assert.False(t, CanAttempt(models.RoleTeacher, ResourceAttendance, OpCreate))
	assert.True(t, CanAttempt(models.RoleTeacher, ResourceAttendance, OpGet))
	assert.True(t, CanAttempt(models.RoleParent, ResourceAttendance, OpCreate))
}

func TestParentOwnershipGate(t *testing.T) {
	parent := models.Identity{UserID: 7, Role: models.RoleParent}

	require.NoError(t, Authorize(parent, ResourceChild, OpGet, 7))
	err := Authorize(parent, ResourceChild, OpGet, 8)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden, err)
}

func TestTeacherReadOnlySurfaces(t *testing.T) {
	teacher := models.Identity{UserID: 5, Role: models.RoleTeacher}

	require.NoError(t, Authorize(teacher, ResourceContact, OpGet, 99))
	require.Error(t, Authorize(teacher, ResourceContact, OpUpdate, 99))
	require.Error(t, Authorize(teacher, ResourceChild, OpGet, 99))
	assert.False(t, CanAttempt(models.RoleTeacher, ResourceChild, OpList))
	assert.True(t, CanAttempt(models.RoleTeacher, ResourceGroup, OpList))
	assert.False(t, CanAttempt(models.RoleTeacher, ResourceTeacher, OpList))
}

func TestSelfAccessToOwnUserRecord(t *testing.T) {
	parent := models.Identity{UserID: 4, Role: models.RoleParent}
	require.NoError(t, Authorize(parent, ResourceUser, OpGet, 4))
	require.Error(t, Authorize(parent, ResourceUser, OpGet, 5))
	require.Error(t, Authorize(parent, ResourceUser, OpDelete, 4))
}

func TestMissingTargetNeverLeaksExistence(t *testing.T) {
	// Roles with blanket read get an honest 404.
	assert.Equal(t, appErrors.ErrNotFound, OnMissing(models.RoleAdmin, ResourceChild, OpGet))
	assert.Equal(t, appErrors.ErrNotFound, OnMissing(models.RoleTeacher, ResourceContact, OpGet))
	// Ownership-restricted roles get the same 403 as for a foreign row.
	assert.Equal(t, appErrors.ErrForbidden, OnMissing(models.RoleParent, ResourceChild, OpGet))
	assert.Equal(t, appErrors.ErrForbidden, OnMissing(models.RoleTeacher, ResourceChild, OpGet))
}
