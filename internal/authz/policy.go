// Package authz centralises the role/ownership policy every resource service
// applies. It is a pure decision table: callers resolve the role and load the
// target's owner, authz only decides.
package authz

import (
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

// Resource identifies the entity kind an operation targets.
type Resource string

const (
	ResourceUser       Resource = "user"
	ResourceChild      Resource = "child"
	ResourceComment    Resource = "comment"
	ResourceAttendance Resource = "attendance"
	ResourceGroup      Resource = "group"
	ResourceTeacher    Resource = "teacher"
	ResourceContact    Resource = "contact"
)

// Operation identifies the action attempted on a resource.
type Operation string

const (
	OpCreate Operation = "create"
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type roleSet map[models.Role]bool

// rule describes one policy-table cell: roles that pass without an ownership
// check, and roles for which owning the target (or being the target, for
// users) grants access.
type rule struct {
	blanket roleSet
	owner   roleSet
}

var admin = roleSet{models.RoleAdmin: true}
var adminTeacher = roleSet{models.RoleAdmin: true, models.RoleTeacher: true}
var everyone = roleSet{models.RoleAdmin: true, models.RoleTeacher: true, models.RoleParent: true}
var parentOwner = roleSet{models.RoleParent: true}
var selfOwner = roleSet{models.RoleTeacher: true, models.RoleParent: true}
var anyOwner = roleSet{models.RoleAdmin: true, models.RoleTeacher: true, models.RoleParent: true}

var policy = map[Resource]map[Operation]rule{
	ResourceUser: {
		OpCreate: {blanket: admin},
		OpList:   {blanket: admin},
		OpGet:    {blanket: admin, owner: selfOwner},
		OpUpdate: {blanket: admin, owner: selfOwner},
		OpDelete: {blanket: admin},
	},
	ResourceChild: {
		OpCreate: {blanket: admin, owner: parentOwner},
		OpList:   {blanket: admin, owner: parentOwner},
		OpGet:    {blanket: admin, owner: parentOwner},
		OpUpdate: {blanket: admin, owner: parentOwner},
		OpDelete: {blanket: admin, owner: parentOwner},
	},
	ResourceComment: {
		// Creation is open to every authenticated role; a parent may only
		// comment on an owned child, which the service checks against the
		// child's owner.
		OpCreate: {blanket: adminTeacher, owner: parentOwner},
		OpList:   {blanket: adminTeacher, owner: parentOwner},
		OpGet:    {blanket: adminTeacher, owner: parentOwner},
		// Only the original author may edit, whatever their role.
		OpUpdate: {owner: anyOwner},
		OpDelete: {blanket: admin, owner: anyOwner},
	},
	ResourceAttendance: {
		// Teachers are explicitly barred from creating attendances.
		OpCreate: {blanket: admin, owner: parentOwner},
		OpList:   {blanket: adminTeacher, owner: parentOwner},
		OpGet:    {blanket: adminTeacher, owner: parentOwner},
		OpUpdate: {blanket: admin, owner: parentOwner},
		OpDelete: {blanket: admin, owner: parentOwner},
	},
	ResourceGroup: {
		OpCreate: {blanket: admin},
		OpList:   {blanket: everyone},
		OpGet:    {blanket: everyone},
		OpUpdate: {blanket: admin},
		OpDelete: {blanket: admin},
	},
	ResourceTeacher: {
		OpCreate: {blanket: admin},
		OpList:   {blanket: admin},
		OpGet:    {blanket: admin},
		OpUpdate: {blanket: admin},
		OpDelete: {blanket: admin},
	},
	ResourceContact: {
		OpCreate: {blanket: admin, owner: parentOwner},
		OpList:   {blanket: adminTeacher, owner: parentOwner},
		OpGet:    {blanket: adminTeacher, owner: parentOwner},
		OpUpdate: {blanket: admin, owner: parentOwner},
		OpDelete: {blanket: admin, owner: parentOwner},
	},
}

func cell(res Resource, op Operation) rule {
	ops, ok := policy[res]
	if !ok {
		return rule{}
	}
	return ops[op]
}

// CanAttempt reports whether the role could ever perform the operation.
// Services call this before fetching anything, so roles with no conceivable
// access are rejected without touching the target.
func CanAttempt(role models.Role, res Resource, op Operation) bool {
	r := cell(res, op)
	return r.blanket[role] || r.owner[role]
}

// HasBlanket reports whether the role passes without an ownership check.
func HasBlanket(role models.Role, res Resource, op Operation) bool {
	return cell(res, op).blanket[role]
}

// Authorize decides ALLOW/DENY for a caller against a loaded target.
// ownerID is the end of the target's ownership chain (comment author,
// attendance's child's parent, the user itself).
func Authorize(ident models.Identity, res Resource, op Operation, ownerID int) error {
	r := cell(res, op)
	if r.blanket[ident.Role] {
		return nil
	}
	if r.owner[ident.Role] && ownerID == ident.UserID {
		return nil
	}
	return appErrors.ErrForbidden
}

// OnMissing translates a missing target into the correct error for the role:
// blanket roles learn the resource does not exist, ownership-restricted roles
// see the same Forbidden they would for a foreign resource so that existence
// never leaks.
func OnMissing(role models.Role, res Resource, op Operation) *appErrors.Error {
	if HasBlanket(role, res, op) {
		return appErrors.ErrNotFound
	}
	return appErrors.ErrForbidden
}
