package auth

import (
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

// Operation is an action a caller wants to perform on a record
type Operation string

const (
	OpList     Operation = "list"
	OpRetrieve Operation = "retrieve"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
)

// IsRead reports whether op only reads data
func (op Operation) IsRead() bool {
	return op == OpList || op == OpRetrieve
}

// Actor is the authenticated caller of a request
type Actor struct {
	UserID   int64
	Username string
}

// Target is the record an operation applies to. It is either an
// IdentityTarget or an OwnedRecordTarget.
type Target interface {
	ownerID() int64
}

// IdentityTarget is a user account; its owner is the user itself.
type IdentityTarget struct {
	UserID int64
}

func (t IdentityTarget) ownerID() int64 { return t.UserID }

// OwnedRecordTarget is any record that belongs to a user.
type OwnedRecordTarget struct {
	OwnerID int64
}

func (t OwnedRecordTarget) ownerID() int64 { return t.OwnerID }

// Authorizer decides whether an actor may perform an operation on a target
type Authorizer interface {
	Authorize(actor *Actor, op Operation, target Target) error
}

// OwnerOrReadOnly lets anyone read and only the owner write.
type OwnerOrReadOnly struct{}

// Authorize implements Authorizer
func (OwnerOrReadOnly) Authorize(actor *Actor, op Operation, target Target) error {
	return Authorize(actor, op, target)
}

// Authorize applies the owner-or-read-only rule. A nil actor is anonymous.
func Authorize(actor *Actor, op Operation, target Target) error {
	if op.IsRead() {
		return nil
	}
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if target == nil || target.ownerID() != actor.UserID {
		return apperrors.NewForbiddenError("you do not have permission to perform this action")
	}
	return nil
}
