package policy

import "github.com/google/uuid"

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceBook              Resource = "book"
	ResourceCategory          Resource = "category"
	ResourceComment           Resource = "comment"
	ResourceBookCase          Resource = "bookcase"
	ResourceBookCaseItem      Resource = "bookcase_item"
	ResourceAdminBookCaseItem Resource = "admin_bookcase_item"
	ResourceUser              Resource = "user"
	ResourceStats             Resource = "stats"
)

// Actor is whoever issues the request. The zero value is an anonymous caller.
type Actor struct {
	UserID        uuid.UUID
	Username      string
	Authenticated bool
	Admin         bool
}

var Anonymous = Actor{}

// Owns reports whether the actor is the given owner.
func (a Actor) Owns(owner uuid.UUID) bool {
	return a.Authenticated && owner != uuid.Nil && a.UserID == owner
}
