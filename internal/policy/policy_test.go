package policy

import (
	"errors"
	"testing"

	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/google/uuid"
)

func TestAuthorize(t *testing.T) {
	alice := Actor{UserID: uuid.New(), Username: "alice", Authenticated: true}
	bob := Actor{UserID: uuid.New(), Username: "bob", Authenticated: true}
	admin := Actor{UserID: uuid.New(), Username: "root", Authenticated: true, Admin: true}
	aliceID := alice.UserID

	tests := []struct {
		name     string
		actor    Actor
		action   Action
		resource Resource
		owner    *uuid.UUID
		want     error
	}{
		{"anonymous reads books", Anonymous, ActionRead, ResourceBook, nil, nil},
		{"anonymous creates book", Anonymous, ActionCreate, ResourceBook, nil, apperror.ErrUnauthorized},
		{"member creates book", alice, ActionCreate, ResourceBook, nil, apperror.ErrForbidden},
		{"admin deletes book", admin, ActionDelete, ResourceBook, nil, nil},
		{"anonymous reads categories", Anonymous, ActionRead, ResourceCategory, nil, nil},
		{"member updates category", alice, ActionUpdate, ResourceCategory, nil, apperror.ErrForbidden},
		{"admin updates category", admin, ActionUpdate, ResourceCategory, nil, nil},
		{"anonymous reads comments", Anonymous, ActionRead, ResourceComment, nil, nil},
		{"anonymous comments", Anonymous, ActionCreate, ResourceComment, nil, apperror.ErrUnauthorized},
		{"member comments", alice, ActionCreate, ResourceComment, nil, nil},
		{"author edits comment", alice, ActionUpdate, ResourceComment, &aliceID, nil},
		{"stranger edits comment", bob, ActionUpdate, ResourceComment, &aliceID, apperror.ErrForbidden},
		{"stranger deletes comment", bob, ActionDelete, ResourceComment, &aliceID, apperror.ErrForbidden},
		{"admin deletes any comment", admin, ActionDelete, ResourceComment, &aliceID, nil},
		{"anonymous edits comment", Anonymous, ActionUpdate, ResourceComment, &aliceID, apperror.ErrUnauthorized},
		{"owner reads bookcase", alice, ActionRead, ResourceBookCase, &aliceID, nil},
		{"stranger reads bookcase", bob, ActionRead, ResourceBookCase, &aliceID, apperror.ErrNotFound},
		{"admin reads bookcase", admin, ActionRead, ResourceBookCase, &aliceID, nil},
		{"anonymous reads bookcase", Anonymous, ActionRead, ResourceBookCase, &aliceID, apperror.ErrUnauthorized},
		{"owner deletes bookcase", alice, ActionDelete, ResourceBookCase, &aliceID, apperror.ErrForbidden},
		{"admin deletes bookcase", admin, ActionDelete, ResourceBookCase, &aliceID, apperror.ErrForbidden},
		{"owner adds item", alice, ActionCreate, ResourceBookCaseItem, &aliceID, nil},
		{"stranger adds item", bob, ActionCreate, ResourceBookCaseItem, &aliceID, apperror.ErrForbidden},
		{"member uses admin items", alice, ActionRead, ResourceAdminBookCaseItem, nil, apperror.ErrForbidden},
		{"admin uses admin items", admin, ActionCreate, ResourceAdminBookCaseItem, nil, nil},
		{"member lists users", alice, ActionRead, ResourceUser, nil, apperror.ErrForbidden},
		{"admin changes roles", admin, ActionUpdate, ResourceUser, nil, nil},
		{"admin deletes users", admin, ActionDelete, ResourceUser, nil, apperror.ErrForbidden},
		{"anonymous reads stats", Anonymous, ActionRead, ResourceStats, nil, apperror.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.resource, tt.owner)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthorizeUnknownPairIsDenied(t *testing.T) {
	admin := Actor{UserID: uuid.New(), Authenticated: true, Admin: true}

	if err := Authorize(admin, Action("publish"), ResourceBook, nil); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("unknown action should be forbidden, got %v", err)
	}
	if Can(admin, ActionRead, Resource("shelf"), nil) {
		t.Error("unknown resource should be denied")
	}
}

func TestActorOwns(t *testing.T) {
	id := uuid.New()
	if (Actor{UserID: id}).Owns(id) {
		t.Error("unauthenticated actor never owns")
	}
	if !(Actor{UserID: id, Authenticated: true}).Owns(id) {
		t.Error("authenticated actor owns its own records")
	}
}
