package policy

import (
	"fmt"

	"anoa.com/bookcommunity/pkg/apperror"
	"github.com/google/uuid"
)

type rule func(actor Actor, owner *uuid.UUID) error

func public(Actor, *uuid.UUID) error {
	return nil
}

func authenticated(actor Actor, _ *uuid.UUID) error {
	if !actor.Authenticated {
		return apperror.ErrUnauthorized
	}
	return nil
}

func adminOnly(actor Actor, _ *uuid.UUID) error {
	if err := authenticated(actor, nil); err != nil {
		return err
	}
	if !actor.Admin {
		return apperror.ErrForbidden
	}
	return nil
}

func ownerOrAdmin(actor Actor, owner *uuid.UUID) error {
	if err := authenticated(actor, nil); err != nil {
		return err
	}
	if actor.Admin || (owner != nil && actor.Owns(*owner)) {
		return nil
	}
	return apperror.ErrForbidden
}

// scopedOwnerOrAdmin hides records outside the actor's scope instead of
// refusing them.
func scopedOwnerOrAdmin(actor Actor, owner *uuid.UUID) error {
	if err := ownerOrAdmin(actor, owner); err != nil {
		if err == apperror.ErrForbidden {
			return apperror.ErrNotFound
		}
		return err
	}
	return nil
}

func never(actor Actor, _ *uuid.UUID) error {
	if err := authenticated(actor, nil); err != nil {
		return err
	}
	return apperror.ErrForbidden
}

var matrix = map[Resource]map[Action]rule{
	ResourceBook: {
		ActionRead:   public,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceCategory: {
		ActionRead:   public,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceComment: {
		ActionRead:   public,
		ActionCreate: authenticated,
		ActionUpdate: ownerOrAdmin,
		ActionDelete: ownerOrAdmin,
	},
	ResourceBookCase: {
		ActionRead:   scopedOwnerOrAdmin,
		ActionCreate: never,
		ActionUpdate: never,
		ActionDelete: never,
	},
	ResourceBookCaseItem: {
		ActionRead:   scopedOwnerOrAdmin,
		ActionCreate: ownerOrAdmin,
		ActionUpdate: ownerOrAdmin,
		ActionDelete: ownerOrAdmin,
	},
	ResourceAdminBookCaseItem: {
		ActionRead:   adminOnly,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceUser: {
		ActionRead:   adminOnly,
		ActionUpdate: adminOnly,
	},
	ResourceStats: {
		ActionRead: adminOnly,
	},
}

// Authorize evaluates the capability matrix. owner is the user that owns the
// target record, or nil when the action has no single target (lists, creates
// of unowned resources). Unknown pairs are denied.
func Authorize(actor Actor, action Action, resource Resource, owner *uuid.UUID) error {
	actions, ok := matrix[resource]
	if !ok {
		return fmt.Errorf("unknown resource %q: %w", resource, apperror.ErrForbidden)
	}
	check, ok := actions[action]
	if !ok {
		return fmt.Errorf("action %q on %q: %w", action, resource, apperror.ErrForbidden)
	}
	return check(actor, owner)
}

// Can is Authorize as a predicate.
func Can(actor Actor, action Action, resource Resource, owner *uuid.UUID) bool {
	return Authorize(actor, action, resource, owner) == nil
}
