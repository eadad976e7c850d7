package bookcase

import (
	"context"
	"sync"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/internal/policy"
)

// Scope names the bookcase an item operation targets. A nil BookCaseID means
// the actor's own bookcase; a set one is the admin view of any bookcase.
type Scope struct {
	Actor      policy.Actor
	BookCaseID *uint
}

func OwnScope(actor policy.Actor) Scope {
	return Scope{Actor: actor}
}

func AdminScope(actor policy.Actor, bookCaseID uint) Scope {
	return Scope{Actor: actor, BookCaseID: &bookCaseID}
}

type ownBookCaseKey struct{}

type ownBookCaseMemo struct {
	once     sync.Once
	bookCase *entity.BookCase
	err      error
}

// WithOwnBookCase makes ctx memoise the actor's bookcase lookup, so a request
// resolves it at most once.
func WithOwnBookCase(ctx context.Context) context.Context {
	return context.WithValue(ctx, ownBookCaseKey{}, &ownBookCaseMemo{})
}

func (s *service) ownBookCase(ctx context.Context, actor policy.Actor) (*entity.BookCase, error) {
	memo, ok := ctx.Value(ownBookCaseKey{}).(*ownBookCaseMemo)
	if !ok {
		return s.repo.EnsureForUser(ctx, actor.UserID)
	}
	memo.once.Do(func() {
		memo.bookCase, memo.err = s.repo.EnsureForUser(ctx, actor.UserID)
	})
	return memo.bookCase, memo.err
}
