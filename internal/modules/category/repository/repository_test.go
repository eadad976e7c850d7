package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anoa.com/bookcommunity/pkg/database"
	"anoa.com/bookcommunity/pkg/database/dbtest"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestDeleteReferencedCategory(t *testing.T) {
	db, rec := dbtest.Open(t)
	rec.ExecErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_books_category"}
	repo := NewCategoryRepository(db)

	err := repo.Delete(context.Background(), 2)
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("Delete() error = %v, want foreign key violation", err)
	}
	if !database.IsForeignKeyViolation(err) {
		t.Errorf("IsForeignKeyViolation(%v) = false", err)
	}
	if got := rec.Find(`DELETE FROM "categories"`); len(got) != 1 || !strings.Contains(got[0], `"categories"."id" = 2`) {
		t.Errorf("delete statements = %v", got)
	}
}

func TestDeleteMissingCategory(t *testing.T) {
	db, rec := dbtest.Open(t)
	rec.RowsAffected = 0
	repo := NewCategoryRepository(db)

	if err := repo.Delete(context.Background(), 2); !database.IsNotFound(err) {
		t.Fatalf("Delete() error = %v, want not found", err)
	}
}

func TestCountBooksScopesByCategory(t *testing.T) {
	db, rec := dbtest.Open(t)
	repo := NewCategoryRepository(db)

	_, _ = repo.CountBooks(context.Background(), 5)

	got := rec.Find(`SELECT count(*) FROM "books"`)
	if len(got) != 1 || !strings.Contains(got[0], "category_id = 5") {
		t.Errorf("count statements = %v", got)
	}
}
