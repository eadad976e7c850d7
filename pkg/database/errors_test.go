package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookcase_book"}

	if !IsUniqueViolation(fmt.Errorf("insert item: %w", pgErr)) {
		t.Error("wrapped 23505 should be a unique violation")
	}
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Error("gorm translated duplicate key should be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("plain error is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 should be a foreign key violation")
	}
	if !IsForeignKeyViolation(fmt.Errorf("delete category: %w", gorm.ErrForeignKeyViolated)) {
		t.Error("gorm translated fk error should be a foreign key violation")
	}
	if IsForeignKeyViolation(gorm.ErrRecordNotFound) {
		t.Error("record not found is not a foreign key violation")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)) {
		t.Error("wrapped record not found should match")
	}
}
