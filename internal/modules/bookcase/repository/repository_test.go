package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"anoa.com/bookcommunity/internal/entity"
	"anoa.com/bookcommunity/pkg/database"
	"anoa.com/bookcommunity/pkg/database/dbtest"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestBookCaseItemUniqueIndex(t *testing.T) {
	s, err := schema.Parse(&entity.BookCaseItem{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, idx := range s.ParseIndexes() {
		if idx.Name != "idx_bookcase_book" {
			continue
		}
		if idx.Class != "UNIQUE" {
			t.Errorf("class = %q, want UNIQUE", idx.Class)
		}
		var columns []string
		for _, opt := range idx.Fields {
			columns = append(columns, opt.DBName)
		}
		if strings.Join(columns, ",") != "bookcase_id,book_id" {
			t.Errorf("columns = %v, want [bookcase_id book_id]", columns)
		}
		return
	}
	t.Fatal("idx_bookcase_book not declared")
}

func TestCreateItemDuplicateBook(t *testing.T) {
	db, rec := dbtest.Open(t)
	rec.QueryErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookcase_book"}
	repo := NewBookCaseRepository(db)

	err := repo.CreateItem(context.Background(), &entity.BookCaseItem{BookCaseID: 1, BookID: 3, Status: entity.ItemRead})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("CreateItem() error = %v, want duplicated key", err)
	}
	if !database.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false", err)
	}

	inserts := rec.Find(`INSERT INTO "bookcase_items"`)
	if len(inserts) != 1 {
		t.Fatalf("insert statements = %v", rec.Statements())
	}
	if strings.Contains(inserts[0], `"bookcases"`) || strings.Contains(inserts[0], `"books"`) {
		t.Errorf("associations should not be written: %s", inserts[0])
	}
}

func TestUpdateItemDuplicateBook(t *testing.T) {
	db, rec := dbtest.Open(t)
	rec.ExecErr = &pgconn.PgError{Code: "23505"}
	repo := NewBookCaseRepository(db)

	err := repo.UpdateItem(context.Background(), &entity.BookCaseItem{ID: 8, BookCaseID: 1, BookID: 3, Status: entity.ItemRead})
	if !database.IsUniqueViolation(err) {
		t.Fatalf("UpdateItem() error = %v, want unique violation", err)
	}

	updates := rec.Find(`UPDATE "bookcase_items"`)
	if len(updates) != 1 || !strings.Contains(updates[0], "id = 8 AND bookcase_id = 1") {
		t.Errorf("update statements = %v", updates)
	}
}

func TestDeleteItemScopedToBookCase(t *testing.T) {
	db, rec := dbtest.Open(t)
	repo := NewBookCaseRepository(db)

	if err := repo.DeleteItem(context.Background(), 1, 7); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}

	deletes := rec.Find(`DELETE FROM "bookcase_items"`)
	if len(deletes) != 1 {
		t.Fatalf("delete statements = %v", rec.Statements())
	}
	for _, cond := range []string{"bookcase_id = 1", `"bookcase_items"."id" = 7`} {
		if !strings.Contains(deletes[0], cond) {
			t.Errorf("delete %q missing %q", deletes[0], cond)
		}
	}
}

func TestDeleteItemFromOtherBookCase(t *testing.T) {
	db, rec := dbtest.Open(t)
	rec.RowsAffected = 0
	repo := NewBookCaseRepository(db)

	if err := repo.DeleteItem(context.Background(), 2, 7); !database.IsNotFound(err) {
		t.Fatalf("DeleteItem() error = %v, want not found", err)
	}
}
