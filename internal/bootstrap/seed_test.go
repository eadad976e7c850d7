package bootstrap

import (
	"strings"
	"sync"
	"testing"

	"anoa.com/bookcommunity/pkg/database/dbtest"
	"gorm.io/gorm/schema"
)

func TestAdminUsername(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"root@example.com", "root"},
		{"@example.com", "admin"},
		{strings.Repeat("a", 60) + "@example.com", strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		if got := adminUsername(tt.email); got != tt.want {
			t.Errorf("adminUsername(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestRelationsResolveToConstraints(t *testing.T) {
	want := map[string]struct {
		table, references, onDelete string
	}{
		"User.Role":         {"users", "roles", "SET NULL"},
		"Book.Category":     {"books", "categories", "RESTRICT"},
		"Category.TopBook":  {"categories", "books", "SET NULL"},
		"Comment.User":      {"comments", "users", "CASCADE"},
		"Comment.Book":      {"comments", "books", "CASCADE"},
		"BookCase.User":     {"bookcases", "users", "CASCADE"},
		"BookCase.Items":    {"bookcase_items", "bookcases", "CASCADE"},
		"BookCaseItem.Book": {"bookcase_items", "books", "CASCADE"},
	}
	if len(relations) != len(want) {
		t.Fatalf("relations has %d entries, want %d", len(relations), len(want))
	}

	cache := &sync.Map{}
	for _, rel := range relations {
		s, err := schema.Parse(rel.model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %T: %v", rel.model, err)
		}
		key := s.Name + "." + rel.field

		r, ok := s.Relationships.Relations[rel.field]
		if !ok {
			t.Errorf("%s: no such relationship", key)
			continue
		}
		c := r.ParseConstraint()
		if c == nil {
			t.Errorf("%s: no constraint would be created", key)
			continue
		}

		w, ok := want[key]
		if !ok {
			t.Errorf("%s: unexpected relation", key)
			continue
		}
		if c.Schema.Table != w.table || c.ReferenceSchema.Table != w.references || c.OnDelete != w.onDelete {
			t.Errorf("%s: got %s -> %s ON DELETE %q, want %s -> %s ON DELETE %q",
				key, c.Schema.Table, c.ReferenceSchema.Table, c.OnDelete, w.table, w.references, w.onDelete)
		}
	}
}

func TestCreateRelationsEmitsForeignKeys(t *testing.T) {
	db, rec := dbtest.Open(t)

	if err := createRelations(db); err != nil {
		t.Fatalf("createRelations() error = %v", err)
	}

	alters := rec.Find("ALTER TABLE")
	if len(alters) != len(relations) {
		t.Fatalf("got %d ALTER TABLE statements, want %d:\n%s", len(alters), len(relations), strings.Join(alters, "\n"))
	}

	for _, want := range []struct{ table, key string }{
		{`ALTER TABLE "bookcase_items"`, `FOREIGN KEY ("bookcase_id") REFERENCES "bookcases"("id") ON DELETE CASCADE`},
		{`ALTER TABLE "books"`, `FOREIGN KEY ("category_id") REFERENCES "categories"("id") ON DELETE RESTRICT`},
		{`ALTER TABLE "categories"`, `FOREIGN KEY ("top_book_id") REFERENCES "books"("id") ON DELETE SET NULL`},
	} {
		if !hasStatement(alters, want.table, want.key) {
			t.Errorf("missing %s ... %s in:\n%s", want.table, want.key, strings.Join(alters, "\n"))
		}
	}
}

func hasStatement(stmts []string, prefix, fragment string) bool {
	for _, s := range stmts {
		if strings.HasPrefix(s, prefix) && strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
