package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"anoa.com/bookcommunity/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// relation is a foreign key declared on a model field.
type relation struct {
	model any
	field string
}

// relations are created after AutoMigrate since books and categories
// reference each other. A has-many and its mirrored belongs-to share one
// constraint, declared on the has-many side (BookCase.Items).
var relations = []relation{
	{&entity.User{}, "Role"},
	{&entity.Book{}, "Category"},
	{&entity.Category{}, "TopBook"},
	{&entity.Comment{}, "User"},
	{&entity.Comment{}, "Book"},
	{&entity.BookCase{}, "User"},
	{&entity.BookCase{}, "Items"},
	{&entity.BookCaseItem{}, "Book"},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Category{},
		&entity.Book{},
		&entity.Comment{},
		&entity.BookCase{},
		&entity.BookCaseItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return createRelations(db)
}

func createRelations(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, rel := range relations {
		if migrator.HasConstraint(rel.model, rel.field) {
			continue
		}
		if err := migrator.CreateConstraint(rel.model, rel.field); err != nil {
			return fmt.Errorf("failed to create constraint %T.%s: %w", rel.model, rel.field, err)
		}
	}
	return nil
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: entity.RoleAdmin, Description: "Catalog administrator"},
		{Name: entity.RoleMember, Description: "Reader"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates the admin account and its bookcase once. It is a
// no-op when either credential is empty.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		slog.Info("admin credentials not set, skipping admin seed")
		return nil
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		slog.Info("admin user already exists, skipping seed", slog.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Username:     adminUsername(email),
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       &adminRole.ID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Role").Create(&adminUser).Error; err != nil {
			return err
		}
		return tx.Create(&entity.BookCase{UserID: adminUser.ID}).Error
	})
	if err != nil {
		return err
	}

	slog.Info("admin user seeded", slog.String("email", email), slog.String("username", adminUser.Username))
	return nil
}

// adminUsername derives a username from the local part of email.
func adminUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "admin"
	}
	if len(local) > 50 {
		local = local[:50]
	}
	return local
}
