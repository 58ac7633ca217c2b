package database

import (
	"errors"
	"strings"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users from the database
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Find(&users).Error
	return users, err
}

// FindAuthors returns users with the author role, in display order.
func (r *UserRepo) FindAuthors() ([]*models.User, error) {
	var authors []*models.User
	err := r.db.
		Where("role = ?", models.RoleAuthor).
		Order("\"index\" ASC").
		Order("name ASC").
		Find(&authors).Error
	return authors, err
}

// FindByID returns a user by id, or a NotFound error.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAuthorByID returns a user by id only if they hold the author role.
func (r *UserRepo) FindAuthorByID(id uuid.UUID) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAuthor {
		return nil, errs.NewNotFound("author")
	}
	return user, nil
}

// FindByEmail returns the user with the given email, or nil when no user has
// it. Absence is not an error here: callers use this for existence checks.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	var user models.User
	err := r.db.First(&user, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Search matches users by case-insensitive substring over name and email.
func (r *UserRepo) Search(query string) ([]*models.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []*models.User
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

// Add inserts a new user. The role defaults to "user" and the email, when
// present, must be unique across every role.
func (r *UserRepo) Add(user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*user.Email))
		user.Email = &lowered
		existing, err := r.FindByEmail(lowered)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.NewAlreadyExists("email")
		}
	}
	return r.db.Create(user).Error
}

// Update applies a partial update to a user. A changed email is re-checked
// for uniqueness against every other user.
func (r *UserRepo) Update(id uuid.UUID, updates map[string]interface{}) (*models.User, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}
	if rawEmail, ok := updates["email"]; ok {
		if email, ok := rawEmail.(string); ok && email != "" {
			lowered := strings.ToLower(strings.TrimSpace(email))
			updates["email"] = lowered
			existing, err := r.FindByEmail(lowered)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, errs.NewAlreadyExists("email")
			}
		}
	}
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Delete removes a user, failing with NotFound when the id does not resolve.
func (r *UserRepo) Delete(id uuid.UUID) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return user, nil
}
