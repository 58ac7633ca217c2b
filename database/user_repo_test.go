package database

import (
	"testing"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
)

func TestAddUserDefaultsRole(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Reader"}
	if err := db.UserRepo().Add(&user); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleUser)
	}
}

func TestAddUserEmailUniqueIgnoringCase(t *testing.T) {
	db := setupTestDB(t)

	first := models.User{Name: "One", Email: strPtr("admin@example.com")}
	if err := db.UserRepo().Add(&first); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	second := models.User{Name: "Two", Email: strPtr("Admin@Example.com")}
	err := db.UserRepo().Add(&second)
	if !errs.IsAlreadyExists(err) {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestAddUsersWithoutEmail(t *testing.T) {
	db := setupTestDB(t)

	// Author profiles may have no login; two of them must coexist.
	for _, name := range []string{"Ghost One", "Ghost Two"} {
		user := models.User{Name: name, Role: models.RoleAuthor}
		if err := db.UserRepo().Add(&user); err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
	}

	authors, err := db.UserRepo().FindAuthors()
	if err != nil {
		t.Fatalf("FindAuthors failed: %v", err)
	}
	if len(authors) != 2 {
		t.Errorf("author count = %d, want 2", len(authors))
	}
}

func TestFindAuthorsOrderAndRoleFilter(t *testing.T) {
	db := setupTestDB(t)

	users := []models.User{
		{Name: "Zara", Role: models.RoleAuthor, Index: 0},
		{Name: "Amir", Role: models.RoleAuthor, Index: 1},
		{Name: "Root", Role: models.RoleAdmin},
	}
	for i := range users {
		if err := db.UserRepo().Add(&users[i]); err != nil {
			t.Fatalf("Add(%s) failed: %v", users[i].Name, err)
		}
	}

	authors, err := db.UserRepo().FindAuthors()
	if err != nil {
		t.Fatalf("FindAuthors failed: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("author count = %d, want 2", len(authors))
	}
	if authors[0].Name != "Zara" || authors[1].Name != "Amir" {
		t.Errorf("order = [%s, %s], want index before name", authors[0].Name, authors[1].Name)
	}
}

func TestFindAuthorByIDRejectsOtherRoles(t *testing.T) {
	db := setupTestDB(t)

	admin := models.User{Name: "Root", Role: models.RoleAdmin}
	if err := db.UserRepo().Add(&admin); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, err := db.UserRepo().FindAuthorByID(admin.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not found for non-author, got %v", err)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	db := setupTestDB(t)

	first := models.User{Name: "One", Email: strPtr("one@example.com")}
	second := models.User{Name: "Two", Email: strPtr("two@example.com")}
	for _, u := range []*models.User{&first, &second} {
		if err := db.UserRepo().Add(u); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	_, err := db.UserRepo().Update(second.ID, map[string]interface{}{"email": "one@example.com"})
	if !errs.IsAlreadyExists(err) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	// keeping your own email is not a conflict
	if _, err := db.UserRepo().Update(second.ID, map[string]interface{}{"email": "two@example.com"}); err != nil {
		t.Fatalf("self-email update failed: %v", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.UserRepo().Delete(uuid.New()); !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchUsers(t *testing.T) {
	db := setupTestDB(t)

	users := []models.User{
		{Name: "Priya Sharma", Email: strPtr("priya@example.com")},
		{Name: "John Smith", Email: strPtr("john@example.com")},
	}
	for i := range users {
		if err := db.UserRepo().Add(&users[i]); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	matches, err := db.UserRepo().Search("PRIYA")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Priya Sharma" {
		t.Errorf("name search = %d matches, want Priya", len(matches))
	}

	matches, err = db.UserRepo().Search("john@")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "John Smith" {
		t.Errorf("email search = %d matches, want John", len(matches))
	}
}
