package database

import (
	"sync"
	"testing"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestAddPostDerivesSlugFromTitle(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "My First Post"}
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if post.Slug != "my-first-post" {
		t.Errorf("Slug = %q, want %q", post.Slug, "my-first-post")
	}
	if post.Status != models.StatusDraft {
		t.Errorf("Status = %q, want %q", post.Status, models.StatusDraft)
	}
	if post.Views != 0 {
		t.Errorf("Views = %d, want 0", post.Views)
	}
}

func TestAddPostDuplicateSlugLeavesStoreUnchanged(t *testing.T) {
	db := setupTestDB(t)

	first := models.Post{Title: "Summer Hair Care"}
	if err := db.PostRepo().Add(&first, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	second := models.Post{Title: "Summer Hair Care"}
	err := db.PostRepo().Add(&second, LegacyRelations{})
	if !errs.IsDuplicateSlug(err) {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}

	posts, err := db.PostRepo().FindAll("", "")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("post count = %d, want 1", len(posts))
	}
}

func TestAddPostFoldsLegacySingularRelations(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "Folded"}
	post.SetMenuSlugs([]string{"trends", "career"})
	post.SetSubmenuSlugs([]string{"hair"})

	// A non-empty singular value replaces the plural list entirely.
	if err := db.PostRepo().Add(&post, LegacyRelations{Menu: "beauty"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	stored, err := db.PostRepo().FindBySlug("folded")
	if err != nil {
		t.Fatalf("FindBySlug failed: %v", err)
	}
	menus := stored.MenuSlugs()
	if len(menus) != 1 || menus[0] != "beauty" {
		t.Errorf("menus = %v, want [beauty]", menus)
	}
	// An empty singular value leaves the plural list alone.
	submenus := stored.SubmenuSlugs()
	if len(submenus) != 1 || submenus[0] != "hair" {
		t.Errorf("submenus = %v, want [hair]", submenus)
	}
}

func TestFoldEquivalenceAcrossWritePaths(t *testing.T) {
	db := setupTestDB(t)

	viaLegacy := models.Post{Title: "Via Legacy"}
	if err := db.PostRepo().Add(&viaLegacy, LegacyRelations{Menu: "beauty"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	viaPlural := models.Post{Title: "Via Plural"}
	viaPlural.SetMenuSlugs([]string{"beauty"})
	if err := db.PostRepo().Add(&viaPlural, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	posts, err := db.PostRepo().FindAll("beauty", "")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("menu filter matched %d posts, want both write paths", len(posts))
	}
}

func TestFindAllFiltersAndOrdering(t *testing.T) {
	db := setupTestDB(t)

	second := models.Post{Title: "Second", Index: 2}
	second.SetMenuSlugs([]string{"beauty"})
	first := models.Post{Title: "First", Index: 1}
	first.SetMenuSlugs([]string{"beauty"})
	first.SetSubmenuSlugs([]string{"hair"})
	other := models.Post{Title: "Other", Index: 0}
	other.SetMenuSlugs([]string{"trends"})

	for _, p := range []*models.Post{&second, &first, &other} {
		if err := db.PostRepo().Add(p, LegacyRelations{}); err != nil {
			t.Fatalf("Add(%s) failed: %v", p.Title, err)
		}
	}

	posts, err := db.PostRepo().FindAll("beauty", "")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(posts))
	}
	if posts[0].Title != "First" || posts[1].Title != "Second" {
		t.Errorf("order = [%s, %s], want index ascending", posts[0].Title, posts[1].Title)
	}

	posts, err = db.PostRepo().FindAll("beauty", "hair")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "First" {
		t.Errorf("combined filter = %d posts, want First only", len(posts))
	}

	posts, err = db.PostRepo().FindAll("nonexistent", "")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("unknown slug matched %d posts, want 0", len(posts))
	}
}

func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "Counter"}
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	var views int64
	var err error
	for i := 0; i < 5; i++ {
		views, err = db.PostRepo().IncrementViews(post.ID)
		if err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}
	if views != 5 {
		t.Errorf("views = %d, want 5", views)
	}

	if _, err := db.PostRepo().IncrementViews(uuid.New()); !errs.IsNotFound(err) {
		t.Errorf("expected not found for unknown id, got %v", err)
	}
}

func TestIncrementViewsConcurrently(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "Busy Counter"}
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	const n = 25
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.PostRepo().IncrementViews(post.ID); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	stored, err := db.PostRepo().FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Views != n {
		t.Errorf("views = %d, want exactly %d with no lost increments", stored.Views, n)
	}
}

func TestAuthorSnapshotsSurviveUserChanges(t *testing.T) {
	db := setupTestDB(t)

	author := models.User{Name: "Priya", Role: models.RoleAuthor, Image: strPtr("priya.jpg")}
	if err := db.UserRepo().Add(&author); err != nil {
		t.Fatalf("Add user failed: %v", err)
	}

	post := models.Post{
		Title: "Snapshot",
		Authors: []models.PostAuthor{
			{AuthorID: author.ID, Name: author.Name, Image: author.Image},
		},
	}
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add post failed: %v", err)
	}

	if _, err := db.UserRepo().Update(author.ID, map[string]interface{}{"name": "Priya Sharma"}); err != nil {
		t.Fatalf("Update user failed: %v", err)
	}

	stored, err := db.PostRepo().FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Authors[0].Name != "Priya" {
		t.Errorf("snapshot name = %q, want the write-time copy", stored.Authors[0].Name)
	}

	if _, err := db.UserRepo().Delete(author.ID); err != nil {
		t.Fatalf("Delete user failed: %v", err)
	}
	stored, err = db.PostRepo().FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID after user delete failed: %v", err)
	}
	if len(stored.Authors) != 1 || stored.Authors[0].Name != "Priya" {
		t.Error("snapshot should stay readable after the user record is gone")
	}
}

func TestFindByAuthor(t *testing.T) {
	db := setupTestDB(t)

	authorID := uuid.New()
	mine := models.Post{
		Title:   "Mine",
		Authors: []models.PostAuthor{{AuthorID: authorID, Name: "Me"}},
	}
	theirs := models.Post{
		Title:   "Theirs",
		Authors: []models.PostAuthor{{AuthorID: uuid.New(), Name: "Them"}},
	}
	for _, p := range []*models.Post{&mine, &theirs} {
		if err := db.PostRepo().Add(p, LegacyRelations{}); err != nil {
			t.Fatalf("Add(%s) failed: %v", p.Title, err)
		}
	}

	posts, err := db.PostRepo().FindByAuthor(authorID)
	if err != nil {
		t.Fatalf("FindByAuthor failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Mine" {
		t.Errorf("FindByAuthor = %d posts, want Mine only", len(posts))
	}
}

func TestUpdatePostFoldsAndReplacesRelations(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "Update Me"}
	post.SetMenuSlugs([]string{"beauty"})
	post.SetTagValues([]string{"hair", "summer"})
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	menu := "trends"
	tags := []string{"winter"}
	updated, err := db.PostRepo().Update(post.ID, PostUpdate{
		Title: strPtr("Updated"),
		Menu:  &menu,
		Tags:  &tags,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Updated" {
		t.Errorf("Title = %q, want Updated", updated.Title)
	}
	menus := updated.MenuSlugs()
	if len(menus) != 1 || menus[0] != "trends" {
		t.Errorf("menus = %v, want legacy singular folded to [trends]", menus)
	}
	got := updated.TagValues()
	if len(got) != 1 || got[0] != "winter" {
		t.Errorf("tags = %v, want wholesale replacement [winter]", got)
	}
}

func TestUpdatePostSlugConflict(t *testing.T) {
	db := setupTestDB(t)

	first := models.Post{Title: "First"}
	second := models.Post{Title: "Second"}
	for _, p := range []*models.Post{&first, &second} {
		if err := db.PostRepo().Add(p, LegacyRelations{}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	_, err := db.PostRepo().Update(second.ID, PostUpdate{Slug: strPtr("first")})
	if !errs.IsDuplicateSlug(err) {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	db := setupTestDB(t)

	post := models.Post{Title: "Doomed"}
	post.SetMenuSlugs([]string{"beauty"})
	if err := db.PostRepo().Add(&post, LegacyRelations{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := db.PostRepo().Delete(post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.PostRepo().FindByID(post.ID); !errs.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := db.PostRepo().Delete(post.ID); !errs.IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestSearchPosts(t *testing.T) {
	db := setupTestDB(t)

	hair := models.Post{Title: "Hair Care Guide", Description: strPtr("All about hair")}
	hair.SetTagValues([]string{"haircare"})
	nails := models.Post{Title: "Nail Art", Description: strPtr("Manicure basics")}
	nails.SetTagValues([]string{"nails"})
	for _, p := range []*models.Post{&hair, &nails} {
		if err := db.PostRepo().Add(p, LegacyRelations{}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	posts, err := db.PostRepo().Search("HAIR")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Hair Care Guide" {
		t.Errorf("search HAIR = %d posts, want the hair guide", len(posts))
	}

	posts, err = db.PostRepo().Search("manicure")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Nail Art" {
		t.Errorf("description search = %d posts, want Nail Art", len(posts))
	}

	posts, err = db.PostRepo().Search("nails")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("tag search = %d posts, want 1", len(posts))
	}
}
