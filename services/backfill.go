package services

import (
	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/rs/zerolog/log"
)

// BackfillAuthorSnapshots re-syncs the embedded author snapshots on every
// post from the current user records. Snapshots are copies taken at write
// time and are never refreshed automatically; this routine is the explicit
// migration path for when profile edits should reach existing posts.
// Snapshots whose user no longer exists are kept as-is. Returns the number
// of posts rewritten.
func BackfillAuthorSnapshots(users *database.UserRepo, posts *database.PostRepo) (int, error) {
	all, err := posts.FindAll("", "")
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, post := range all {
		changed := false
		snapshots := make([]models.PostAuthor, len(post.Authors))
		copy(snapshots, post.Authors)

		for i, snapshot := range snapshots {
			user, err := users.FindByID(snapshot.AuthorID)
			if err != nil {
				if errs.IsNotFound(err) {
					continue
				}
				return updated, err
			}
			if snapshot.Name != user.Name ||
				!equalOptional(snapshot.Image, user.Image) ||
				!equalOptional(snapshot.Description, user.Description) {
				snapshots[i].Name = user.Name
				snapshots[i].Image = user.Image
				snapshots[i].Description = user.Description
				changed = true
			}
		}

		if !changed {
			continue
		}
		if _, err := posts.Update(post.ID, database.PostUpdate{Authors: &snapshots}); err != nil {
			return updated, err
		}
		updated++
		log.Info().Str("slug", post.Slug).Msg("refreshed author snapshots")
	}
	return updated, nil
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
