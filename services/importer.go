package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/dasalon/blog-backend/database"
	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// ExtractImages pulls the src URL of every <img> tag out of an HTML body,
// in document order.
func ExtractImages(content string) []string {
	var images []string
	for _, match := range imgSrcPattern.FindAllStringSubmatch(content, -1) {
		images = append(images, match[1])
	}
	return images
}

// LegacyImporter performs the one-time migration from the old CMS API into
// this data model. It maps relations to slugs, folds the legacy singular
// fields, builds author snapshots by looking up authors by name, extracts
// inline images from the HTML body and upserts posts by slug.
type LegacyImporter struct {
	client  *http.Client
	baseURL string
	users   *database.UserRepo
	posts   *database.PostRepo
	logger  zerolog.Logger
}

func NewLegacyImporter(baseURL string, users *database.UserRepo, posts *database.PostRepo) *LegacyImporter {
	return &LegacyImporter{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		users:   users,
		posts:   posts,
		logger:  log.With().Str("service", "legacyImporter").Logger(),
	}
}

// legacyEntry is one record from the source API. Entries arrive either flat
// or wrapped in {id, attributes: {...}}; normalise flattens both.
type legacyEntry map[string]json.RawMessage

func normalise(raw json.RawMessage) legacyEntry {
	var entry legacyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return legacyEntry{}
	}
	if attrs, ok := entry["attributes"]; ok {
		var flattened legacyEntry
		if err := json.Unmarshal(attrs, &flattened); err == nil {
			if id, ok := entry["id"]; ok {
				flattened["id"] = id
			}
			return flattened
		}
	}
	return entry
}

// unpackCollection accepts either a bare array or {data: [...]}.
func unpackCollection(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var wrapped struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Data
	}
	return nil
}

func (e legacyEntry) str(key string) string {
	raw, ok := e[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (e legacyEntry) boolean(key string) bool {
	var b bool
	if raw, ok := e[key]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}

func (e legacyEntry) integer(key string) int {
	var n int
	if raw, ok := e[key]; ok {
		_ = json.Unmarshal(raw, &n)
	}
	return n
}

// relationSlugs maps a related collection to its slugs, deriving one from
// the name when the source record has no slug of its own.
func relationSlugs(raw json.RawMessage) []string {
	var slugs []string
	for _, item := range unpackCollection(raw) {
		entry := normalise(item)
		slug := entry.str("slug")
		if slug == "" {
			slug = models.Slugify(entry.str("name"))
		}
		if slug != "" {
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

// authorSnapshots resolves source authors to user records by name and role,
// copying their display fields into embedded snapshots. Authors with no
// matching user record are skipped.
func (i *LegacyImporter) authorSnapshots(raw json.RawMessage) []models.PostAuthor {
	var snapshots []models.PostAuthor
	for _, item := range unpackCollection(raw) {
		entry := normalise(item)
		name := entry.str("name")
		if name == "" {
			continue
		}
		user, err := i.findAuthorByName(name)
		if err != nil || user == nil {
			i.logger.Warn().Str("author", name).Msg("no matching author user, skipping snapshot")
			continue
		}
		snapshots = append(snapshots, models.PostAuthor{
			AuthorID:    user.ID,
			Name:        user.Name,
			Image:       user.Image,
			Description: user.Description,
		})
	}
	return snapshots
}

func (i *LegacyImporter) findAuthorByName(name string) (*models.User, error) {
	authors, err := i.users.FindAuthors()
	if err != nil {
		return nil, err
	}
	for _, author := range authors {
		if author.Name == name {
			return author, nil
		}
	}
	return nil, nil
}

// ImportPosts fetches every blog entry from the legacy API and upserts it
// into the content store by slug.
func (i *LegacyImporter) ImportPosts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL+"/blogs?populate=*", nil)
	if err != nil {
		return err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching legacy blogs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("legacy API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	entries := unpackCollection(body)
	i.logger.Info().Int("count", len(entries)).Msg("fetched legacy blogs")

	for _, raw := range entries {
		entry := normalise(raw)
		if err := i.importOne(entry); err != nil {
			i.logger.Error().Err(err).Str("title", entry.str("title")).Msg("failed to import blog")
		}
	}
	return nil
}

func (i *LegacyImporter) importOne(entry legacyEntry) error {
	title := entry.str("title")
	if title == "" {
		return fmt.Errorf("legacy blog without title")
	}
	slug := entry.str("slug")
	if slug == "" {
		slug = models.Slugify(title)
	}

	status := models.StatusDraft
	if entry.str("publishedAt") != "" {
		status = models.StatusPublished
	}

	content := entry.str("content")
	post := models.Post{
		Title:    title,
		Slug:     slug,
		Status:   status,
		Featured: entry.boolean("featured"),
		Index:    entry.integer("index"),
		Images:   datatypes.NewJSONSlice(ExtractImages(content)),
		Authors:  i.authorSnapshots(entry["authors"]),
	}
	if description := entry.str("description"); description != "" {
		post.Description = &description
	}
	if content != "" {
		post.Content = &content
	}
	if thumbnail := entry.str("thumbnail"); thumbnail != "" {
		post.Thumbnail = &thumbnail
	}
	if shareURL := entry.str("shareUrl"); shareURL != "" {
		post.ShareURL = &shareURL
	}
	post.SetMenuSlugs(relationSlugs(entry["menus"]))
	post.SetSubmenuSlugs(relationSlugs(entry["submenus"]))

	var tags []string
	for _, item := range unpackCollection(entry["tags"]) {
		if name := normalise(item).str("name"); name != "" {
			tags = append(tags, name)
		}
	}
	post.SetTagValues(tags)

	existing, err := i.posts.FindBySlug(slug)
	if err != nil && !errs.IsNotFound(err) {
		return err
	}
	if existing != nil {
		update := i.toUpdate(&post)
		if _, err := i.posts.Update(existing.ID, update); err != nil {
			return err
		}
		i.logger.Info().Str("slug", slug).Msg("updated blog")
		return nil
	}

	if err := i.posts.Add(&post, database.LegacyRelations{}); err != nil {
		return err
	}
	i.logger.Info().Str("slug", slug).Msg("created blog")
	return nil
}

func (i *LegacyImporter) toUpdate(post *models.Post) database.PostUpdate {
	images := []string(post.Images)
	menus := post.MenuSlugs()
	submenus := post.SubmenuSlugs()
	tags := post.TagValues()
	authors := post.Authors
	update := database.PostUpdate{
		Title:    &post.Title,
		Status:   &post.Status,
		Featured: &post.Featured,
		Index:    &post.Index,
		Images:   &images,
		Menus:    &menus,
		Submenus: &submenus,
		Tags:     &tags,
		Authors:  &authors,
	}
	if post.Description != nil {
		update.Description = post.Description
	}
	if post.Content != nil {
		update.Content = post.Content
	}
	if post.Thumbnail != nil {
		update.Thumbnail = post.Thumbnail
	}
	if post.ShareURL != nil {
		update.ShareURL = post.ShareURL
	}
	return update
}
