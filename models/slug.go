package models

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a URL-safe identifier from a display name: lowercase with
// whitespace runs collapsed to single hyphens. "BEAUTY Tips" -> "beauty-tips".
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// FoldRelation applies the legacy compatibility rule for taxonomy references:
// a singular field from an old client wins over the plural sequence, so that
// {menu: "beauty"} and {menus: ["beauty"]} persist identically. The plural
// form is the only shape at rest.
func FoldRelation(singular string, plural []string) []string {
	if singular != "" {
		return []string{singular}
	}
	return plural
}
