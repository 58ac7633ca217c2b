package services

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtractImages(t *testing.T) {
	content := `<p>Intro</p>
<img class="wide" src="https://cdn.example.com/one.jpg" alt="one">
<p>Middle</p>
<img src="https://cdn.example.com/two.png">`

	got := ExtractImages(content)
	want := []string{"https://cdn.example.com/one.jpg", "https://cdn.example.com/two.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractImages = %v, want %v in document order", got, want)
	}

	if got := ExtractImages("<p>no images here</p>"); got != nil {
		t.Errorf("ExtractImages without img tags = %v, want nil", got)
	}
}

func TestNormaliseFlattensWrappedEntries(t *testing.T) {
	wrapped := json.RawMessage(`{"id": 7, "attributes": {"title": "Wrapped", "slug": "wrapped"}}`)
	entry := normalise(wrapped)
	if entry.str("title") != "Wrapped" {
		t.Errorf("title = %q, want attributes flattened", entry.str("title"))
	}
	if entry.integer("id") != 7 {
		t.Errorf("id = %d, want the outer id carried over", entry.integer("id"))
	}

	flat := json.RawMessage(`{"title": "Flat"}`)
	if normalise(flat).str("title") != "Flat" {
		t.Error("flat entries should pass through unchanged")
	}
}

func TestUnpackCollection(t *testing.T) {
	bare := json.RawMessage(`[{"a": 1}, {"a": 2}]`)
	if got := unpackCollection(bare); len(got) != 2 {
		t.Errorf("bare array unpacked to %d items, want 2", len(got))
	}

	wrapped := json.RawMessage(`{"data": [{"a": 1}]}`)
	if got := unpackCollection(wrapped); len(got) != 1 {
		t.Errorf("wrapped collection unpacked to %d items, want 1", len(got))
	}

	if got := unpackCollection(nil); got != nil {
		t.Errorf("empty input unpacked to %v, want nil", got)
	}
}

func TestRelationSlugs(t *testing.T) {
	raw := json.RawMessage(`[
		{"name": "BEAUTY", "slug": "beauty"},
		{"name": "New Trends"},
		{"irrelevant": true}
	]`)

	got := relationSlugs(raw)
	want := []string{"beauty", "new-trends"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("relationSlugs = %v, want %v", got, want)
	}
}
