package models

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Beauty Tips", "beauty-tips"},
		{"BEAUTY", "beauty"},
		{"already-sluggy", "already-sluggy"},
		{"  padded   name  ", "padded-name"},
		{"Summer  Hair   Care", "summer-hair-care"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFoldRelation(t *testing.T) {
	if got := FoldRelation("beauty", []string{"trends", "career"}); !reflect.DeepEqual(got, []string{"beauty"}) {
		t.Errorf("singular should win: got %v", got)
	}
	if got := FoldRelation("", []string{"trends"}); !reflect.DeepEqual(got, []string{"trends"}) {
		t.Errorf("empty singular should keep plural: got %v", got)
	}
	if got := FoldRelation("", nil); got != nil {
		t.Errorf("nothing in, nothing out: got %v", got)
	}
}
