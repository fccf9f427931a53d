package slug_test

import (
	"testing"

	"github.com/hfz-r/piranha.core/slug"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"already slugged", "hello-world", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"multiple spaces", "too   many   spaces", "too-many-spaces"},
		{"leading trailing", "  padded  ", "padded"},
		{"diacritics", "Smörgåsbord café", "smorgasbord-cafe"},
		{"sharp s", "Straße", "strasse"},
		{"digits", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"hierarchical", "blog/2026/My Post", "blog/2026/my-post"},
		{"trailing slash", "blog/", "blog"},
		{"underscores", "snake_case_title", "snake-case-title"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
		{"mixed case", "CamelCaseTitle", "camelcasetitle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slug.Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
