package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopkit/shopkit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "Acme Shop", "acme-shop"},
		{"already a slug", "acme-shop", "acme-shop"},
		{"diacritics folded", "Café Münchner", "cafe-munchner"},
		{"symbols collapse to single hyphen", "Acme & Co.", "acme-co"},
		{"leading and trailing junk trimmed", "  --Acme--  ", "acme"},
		{"digits kept", "Shop 24/7", "shop-24-7"},
		{"all symbols yields empty", "!!!", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input))
		})
	}
}

func TestMakeTruncatesToDNSLabel(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 100)
	got := slug.Make(long)
	assert.Len(t, got, slug.MaxLength)
	assert.True(t, slug.IsValid(got))
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"acme", true},
		{"acme-shop", true},
		{"shop24", true},
		{"24shop", true},
		{"a", true},
		{"", false},
		{"ACME", false},
		{"acme shop", false},
		{"-acme", false},
		{"acme-", false},
		{"acme--shop", false},
		{"acme_shop", false},
		{"acmé", false},
		{strings.Repeat("a", 64), false},
		{strings.Repeat("a", 63), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.IsValid(tt.input))
		})
	}
}
