package content

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	require.NotEmpty(t, lib.Categories())
	for _, c := range lib.Categories() {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.NameAr)
		assert.NotEmpty(t, c.NameEn)
	}

	slug := regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	articles := lib.Articles()
	require.NotEmpty(t, articles)
	for i, a := range articles {
		assert.Regexp(t, slug, a.Slug)
		assert.Empty(t, a.Body, "list view has no body")
		assert.False(t, a.PublishedAt().IsZero(), a.Slug)
		if i > 0 {
			assert.GreaterOrEqual(t, articles[i-1].Date, a.Date)
		}
	}
}

func TestArticleLookup(t *testing.T) {
	lib := MustLoad()

	a, ok := lib.Article("how-to-write-a-cv")
	require.True(t, ok)
	assert.NotEmpty(t, a.Body)

	_, ok = lib.Article("missing")
	assert.False(t, ok)
}

func TestCategoryLookup(t *testing.T) {
	lib := MustLoad()

	c, ok := lib.Category("technology")
	require.True(t, ok)
	assert.Equal(t, "Technology & Software", c.NameEn)
}

func TestPublishedAt_Malformed(t *testing.T) {
	assert.True(t, Article{Date: "yesterday"}.PublishedAt().IsZero())
}
