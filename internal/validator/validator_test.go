package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingPayload struct {
	Title    string `json:"title" validate:"required,min=3"`
	PostType string `json:"post_type" validate:"required,is-post-type"`
	WorkType string `json:"work_type" validate:"omitempty,is-work-type"`
}

type templatePayload struct {
	TemplateID string `json:"template_id" validate:"required,is-cv-template"`
	Slug       string `json:"slug" validate:"omitempty,is-slug"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&listingPayload{Title: "مطور Go", PostType: "seeking_worker", WorkType: "remote"})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&listingPayload{Title: "ab", PostType: "hiring", WorkType: "weekends"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "title")
	assert.Equal(t, "Must be one of: seeking_worker, seeking_job", vErr.Errors["post_type"])
	assert.Contains(t, vErr.Errors, "work_type")
}

func TestValidate_TemplateAndSlug(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&templatePayload{TemplateID: "arabic_rtl", Slug: "work-visa-guide"}))

	err := v.Validate(&templatePayload{TemplateID: "fancy", Slug: "Bad Slug"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "Unknown CV template", vErr.Errors["template_id"])
	assert.Contains(t, vErr.Errors, "slug")
}

func TestValidationError_MessageIsStable(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}
