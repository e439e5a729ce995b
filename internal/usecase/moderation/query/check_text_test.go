package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/usecase/moderation/query"
)

func TestCheckTextQuery_Execute_ReportsEveryCategory(t *testing.T) {
	q := query.NewCheckTextQuery(moderation.NewDefaultModerator())

	out := q.Execute(query.CheckTextInput{Text: "Call me at 5551234567 or visit http://evil.example"})

	require.True(t, out.Violating)
	var categories []moderation.Category
	for _, v := range out.Violations {
		categories = append(categories, v.Category)
		assert.NotEmpty(t, v.Message)
	}
	assert.Equal(t, []moderation.Category{moderation.CategoryPhoneNumber, moderation.CategoryExternalURL}, categories)
}

func TestCheckTextQuery_Execute_CleanText_NotViolating(t *testing.T) {
	q := query.NewCheckTextQuery(moderation.NewDefaultModerator())

	out := q.Execute(query.CheckTextInput{Text: "I finished the fractions lesson!"})

	assert.False(t, out.Violating)
	assert.Empty(t, out.Violations)
}

func TestCheckTextQuery_Execute_AdvisoryDoesNotBlock(t *testing.T) {
	q := query.NewCheckTextQuery(moderation.NewDefaultModerator())

	out := q.Execute(query.CheckTextInput{Text: "this is a secret"})

	assert.False(t, out.Violating)
	assert.NotEmpty(t, out.Advisories)
}

func TestCheckTextQuery_ExecuteFields_OnlyViolatingFields(t *testing.T) {
	q := query.NewCheckTextQuery(moderation.NewDefaultModerator())

	out := q.ExecuteFields([]moderation.Field{
		{Path: "title", Text: "My answer"},
		{Path: "body", Text: "<script>alert(1)</script>"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, moderation.CategoryScriptTag, out["body"][0].Category)
}

func TestCheckTextQuery_ExecuteFields_SamePathCheckedEveryTime(t *testing.T) {
	q := query.NewCheckTextQuery(moderation.NewDefaultModerator())

	out := q.ExecuteFields([]moderation.Field{
		{Path: "msg.text", Text: "hello"},
		{Path: "msg.text", Text: "call me at 5551234567"},
	})

	require.Len(t, out["msg.text"], 1)
	assert.Equal(t, moderation.CategoryPhoneNumber, out["msg.text"][0].Category)
}

func TestGetAdvisoryRulesQuery_Execute_ReturnsPublishedTerms(t *testing.T) {
	rules := query.NewGetAdvisoryRulesQuery(moderation.NewDefaultModerator()).Execute()

	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.NotEmpty(t, r.Term)
		assert.NotEmpty(t, r.Category)
	}
}
