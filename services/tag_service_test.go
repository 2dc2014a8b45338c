package services

import (
	"testing"
	"time"

	"blogapp/global"
	"blogapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags_WithCounts(t *testing.T) {
	setupDB(t)
	b := seedTag(t, "beta")
	a := seedTag(t, "alpha")
	seedTag(t, "unused")
	seedArticle(t, "one", date(2024, time.January, 1), a, b)
	seedArticle(t, "two", date(2024, time.January, 2), a)

	tags, err := ListTags(bg)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, models.TagWithCount{ID: a.ID, Name: "alpha", ArticleCount: 2}, tags[0])
	assert.Equal(t, models.TagWithCount{ID: b.ID, Name: "beta", ArticleCount: 1}, tags[1])
	assert.Equal(t, int64(0), tags[2].ArticleCount)
}

func TestPopularTags(t *testing.T) {
	setupDB(t)
	a := seedTag(t, "a")
	b := seedTag(t, "b")
	c := seedTag(t, "c")
	seedTag(t, "unused")
	seedArticle(t, "1", date(2024, time.January, 1), a, b, c)
	seedArticle(t, "2", date(2024, time.January, 2), b, c)
	seedArticle(t, "3", date(2024, time.January, 3), c)

	tags, err := PopularTags(bg, 2)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "c", tags[0].Name)
	assert.Equal(t, int64(3), tags[0].ArticleCount)
	assert.Equal(t, "b", tags[1].Name)

	all, err := PopularTags(bg, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateTag(t *testing.T) {
	setupDB(t)

	tag, err := CreateTag(bg, "  golang ")
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Name)
	assert.NotZero(t, tag.ID)

	_, err = CreateTag(bg, "golang")
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = CreateTag(bg, " ")
	assert.ErrorIs(t, err, ErrEmptyTagName)
}

func TestDeleteTag(t *testing.T) {
	setupDB(t)
	tag := seedTag(t, "golang")
	a := seedArticle(t, "post", date(2024, time.January, 1), tag)

	require.NoError(t, DeleteTag(bg, tag.ID))

	_, err := GetTag(bg, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	got, err := GetArticle(bg, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TagIDs)

	var links int64
	global.Db.Model(&models.ArticleTag{}).Count(&links)
	assert.Zero(t, links)

	assert.ErrorIs(t, DeleteTag(bg, tag.ID), ErrTagNotFound)
}

func TestAllTags(t *testing.T) {
	setupDB(t)
	seedTag(t, "zeta")
	seedTag(t, "alpha")

	tags, err := AllTags(bg)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Name)
}
