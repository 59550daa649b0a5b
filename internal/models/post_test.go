package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortPostsByLastUpdated(t *testing.T) {
	now := time.Now()
	posts := []Post{
		{Text: "old", DateLastUpdated: now.Add(-2 * time.Hour)},
		{Text: "new", DateLastUpdated: now},
		{Text: "middle", DateLastUpdated: now.Add(-1 * time.Hour)},
	}
	SortPostsByLastUpdated(posts)

	assert.Equal(t, "new", posts[0].Text)
	assert.Equal(t, "middle", posts[1].Text)
	assert.Equal(t, "old", posts[2].Text)
}

func TestSortPostsByLastUpdatedStable(t *testing.T) {
	now := time.Now()
	posts := []Post{
		{Text: "first", DateLastUpdated: now},
		{Text: "second", DateLastUpdated: now},
		{Text: "third", DateLastUpdated: now},
	}
	SortPostsByLastUpdated(posts)

	// Identical timestamps keep their input order.
	assert.Equal(t, "first", posts[0].Text)
	assert.Equal(t, "second", posts[1].Text)
	assert.Equal(t, "third", posts[2].Text)
}

func TestSortFriendPostsByLastUpdated(t *testing.T) {
	now := time.Now()
	posts := []FriendPost{
		{Post: Post{Text: "old", DateLastUpdated: now.Add(-time.Hour)}},
		{Post: Post{Text: "new", DateLastUpdated: now}},
	}
	SortFriendPostsByLastUpdated(posts)

	assert.Equal(t, "new", posts[0].Text)
	assert.Equal(t, "old", posts[1].Text)
}
