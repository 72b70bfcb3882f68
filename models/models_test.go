package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_String(t *testing.T) {
	t.Run("Long text is cut to the preview length", func(t *testing.T) {
		post := Post{Text: strings.Repeat("a", 40)}
		assert.Equal(t, strings.Repeat("a", PostPreviewLength), post.String())
	})

	t.Run("Short text is returned as is", func(t *testing.T) {
		post := Post{Text: "short"}
		assert.Equal(t, "short", post.String())
	})

	t.Run("Cut counts characters, not bytes", func(t *testing.T) {
		post := Post{Text: "Тестовая группа и ещё немного текста"}
		assert.Equal(t, "Тестовая группа", post.String())
	})
}

func TestGroup_String(t *testing.T) {
	group := Group{Title: "Тестовая группа", Slug: "test"}
	assert.Equal(t, "Тестовая группа", group.String())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Leo Tolstoy", (&User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}).FullName())
	assert.Equal(t, "Leo", (&User{Username: "leo", FirstName: "Leo"}).FullName())
	assert.Equal(t, "leo", (&User{Username: "leo"}).FullName())
}
