package main

import (
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStores(t *testing.T) {
	issuer := auth.TokenIssuer{Secret: "secret", TTL: time.Hour}

	t.Run("memory", func(t *testing.T) {
		stores, err := newStores("memory", issuer)
		require.NoError(t, err)
		assert.NotNil(t, stores.Users)
		assert.NotNil(t, stores.Groups)
		assert.NotNil(t, stores.Posts)
		assert.NotNil(t, stores.Comments)
		assert.NotNil(t, stores.Follows)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := newStores("redis", issuer)
		assert.Error(t, err)
	})
}

func TestCommandTree(t *testing.T) {
	cmd, _, err := RootCmd.Find([]string{"group", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", cmd.Name())

	cmd, _, err = RootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, cmd.Flags().Lookup("storage"))
	assert.NotNil(t, RootCmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("group"))
}

func TestSeedGroups(t *testing.T) {
	groups := memory.NewGroupMemoryStorage()

	t.Run("creates missing groups", func(t *testing.T) {
		require.NoError(t, seedGroups(groups, []string{"cats=Cats and kittens", "dogs"}))

		cats, err := groups.GetGroupBySlug("cats")
		require.NoError(t, err)
		assert.Equal(t, "Cats and kittens", cats.Title)

		dogs, err := groups.GetGroupBySlug("dogs")
		require.NoError(t, err)
		assert.Equal(t, "dogs", dogs.Title)
	})

	t.Run("existing groups are kept", func(t *testing.T) {
		require.NoError(t, seedGroups(groups, []string{"cats=Other title"}))

		cats, err := groups.GetGroupBySlug("cats")
		require.NoError(t, err)
		assert.Equal(t, "Cats and kittens", cats.Title)

		all, err := groups.GetAllGroups()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("invalid slug", func(t *testing.T) {
		err := seedGroups(groups, []string{"bad slug=Bad"})
		assert.ErrorIs(t, err, storage.ErrInvalidSlug)
	})
}
