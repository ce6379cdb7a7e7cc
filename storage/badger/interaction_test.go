package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/tenderfeed/core"
	"github.com/poiesic/tenderfeed/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertInteraction_UpdatesInPlace(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	first := time.Now().UTC().Truncate(time.Microsecond)
	_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{
		UserId: 1, TenderId: 2, Type: core.InteractionSave, Reason: "first", UpdatedAt: first,
	})
	require.NoError(t, err)

	second := first.Add(time.Minute)
	_, err = repos.Interactions.UpsertInteraction(ctx, &core.Interaction{
		UserId: 1, TenderId: 2, Type: core.InteractionSave, Reason: "second", UpdatedAt: second,
	})
	require.NoError(t, err)

	all, err := repos.Interactions.ListUserInteractions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Reason)
	assert.True(t, second.Equal(all[0].UpdatedAt))
	assert.True(t, first.Equal(all[0].CreatedAt), "creation time survives updates")
	assert.Equal(t, core.InteractionID(1, 2, core.InteractionSave), all[0].Id)
}

func TestUpsertInteraction_TypesCoexist(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	for _, it := range []core.InteractionType{core.InteractionView, core.InteractionSave, core.InteractionApply} {
		_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 1, TenderId: 2, Type: it})
		require.NoError(t, err)
	}
	// Another user's interaction is listed separately
	_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 9, TenderId: 2, Type: core.InteractionView})
	require.NoError(t, err)

	all, err := repos.Interactions.ListUserInteractions(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := repos.Interactions.GetInteraction(ctx, 1, 2, core.InteractionApply)
	require.NoError(t, err)
	assert.Equal(t, core.InteractionApply, got.Type)

	_, err = repos.Interactions.GetInteraction(ctx, 1, 2, core.InteractionDismiss)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpsertInteraction_InvalidType(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Interactions.UpsertInteraction(context.Background(), &core.Interaction{UserId: 1, TenderId: 2, Type: "like"})
	assert.ErrorIs(t, err, core.ErrInvalidInteractionType)
}

func TestDismissedTenderIDs(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	upsert := func(user, tender core.ID, it core.InteractionType) {
		_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: user, TenderId: tender, Type: it})
		require.NoError(t, err)
	}
	upsert(1, 10, core.InteractionDismiss)
	upsert(1, 11, core.InteractionSave)
	upsert(1, 12, core.InteractionDismiss)
	upsert(2, 13, core.InteractionDismiss)

	dismissed, err := repos.Interactions.DismissedTenderIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[core.ID]struct{}{10: {}, 12: {}}, dismissed)

	require.NoError(t, repos.Interactions.DeleteInteraction(ctx, 1, 10, core.InteractionDismiss))
	dismissed, err = repos.Interactions.DismissedTenderIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[core.ID]struct{}{12: {}}, dismissed)

	none, err := repos.Interactions.DismissedTenderIDs(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHasInteraction(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 1, TenderId: 5, Type: core.InteractionSave})
	require.NoError(t, err)
	_, err = repos.Interactions.UpsertInteraction(ctx, &core.Interaction{UserId: 1, TenderId: 6, Type: core.InteractionView})
	require.NoError(t, err)

	has, err := repos.Interactions.HasInteraction(ctx, 5, core.InteractionSave)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repos.Interactions.HasInteraction(ctx, 6, core.InteractionSave)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, repos.Interactions.DeleteInteraction(ctx, 1, 5, core.InteractionSave))
	has, err = repos.Interactions.HasInteraction(ctx, 5, core.InteractionSave)
	require.NoError(t, err)
	assert.False(t, has)

	err = repos.Interactions.DeleteInteraction(ctx, 1, 5, core.InteractionSave)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInteractionKeys(t *testing.T) {
	key := makeInteractionKey(3, 4, core.InteractionRatePositive)
	tenderID, it, ok := parseInteractionKey(key)
	require.True(t, ok)
	assert.Equal(t, core.ID(4), tenderID)
	assert.Equal(t, core.InteractionRatePositive, it)

	// The type terminator keeps "save" from matching a longer type name
	prefix := makeTenderTypePrefix(4, "save")
	other := makeTenderIndexKey(4, "save_extra", 3)
	assert.NotEqual(t, prefix, other[:len(prefix)])
}
