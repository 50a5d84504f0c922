package impl

import (
	"context"
	"testing"

	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPlaylistService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	playlist, err := env.playlists.Create(ctx, user.ID, "  Night Drive  ")
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", playlist.Name)
	assert.Equal(t, user.ID, playlist.OwnerID)
	assert.Empty(t, playlist.TrackIDs)

	got, err := env.playlists.Get(ctx, user.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, got.ID)
}

func TestPlaylistService_Create_EmptyName(t *testing.T) {
	env := newTestEnv(t)
	user, _ := registerAndLogin(t, env, "alice")

	_, err := env.playlists.Create(context.Background(), user.ID, "   ")
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestPlaylistService_Get_AnyAuthenticatedCaller(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := registerAndLogin(t, env, "alice")
	bob, _ := registerAndLogin(t, env, "bob")

	playlist, err := env.playlists.Create(ctx, alice.ID, "Shared Taste")
	require.NoError(t, err)

	got, err := env.playlists.Get(ctx, bob.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, got.ID)
}

func TestPlaylistService_AddTrack_AppendAndPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")
	t3 := createTrack(t, env, user.ID, "t3")

	playlist, err := env.playlists.Create(ctx, user.ID, "Build")
	require.NoError(t, err)

	// Append, append, then insert at the front.
	_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t1.ID})
	require.NoError(t, err)
	_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t2.ID})
	require.NoError(t, err)
	got, err := env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t3.ID, Position: intPtr(0)})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{t3.ID, t1.ID, t2.ID}, got.TrackIDs)
}

func TestPlaylistService_AddTrack_OutOfRangePositionClamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")

	playlist, err := env.playlists.Create(ctx, user.ID, "Clamp")
	require.NoError(t, err)

	_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t1.ID, Position: intPtr(99)})
	require.NoError(t, err)
	got, err := env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t2.ID, Position: intPtr(-5)})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{t2.ID, t1.ID}, got.TrackIDs)
}

func TestPlaylistService_AddTrack_DuplicatesAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")

	playlist, err := env.playlists.Create(ctx, user.ID, "On Repeat")
	require.NoError(t, err)

	_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t1.ID})
	require.NoError(t, err)
	got, err := env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: t1.ID})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{t1.ID, t1.ID}, got.TrackIDs)
}

func TestPlaylistService_AddTrack_UnknownTrack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	playlist, err := env.playlists.Create(ctx, user.ID, "Empty")
	require.NoError(t, err)

	_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: uuid.New()})
	requireErrorCode(t, err, "TRACK_NOT_FOUND")

	got, err := env.playlists.Get(ctx, user.ID, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TrackIDs, "failed insert changes nothing")
}

func TestPlaylistService_RemoveTrack_FirstOccurrence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")

	playlist, err := env.playlists.Create(ctx, user.ID, "Dupes")
	require.NoError(t, err)
	for _, trackID := range []uuid.UUID{t1.ID, t2.ID, t1.ID} {
		_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: trackID})
		require.NoError(t, err)
	}

	got, err := env.playlists.RemoveTrack(ctx, user.ID, playlist.ID, &usecase.RemoveTrackInput{TrackID: t1.ID})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{t2.ID, t1.ID}, got.TrackIDs, "only the first occurrence goes")
}

func TestPlaylistService_RemoveTrack_PinnedPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")

	playlist, err := env.playlists.Create(ctx, user.ID, "Pinned")
	require.NoError(t, err)
	for _, trackID := range []uuid.UUID{t1.ID, t2.ID, t1.ID} {
		_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: trackID})
		require.NoError(t, err)
	}

	// Position 2 holds t1; removing (t1, 2) keeps the first occurrence.
	got, err := env.playlists.RemoveTrack(ctx, user.ID, playlist.ID, &usecase.RemoveTrackInput{TrackID: t1.ID, Position: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{t1.ID, t2.ID}, got.TrackIDs)

	// A position not holding the track is a miss, and nothing changes.
	_, err = env.playlists.RemoveTrack(ctx, user.ID, playlist.ID, &usecase.RemoveTrackInput{TrackID: t1.ID, Position: intPtr(1)})
	requireErrorCode(t, err, "TRACK_NOT_IN_PLAYLIST")
}

func TestPlaylistService_RemoveTrack_Absent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	playlist, err := env.playlists.Create(ctx, user.ID, "Empty")
	require.NoError(t, err)

	_, err = env.playlists.RemoveTrack(ctx, user.ID, playlist.ID, &usecase.RemoveTrackInput{TrackID: uuid.New()})
	requireErrorCode(t, err, "TRACK_NOT_IN_PLAYLIST")
}

func TestPlaylistService_Update_Rename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	playlist, err := env.playlists.Create(ctx, user.ID, "Old Name")
	require.NoError(t, err)

	name := "New Name"
	got, err := env.playlists.Update(ctx, user.ID, playlist.ID, &usecase.UpdatePlaylistInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestPlaylistService_Update_ReorderPermutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")
	t3 := createTrack(t, env, user.ID, "t3")

	playlist, err := env.playlists.Create(ctx, user.ID, "Order")
	require.NoError(t, err)
	for _, trackID := range []uuid.UUID{t1.ID, t2.ID, t3.ID} {
		_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: trackID})
		require.NoError(t, err)
	}

	reordered := []uuid.UUID{t3.ID, t1.ID, t2.ID}
	got, err := env.playlists.Update(ctx, user.ID, playlist.ID, &usecase.UpdatePlaylistInput{TrackIDs: reordered})
	require.NoError(t, err)
	assert.Equal(t, reordered, got.TrackIDs)
}

func TestPlaylistService_Update_ReorderNotPermutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	t1 := createTrack(t, env, user.ID, "t1")
	t2 := createTrack(t, env, user.ID, "t2")

	playlist, err := env.playlists.Create(ctx, user.ID, "Strict")
	require.NoError(t, err)
	// t1 twice, t2 once: the multiset matters, not just membership.
	for _, trackID := range []uuid.UUID{t1.ID, t1.ID, t2.ID} {
		_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: trackID})
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		order []uuid.UUID
	}{
		{"wrong length", []uuid.UUID{t1.ID, t2.ID}},
		{"wrong multiplicity", []uuid.UUID{t2.ID, t2.ID, t1.ID}},
		{"foreign track", []uuid.UUID{t1.ID, t2.ID, uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.playlists.Update(ctx, user.ID, playlist.ID, &usecase.UpdatePlaylistInput{TrackIDs: tt.order})
			requireErrorCode(t, err, "REORDER_NOT_PERMUTATION")
		})
	}

	got, err := env.playlists.Get(ctx, user.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{t1.ID, t1.ID, t2.ID}, got.TrackIDs, "rejected reorders change nothing")
}

func TestPlaylistService_Mutations_ForeignCallerForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := registerAndLogin(t, env, "alice")
	bob, _ := registerAndLogin(t, env, "bob")
	track := createTrack(t, env, alice.ID, "t1")

	playlist, err := env.playlists.Create(ctx, alice.ID, "Alice Only")
	require.NoError(t, err)

	name := "Bob Was Here"
	_, err = env.playlists.Update(ctx, bob.ID, playlist.ID, &usecase.UpdatePlaylistInput{Name: &name})
	requireErrorCode(t, err, "FORBIDDEN")

	_, err = env.playlists.AddTrack(ctx, bob.ID, playlist.ID, &usecase.AddTrackInput{TrackID: track.ID})
	requireErrorCode(t, err, "FORBIDDEN")

	err = env.playlists.Delete(ctx, bob.ID, playlist.ID)
	requireErrorCode(t, err, "FORBIDDEN")

	got, err := env.playlists.Get(ctx, alice.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Only", got.Name)
	assert.Empty(t, got.TrackIDs)
}

func TestPlaylistService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	playlist, err := env.playlists.Create(ctx, user.ID, "Short Lived")
	require.NoError(t, err)

	require.NoError(t, env.playlists.Delete(ctx, user.ID, playlist.ID))

	_, err = env.playlists.Get(ctx, user.ID, playlist.ID)
	require.ErrorIs(t, err, domainerrors.ErrPlaylistNotFound)

	err = env.playlists.Delete(ctx, user.ID, playlist.ID)
	requireErrorCode(t, err, "PLAYLIST_NOT_FOUND")
}

func TestPlaylistService_ListForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice, _ := registerAndLogin(t, env, "alice")
	bob, _ := registerAndLogin(t, env, "bob")

	first, err := env.playlists.Create(ctx, alice.ID, "First")
	require.NoError(t, err)
	second, err := env.playlists.Create(ctx, alice.ID, "Second")
	require.NoError(t, err)
	_, err = env.playlists.Create(ctx, bob.ID, "Bob's")
	require.NoError(t, err)

	got, err := env.playlists.ListForUser(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, []uuid.UUID{got[0].ID, got[1].ID})
}

func TestPlaylistService_ListForUser_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	user, _ := registerAndLogin(t, env, "alice")

	_, err := env.playlists.ListForUser(context.Background(), user.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
