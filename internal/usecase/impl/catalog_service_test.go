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

func TestCatalogService_CreateTrack_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	track, err := env.catalog.CreateTrack(ctx, user.ID, &usecase.TrackInput{
		Title:           "  Blue in Green  ",
		Artist:          "Miles Davis",
		DurationSeconds: 337,
		SourceURL:       "https://cdn.example.com/blue-in-green.flac",
	})

	require.NoError(t, err)
	assert.Equal(t, "Blue in Green", track.Title)
	assert.NotEqual(t, uuid.Nil, track.ID)

	fetched, err := env.catalog.GetTrack(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, track.ID, fetched.ID)
}

func TestCatalogService_CreateTrack_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	tests := []struct {
		name  string
		input usecase.TrackInput
	}{
		{"empty title", usecase.TrackInput{Artist: "a", DurationSeconds: 1}},
		{"empty artist", usecase.TrackInput{Title: "t", DurationSeconds: 1}},
		{"zero duration", usecase.TrackInput{Title: "t", Artist: "a"}},
		{"negative duration", usecase.TrackInput{Title: "t", Artist: "a", DurationSeconds: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalog.CreateTrack(ctx, user.ID, &tt.input)
			requireErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestCatalogService_GetTrack_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.GetTrack(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrTrackNotFound)
}

func TestCatalogService_ListTracks_StableOrderAndPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")

	var ids []uuid.UUID
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		ids = append(ids, createTrack(t, env, user.ID, title).ID)
	}

	all, err := env.catalog.ListTracks(ctx, &usecase.ListTracksInput{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Two consecutive pages cover the full listing in order.
	first, err := env.catalog.ListTracks(ctx, &usecase.ListTracksInput{Limit: 3})
	require.NoError(t, err)
	second, err := env.catalog.ListTracks(ctx, &usecase.ListTracksInput{Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Len(t, second, 2)
	for i, track := range append(first, second...) {
		assert.Equal(t, all[i].ID, track.ID)
	}

	beyond, err := env.catalog.ListTracks(ctx, &usecase.ListTracksInput{Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestCatalogService_UpdateTrack_PartialFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	track := createTrack(t, env, user.ID, "original")

	title := "remastered"
	updated, err := env.catalog.UpdateTrack(ctx, user.ID, track.ID, &usecase.UpdateTrackInput{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "remastered", updated.Title)
	assert.Equal(t, track.Artist, updated.Artist, "untouched fields survive")
	assert.Equal(t, track.DurationSeconds, updated.DurationSeconds)
}

func TestCatalogService_UpdateTrack_NotFound(t *testing.T) {
	env := newTestEnv(t)
	user, _ := registerAndLogin(t, env, "alice")

	title := "ghost"
	_, err := env.catalog.UpdateTrack(context.Background(), user.ID, uuid.New(), &usecase.UpdateTrackInput{Title: &title})
	requireErrorCode(t, err, "TRACK_NOT_FOUND")
}

func TestCatalogService_DeleteTrack_NotFound(t *testing.T) {
	env := newTestEnv(t)
	user, _ := registerAndLogin(t, env, "alice")

	err := env.catalog.DeleteTrack(context.Background(), user.ID, uuid.New())
	requireErrorCode(t, err, "TRACK_NOT_FOUND")
}

func TestCatalogService_DeleteTrack_CascadesIntoPlaylists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, _ := registerAndLogin(t, env, "alice")
	doomed := createTrack(t, env, user.ID, "doomed")
	keeper := createTrack(t, env, user.ID, "keeper")

	playlist, err := env.playlists.Create(ctx, user.ID, "Mixed")
	require.NoError(t, err)
	// doomed appears twice; both occurrences must go.
	for _, trackID := range []uuid.UUID{doomed.ID, keeper.ID, doomed.ID} {
		_, err = env.playlists.AddTrack(ctx, user.ID, playlist.ID, &usecase.AddTrackInput{TrackID: trackID})
		require.NoError(t, err)
	}

	require.NoError(t, env.catalog.DeleteTrack(ctx, user.ID, doomed.ID))

	_, err = env.catalog.GetTrack(ctx, doomed.ID)
	require.ErrorIs(t, err, domainerrors.ErrTrackNotFound)

	got, err := env.playlists.Get(ctx, user.ID, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{keeper.ID}, got.TrackIDs, "gap closed, survivor kept")
}
