package memory

import (
	"context"
	"slices"
	"sort"

	"jukebox/internal/domain/entity"
	"jukebox/internal/domain/repository"

	"github.com/google/uuid"
)

type playlistRepository struct {
	access accessFunc
}

// NewPlaylistRepository creates a store-backed PlaylistRepository.
func NewPlaylistRepository(store *Store) repository.PlaylistRepository {
	return &playlistRepository{access: storeAccess(store)}
}

func (repo *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	return repo.access(func(d *data) error {
		ensureID(&playlist.ID)
		playlist.CreatedAt = now()
		playlist.UpdatedAt = playlist.CreatedAt
		d.playlists[playlist.ID] = clonePlaylist(playlist)

		return nil
	})
}

func (repo *playlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	var found *entity.Playlist
	err := repo.access(func(d *data) error {
		playlist, ok := d.playlists[id]
		if !ok {
			return repository.ErrPlaylistNotFound
		}
		found = clonePlaylist(playlist)

		return nil
	})

	return found, err
}

// FindByIDForUpdate is equivalent to FindByID here: transactions already
// hold the store lock, so membership edits are serialized store-wide.
func (repo *playlistRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	return repo.FindByID(ctx, id)
}

func (repo *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	var playlists []*entity.Playlist
	err := repo.access(func(d *data) error {
		for _, playlist := range d.playlists {
			if playlist.OwnerID == ownerID {
				playlists = append(playlists, clonePlaylist(playlist))
			}
		}
		sort.Slice(playlists, func(i, j int) bool {
			if !playlists[i].CreatedAt.Equal(playlists[j].CreatedAt) {
				return playlists[i].CreatedAt.Before(playlists[j].CreatedAt)
			}

			return playlists[i].ID.String() < playlists[j].ID.String()
		})

		return nil
	})

	return playlists, err
}

func (repo *playlistRepository) Update(ctx context.Context, playlist *entity.Playlist) error {
	return repo.access(func(d *data) error {
		stored, ok := d.playlists[playlist.ID]
		if !ok {
			return repository.ErrPlaylistNotFound
		}
		for _, trackID := range playlist.TrackIDs {
			if _, exists := d.tracks[trackID]; !exists {
				return repository.ErrTrackNotFound
			}
		}

		playlist.CreatedAt = stored.CreatedAt
		playlist.UpdatedAt = now()
		d.playlists[playlist.ID] = clonePlaylist(playlist)

		return nil
	})
}

func (repo *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.access(func(d *data) error {
		if _, ok := d.playlists[id]; !ok {
			return repository.ErrPlaylistNotFound
		}
		delete(d.playlists, id)

		return nil
	})
}

func (repo *playlistRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return repo.access(func(d *data) error {
		for id, playlist := range d.playlists {
			if playlist.OwnerID == ownerID {
				delete(d.playlists, id)
			}
		}

		return nil
	})
}

func (repo *playlistRepository) RemoveTrackEverywhere(ctx context.Context, trackID uuid.UUID) ([]uuid.UUID, error) {
	var affected []uuid.UUID
	err := repo.access(func(d *data) error {
		for id, playlist := range d.playlists {
			if !slices.Contains(playlist.TrackIDs, trackID) {
				continue
			}

			remaining := make([]uuid.UUID, 0, len(playlist.TrackIDs))
			for _, candidate := range playlist.TrackIDs {
				if candidate != trackID {
					remaining = append(remaining, candidate)
				}
			}
			playlist.TrackIDs = remaining
			playlist.UpdatedAt = now()
			affected = append(affected, id)
		}

		return nil
	})

	return affected, err
}
