package memory

import (
	"context"
	"sort"

	"jukebox/internal/domain/entity"
	"jukebox/internal/domain/repository"

	"github.com/google/uuid"
)

type trackRepository struct {
	access accessFunc
}

// NewTrackRepository creates a store-backed TrackRepository.
func NewTrackRepository(store *Store) repository.TrackRepository {
	return &trackRepository{access: storeAccess(store)}
}

func (repo *trackRepository) Create(ctx context.Context, track *entity.Track) error {
	return repo.access(func(d *data) error {
		ensureID(&track.ID)
		track.CreatedAt = now()
		track.UpdatedAt = track.CreatedAt
		d.tracks[track.ID] = cloneTrack(track)

		return nil
	})
}

func (repo *trackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Track, error) {
	var found *entity.Track
	err := repo.access(func(d *data) error {
		track, ok := d.tracks[id]
		if !ok {
			return repository.ErrTrackNotFound
		}
		found = cloneTrack(track)

		return nil
	})

	return found, err
}

func (repo *trackRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Track, error) {
	var tracks []*entity.Track
	err := repo.access(func(d *data) error {
		tracks = make([]*entity.Track, 0, len(d.tracks))
		for _, track := range d.tracks {
			tracks = append(tracks, cloneTrack(track))
		}
		sort.Slice(tracks, func(i, j int) bool {
			if !tracks[i].CreatedAt.Equal(tracks[j].CreatedAt) {
				return tracks[i].CreatedAt.Before(tracks[j].CreatedAt)
			}

			return tracks[i].ID.String() < tracks[j].ID.String()
		})

		if opts.Offset > 0 {
			if opts.Offset >= len(tracks) {
				tracks = nil
				return nil
			}
			tracks = tracks[opts.Offset:]
		}
		if opts.Limit > 0 && opts.Limit < len(tracks) {
			tracks = tracks[:opts.Limit]
		}

		return nil
	})

	return tracks, err
}

func (repo *trackRepository) Update(ctx context.Context, track *entity.Track) error {
	return repo.access(func(d *data) error {
		stored, ok := d.tracks[track.ID]
		if !ok {
			return repository.ErrTrackNotFound
		}

		track.CreatedAt = stored.CreatedAt
		track.UpdatedAt = now()
		d.tracks[track.ID] = cloneTrack(track)

		return nil
	})
}

func (repo *trackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.access(func(d *data) error {
		if _, ok := d.tracks[id]; !ok {
			return repository.ErrTrackNotFound
		}
		delete(d.tracks, id)

		return nil
	})
}
