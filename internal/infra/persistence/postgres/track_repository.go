package postgres

import (
	"context"

	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/repository"
	"jukebox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// trackRepository implements repository.TrackRepository using GORM.
type trackRepository struct {
	db *gorm.DB
}

// NewTrackRepository is the constructor for trackRepository.
func NewTrackRepository(db *gorm.DB) repository.TrackRepository {
	return &trackRepository{db: db}
}

// Create persists a new track.
func (repo *trackRepository) Create(ctx context.Context, track *entity.Track) error {
	trackM := fromTrackDomain(track)

	if err := repo.db.WithContext(ctx).Create(trackM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create track")
	}

	track.ID = trackM.ID
	track.CreatedAt = trackM.CreatedAt
	track.UpdatedAt = trackM.UpdatedAt

	return nil
}

// FindByID retrieves a single track by its unique ID.
func (repo *trackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Track, error) {
	var trackM model.TrackModel
	if err := repo.db.WithContext(ctx).First(&trackM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTrackNotFound
		}

		return nil, errors.Wrap(err, "failed to find track by id")
	}

	return toTrackDomain(&trackM), nil
}

// List returns tracks ordered by creation time then ID, so pagination over
// concurrent inserts stays stable.
func (repo *trackRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Track, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.TrackModel{}).
		Order("created_at ASC, id ASC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var trackModels []*model.TrackModel
	if err := query.Find(&trackModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tracks")
	}

	tracks := make([]*entity.Track, 0, len(trackModels))
	for _, trackM := range trackModels {
		tracks = append(tracks, toTrackDomain(trackM))
	}

	return tracks, nil
}

// Update modifies an existing track's metadata.
func (repo *trackRepository) Update(ctx context.Context, track *entity.Track) error {
	trackM := fromTrackDomain(track)

	if err := repo.db.WithContext(ctx).Save(trackM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update track")
	}

	track.UpdatedAt = trackM.UpdatedAt

	return nil
}

// Delete removes a track row. Playlist references are removed by the caller
// within the same transaction before this runs; the RESTRICT constraint on
// playlist_tracks backs that ordering.
func (repo *trackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.TrackModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete track")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTrackNotFound
	}

	return nil
}

// --- Mapper functions ---

func toTrackDomain(data *model.TrackModel) *entity.Track {
	if data == nil {
		return nil
	}

	return &entity.Track{
		ID:              data.ID,
		Title:           data.Title,
		Artist:          data.Artist,
		DurationSeconds: data.DurationSeconds,
		SourceURL:       data.SourceURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromTrackDomain(data *entity.Track) *model.TrackModel {
	if data == nil {
		return nil
	}

	return &model.TrackModel{
		ID:              data.ID,
		Title:           data.Title,
		Artist:          data.Artist,
		DurationSeconds: data.DurationSeconds,
		SourceURL:       data.SourceURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
