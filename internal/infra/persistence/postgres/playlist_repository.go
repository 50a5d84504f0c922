package postgres

import (
	"context"
	"sort"

	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/repository"
	"jukebox/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// playlistRepository implements repository.PlaylistRepository using GORM.
// Membership is stored one row per position in playlist_tracks and always
// rewritten as a whole, so positions stay contiguous.
type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository is the constructor for playlistRepository.
func NewPlaylistRepository(db *gorm.DB) repository.PlaylistRepository {
	return &playlistRepository{db: db}
}

// Create persists a new, empty playlist.
func (repo *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	playlistM := &model.PlaylistModel{
		ID:      playlist.ID,
		Name:    playlist.Name,
		OwnerID: playlist.OwnerID,
	}

	if err := repo.db.WithContext(ctx).Create(playlistM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create playlist")
	}

	playlist.ID = playlistM.ID
	playlist.CreatedAt = playlistM.CreatedAt
	playlist.UpdatedAt = playlistM.UpdatedAt

	return nil
}

// FindByID retrieves a playlist with its ordered membership.
func (repo *playlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	return repo.findByID(ctx, id, false)
}

// FindByIDForUpdate retrieves a playlist holding its row lock for the
// duration of the surrounding transaction, serializing concurrent
// membership edits on the same playlist.
func (repo *playlistRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	return repo.findByID(ctx, id, true)
}

func (repo *playlistRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Playlist, error) {
	query := repo.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var playlistM model.PlaylistModel
	if err := query.First(&playlistM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlaylistNotFound
		}

		return nil, errors.Wrap(err, "failed to find playlist by id")
	}

	entries, err := repo.loadEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	playlistM.Entries = entries

	return toPlaylistDomain(&playlistM), nil
}

func (repo *playlistRepository) loadEntries(ctx context.Context, playlistID uuid.UUID) ([]*model.PlaylistEntryModel, error) {
	var entries []*model.PlaylistEntryModel
	if err := repo.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load playlist entries")
	}

	return entries, nil
}

// ListByOwner returns a user's playlists ordered by creation time then ID.
func (repo *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	var playlistModels []*model.PlaylistModel
	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&playlistModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list playlists")
	}

	playlists := make([]*entity.Playlist, 0, len(playlistModels))
	for _, playlistM := range playlistModels {
		entries, err := repo.loadEntries(ctx, playlistM.ID)
		if err != nil {
			return nil, err
		}
		playlistM.Entries = entries
		playlists = append(playlists, toPlaylistDomain(playlistM))
	}

	return playlists, nil
}

// Update persists the playlist's name and full membership order. The
// membership rows are rewritten wholesale, which keeps positions contiguous
// and makes reorder a single atomic replace.
func (repo *playlistRepository) Update(ctx context.Context, playlist *entity.Playlist) error {
	db := repo.db.WithContext(ctx)

	result := db.Model(&model.PlaylistModel{}).
		Where("id = ?", playlist.ID).
		Update("name", playlist.Name)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update playlist")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlaylistNotFound
	}

	if err := db.Delete(&model.PlaylistEntryModel{}, "playlist_id = ?", playlist.ID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear playlist entries")
	}

	if len(playlist.TrackIDs) > 0 {
		entries := make([]*model.PlaylistEntryModel, 0, len(playlist.TrackIDs))
		for position, trackID := range playlist.TrackIDs {
			entries = append(entries, &model.PlaylistEntryModel{
				PlaylistID: playlist.ID,
				Position:   position,
				TrackID:    trackID,
			})
		}
		if err := db.Create(&entries).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrTrackNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to write playlist entries")
		}
	}

	return nil
}

// Delete removes a playlist and its membership rows.
func (repo *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Delete(&model.PlaylistEntryModel{}, "playlist_id = ?", id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete playlist entries")
	}

	result := db.Delete(&model.PlaylistModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete playlist")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// DeleteByOwner removes every playlist owned by a user.
func (repo *playlistRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.
		Where("playlist_id IN (?)", db.Model(&model.PlaylistModel{}).Select("id").Where("owner_id = ?", ownerID)).
		Delete(&model.PlaylistEntryModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete playlist entries")
	}

	if err := db.Delete(&model.PlaylistModel{}, "owner_id = ?", ownerID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete playlists")
	}

	return nil
}

// RemoveTrackEverywhere deletes all occurrences of trackID from every
// playlist and closes the position gaps. Runs inside the caller's
// transaction so the catalog delete that follows is atomic with it.
func (repo *playlistRepository) RemoveTrackEverywhere(ctx context.Context, trackID uuid.UUID) ([]uuid.UUID, error) {
	db := repo.db.WithContext(ctx)

	var affected []uuid.UUID
	if err := db.Model(&model.PlaylistEntryModel{}).
		Distinct("playlist_id").
		Where("track_id = ?", trackID).
		Pluck("playlist_id", &affected).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find playlists referencing track")
	}
	if len(affected) == 0 {
		return nil, nil
	}

	// Lock the affected playlists in a stable order so this cascade cannot
	// deadlock against per-playlist edits.
	sort.Slice(affected, func(i, j int) bool { return affected[i].String() < affected[j].String() })
	var locked []*model.PlaylistModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", affected).
		Order("id ASC").
		Find(&locked).Error; err != nil {
		return nil, errors.Wrap(err, "failed to lock playlists for cascade")
	}

	for _, playlistID := range affected {
		entries, err := repo.loadEntries(ctx, playlistID)
		if err != nil {
			return nil, err
		}

		remaining := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			if entry.TrackID != trackID {
				remaining = append(remaining, entry.TrackID)
			}
		}

		if err := db.Delete(&model.PlaylistEntryModel{}, "playlist_id = ?", playlistID).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to clear playlist entries")
		}
		if len(remaining) > 0 {
			rewritten := make([]*model.PlaylistEntryModel, 0, len(remaining))
			for position, id := range remaining {
				rewritten = append(rewritten, &model.PlaylistEntryModel{
					PlaylistID: playlistID,
					Position:   position,
					TrackID:    id,
				})
			}
			if err := db.Create(&rewritten).Error; err != nil {
				return nil, domainerrors.NewDatabaseExecuteError(err, "failed to rewrite playlist entries")
			}
		}
	}

	return affected, nil
}

// --- Mapper functions ---

func toPlaylistDomain(data *model.PlaylistModel) *entity.Playlist {
	if data == nil {
		return nil
	}

	trackIDs := make([]uuid.UUID, 0, len(data.Entries))
	for _, entry := range data.Entries {
		trackIDs = append(trackIDs, entry.TrackID)
	}

	return &entity.Playlist{
		ID:        data.ID,
		Name:      data.Name,
		OwnerID:   data.OwnerID,
		TrackIDs:  trackIDs,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
