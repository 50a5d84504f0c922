package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jukebox/internal/delivery/context"
	"jukebox/internal/domain/entity"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/domain/repository"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Catalog pagination bounds.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	trackRepo repository.TrackRepository
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TrackRepo repository.TrackRepository
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		trackRepo: params.TrackRepo,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateTrackMetadata(title, artist string, durationSeconds int) error {
	if strings.TrimSpace(title) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title must not be empty")
	}
	if strings.TrimSpace(artist) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("artist must not be empty")
	}
	if durationSeconds <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("duration_seconds must be positive")
	}

	return nil
}

// CreateTrack adds a track to the catalog.
func (srv *catalogService) CreateTrack(ctx context.Context, callerID uuid.UUID, input *usecase.TrackInput) (*entity.Track, error) {
	if err := validateTrackMetadata(input.Title, input.Artist, input.DurationSeconds); err != nil {
		return nil, err
	}

	track := &entity.Track{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(input.Title),
		Artist:          strings.TrimSpace(input.Artist),
		DurationSeconds: input.DurationSeconds,
		SourceURL:       input.SourceURL,
	}
	if err := srv.trackRepo.Create(ctx, track); err != nil {
		return nil, errors.Wrap(err, "failed to create track")
	}

	srv.log(ctx).Info("Track added to catalog", slog.Any("trackID", track.ID), slog.Any("callerID", callerID))

	return track, nil
}

// GetTrack returns a single track.
func (srv *catalogService) GetTrack(ctx context.Context, id uuid.UUID) (*entity.Track, error) {
	track, err := srv.trackRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return nil, domainerrors.ErrTrackNotFound
		}

		return nil, errors.Wrap(err, "failed to load track")
	}

	return track, nil
}

// ListTracks returns a stable page of the catalog.
func (srv *catalogService) ListTracks(ctx context.Context, input *usecase.ListTracksInput) ([]*entity.Track, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	tracks, err := srv.trackRepo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracks")
	}

	return tracks, nil
}

// UpdateTrack modifies a track's metadata.
func (srv *catalogService) UpdateTrack(ctx context.Context, callerID, id uuid.UUID, input *usecase.UpdateTrackInput) (*entity.Track, error) {
	var updated *entity.Track
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		trackRepo := repoFactory.TrackRepo()

		track, err := trackRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrTrackNotFound) {
				return domainerrors.ErrTrackNotFound
			}

			return errors.Wrap(err, "failed to load track")
		}

		if input.Title != nil {
			track.Title = strings.TrimSpace(*input.Title)
		}
		if input.Artist != nil {
			track.Artist = strings.TrimSpace(*input.Artist)
		}
		if input.DurationSeconds != nil {
			track.DurationSeconds = *input.DurationSeconds
		}
		if input.SourceURL != nil {
			track.SourceURL = *input.SourceURL
		}
		if err := validateTrackMetadata(track.Title, track.Artist, track.DurationSeconds); err != nil {
			return err
		}

		if err := trackRepo.Update(ctx, track); err != nil {
			return errors.Wrap(err, "failed to update track")
		}
		updated = track

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTrack removes a track and every playlist occurrence of it in one
// transaction, so membership never dangles.
func (srv *catalogService) DeleteTrack(ctx context.Context, callerID, id uuid.UUID) error {
	var affected []uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.TrackRepo().FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrTrackNotFound) {
				return domainerrors.ErrTrackNotFound
			}

			return errors.Wrap(err, "failed to load track")
		}

		modified, err := repoFactory.PlaylistRepo().RemoveTrackEverywhere(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to remove playlist references")
		}
		affected = modified

		if err := repoFactory.TrackRepo().Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete track")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Track deleted", slog.Any("trackID", id), slog.Int("playlistsTouched", len(affected)), slog.Any("callerID", callerID))

	return nil
}
