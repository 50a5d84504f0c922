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

// playlistService implements the PlaylistUsecase interface. Every mutation
// loads the playlist under the transaction's row lock, checks ownership,
// applies the edit in memory and writes back the whole ordering, so a
// failed operation leaves the playlist untouched.
type playlistService struct {
	txManager    repository.TransactionManager
	playlistRepo repository.PlaylistRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// PlaylistServiceParams holds dependencies for playlistService, injected by Fx.
type PlaylistServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	PlaylistRepo repository.PlaylistRepository
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewPlaylistService is the constructor for playlistService.
func NewPlaylistService(params PlaylistServiceParams) usecase.PlaylistUsecase {
	return &playlistService{
		txManager:    params.TxManager,
		playlistRepo: params.PlaylistRepo,
		userRepo:     params.UserRepo,
		logger:       params.Logger,
	}
}

func (srv *playlistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create makes a new, empty playlist owned by the caller.
func (srv *playlistService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
	}

	playlist := &entity.Playlist{
		ID:      uuid.New(),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := srv.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, errors.Wrap(err, "failed to create playlist")
	}

	srv.log(ctx).Info("Playlist created", slog.Any("playlistID", playlist.ID), slog.Any("ownerID", ownerID))

	return playlist, nil
}

// Get returns a playlist with its ordered membership. Any authenticated
// caller may read any playlist.
func (srv *playlistService) Get(ctx context.Context, callerID, id uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.playlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return nil, domainerrors.ErrPlaylistNotFound
		}

		return nil, errors.Wrap(err, "failed to load playlist")
	}

	return playlist, nil
}

// ListForUser returns a user's playlists.
func (srv *playlistService) ListForUser(ctx context.Context, callerID, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	if _, err := srv.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	playlists, err := srv.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlists")
	}

	return playlists, nil
}

// mutate runs fn against the playlist under its row lock, after the
// not-found and ownership checks. fn edits the entity in place; the full
// membership is then written back in one update.
func (srv *playlistService) mutate(ctx context.Context, callerID, id uuid.UUID, fn func(p *entity.Playlist) error) (*entity.Playlist, error) {
	var result *entity.Playlist
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		playlistRepo := repoFactory.PlaylistRepo()

		playlist, err := playlistRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPlaylistNotFound) {
				return domainerrors.ErrPlaylistNotFound
			}

			return errors.Wrap(err, "failed to load playlist")
		}
		if playlist.OwnerID != callerID {
			return domainerrors.ErrForbidden
		}

		if err := fn(playlist); err != nil {
			return err
		}

		if err := playlistRepo.Update(ctx, playlist); err != nil {
			if errors.Is(err, repository.ErrTrackNotFound) {
				return domainerrors.ErrTrackNotFound
			}

			return errors.Wrap(err, "failed to update playlist")
		}
		result = playlist

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update renames and/or reorders a playlist.
func (srv *playlistService) Update(ctx context.Context, callerID, id uuid.UUID, input *usecase.UpdatePlaylistInput) (*entity.Playlist, error) {
	return srv.mutate(ctx, callerID, id, func(p *entity.Playlist) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
			}
			p.Name = name
		}
		if input.TrackIDs != nil {
			if !p.IsPermutation(input.TrackIDs) {
				return domainerrors.ErrNotPermutation
			}
			p.TrackIDs = input.TrackIDs
		}

		return nil
	})
}

// Delete removes a playlist and its membership.
func (srv *playlistService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		playlistRepo := repoFactory.PlaylistRepo()

		playlist, err := playlistRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPlaylistNotFound) {
				return domainerrors.ErrPlaylistNotFound
			}

			return errors.Wrap(err, "failed to load playlist")
		}
		if playlist.OwnerID != callerID {
			return domainerrors.ErrForbidden
		}

		if err := playlistRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete playlist")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Playlist deleted", slog.Any("playlistID", id))

	return nil
}

// AddTrack inserts a track reference at the requested position.
func (srv *playlistService) AddTrack(ctx context.Context, callerID, id uuid.UUID, input *usecase.AddTrackInput) (*entity.Playlist, error) {
	return srv.mutate(ctx, callerID, id, func(p *entity.Playlist) error {
		// Existence is checked inside the same transaction as the insert,
		// so a concurrent track delete cannot leave a dangling reference.
		position := len(p.TrackIDs)
		if input.Position != nil {
			position = *input.Position
		}
		p.InsertTrack(input.TrackID, position)

		return nil
	})
}

// RemoveTrack removes one occurrence of a track reference.
func (srv *playlistService) RemoveTrack(ctx context.Context, callerID, id uuid.UUID, input *usecase.RemoveTrackInput) (*entity.Playlist, error) {
	return srv.mutate(ctx, callerID, id, func(p *entity.Playlist) error {
		if input.Position != nil {
			pos := *input.Position
			if pos < 0 || pos >= len(p.TrackIDs) || p.TrackIDs[pos] != input.TrackID {
				return domainerrors.ErrTrackNotInPlaylist
			}
			p.RemoveAt(pos)

			return nil
		}

		idx := p.IndexOf(input.TrackID)
		if idx < 0 {
			return domainerrors.ErrTrackNotInPlaylist
		}
		p.RemoveAt(idx)

		return nil
	})
}
