package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/response"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlaylistHandler serves the playlist endpoints. Every route sits behind
// the auth middleware; ownership checks live in the use case.
type PlaylistHandler struct {
	playlists usecase.PlaylistUsecase
	logger    *slog.Logger
}

// NewPlaylistHandler is the constructor for PlaylistHandler, injected by Fx.
func NewPlaylistHandler(playlists usecase.PlaylistUsecase, logger *slog.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, logger: logger}
}

// positionParam parses the optional ?position= query parameter.
func positionParam(c echo.Context) (*int, error) {
	raw := c.QueryParam("position")
	if raw == "" {
		return nil, nil
	}

	position, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("position must be an integer")
	}

	return &position, nil
}

type createPlaylistRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create makes a new, empty playlist owned by the caller.
func (h *PlaylistHandler) Create(c echo.Context) error {
	var req createPlaylistRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	playlist, err := h.playlists.Create(c.Request().Context(), middleware.CallerID(c), req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toPlaylistResponse(playlist))
}

// Get returns a playlist with its ordered membership.
func (h *PlaylistHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	playlist, err := h.playlists.Get(c.Request().Context(), middleware.CallerID(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponse(playlist))
}

// ListMine returns the caller's own playlists.
func (h *PlaylistHandler) ListMine(c echo.Context) error {
	callerID := middleware.CallerID(c)

	playlists, err := h.playlists.ListForUser(c.Request().Context(), callerID, callerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponses(playlists))
}

// ListForUser returns another user's playlists.
func (h *PlaylistHandler) ListForUser(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	playlists, err := h.playlists.ListForUser(c.Request().Context(), middleware.CallerID(c), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponses(playlists))
}

type updatePlaylistRequest struct {
	Name     *string     `json:"name"`
	TrackIDs []uuid.UUID `json:"track_ids"`
}

// Update renames and/or reorders a playlist.
func (h *PlaylistHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	playlist, err := h.playlists.Update(c.Request().Context(), middleware.CallerID(c), id, &usecase.UpdatePlaylistInput{
		Name:     req.Name,
		TrackIDs: req.TrackIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponse(playlist))
}

// Delete removes a playlist.
func (h *PlaylistHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.playlists.Delete(c.Request().Context(), middleware.CallerID(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

type addTrackRequest struct {
	TrackID  uuid.UUID `json:"track_id" validate:"required"`
	Position *int      `json:"position"`
}

// AddTrack inserts a track reference into the playlist.
func (h *PlaylistHandler) AddTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req addTrackRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if req.TrackID == uuid.Nil {
		return domainerrors.ErrValidationFailed.WithDetails("track_id is required")
	}

	playlist, err := h.playlists.AddTrack(c.Request().Context(), middleware.CallerID(c), id, &usecase.AddTrackInput{
		TrackID:  req.TrackID,
		Position: req.Position,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponse(playlist))
}

// RemoveTrack removes one occurrence of a track from the playlist. The
// optional ?position= query pins an exact slot.
func (h *PlaylistHandler) RemoveTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	trackID, err := pathID(c, "trackId")
	if err != nil {
		return err
	}
	position, err := positionParam(c)
	if err != nil {
		return err
	}

	playlist, err := h.playlists.RemoveTrack(c.Request().Context(), middleware.CallerID(c), id, &usecase.RemoveTrackInput{
		TrackID:  trackID,
		Position: position,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toPlaylistResponse(playlist))
}
