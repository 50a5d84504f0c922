package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/response"
	domainerrors "jukebox/internal/domain/errors"
	"jukebox/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TrackHandler serves the catalog endpoints. Reads are anonymous, writes
// sit behind the auth middleware.
type TrackHandler struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewTrackHandler is the constructor for TrackHandler, injected by Fx.
func NewTrackHandler(catalog usecase.CatalogUsecase, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{catalog: catalog, logger: logger}
}

// List returns a page of the catalog.
func (h *TrackHandler) List(c echo.Context) error {
	var input usecase.ListTracksInput
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("limit must be an integer")
		}
		input.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("offset must be an integer")
		}
		input.Offset = offset
	}

	tracks, err := h.catalog.ListTracks(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toTrackResponses(tracks))
}

// Get returns a single track.
func (h *TrackHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	track, err := h.catalog.GetTrack(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toTrackResponse(track))
}

type createTrackRequest struct {
	Title           string `json:"title" validate:"required"`
	Artist          string `json:"artist" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,gt=0"`
	SourceURL       string `json:"source_url"`
}

// Create adds a track to the catalog.
func (h *TrackHandler) Create(c echo.Context) error {
	var req createTrackRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	track, err := h.catalog.CreateTrack(c.Request().Context(), middleware.CallerID(c), &usecase.TrackInput{
		Title:           req.Title,
		Artist:          req.Artist,
		DurationSeconds: req.DurationSeconds,
		SourceURL:       req.SourceURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toTrackResponse(track))
}

type updateTrackRequest struct {
	Title           *string `json:"title"`
	Artist          *string `json:"artist"`
	DurationSeconds *int    `json:"duration_seconds"`
	SourceURL       *string `json:"source_url"`
}

// Update modifies track metadata.
func (h *TrackHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTrackRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	track, err := h.catalog.UpdateTrack(c.Request().Context(), middleware.CallerID(c), id, &usecase.UpdateTrackInput{
		Title:           req.Title,
		Artist:          req.Artist,
		DurationSeconds: req.DurationSeconds,
		SourceURL:       req.SourceURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toTrackResponse(track))
}

// Delete removes a track and its playlist references.
func (h *TrackHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteTrack(c.Request().Context(), middleware.CallerID(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
