// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// Response models keep wire shapes decoupled from domain entities.

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type trackResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Artist          string    `json:"artist"`
	DurationSeconds int       `json:"duration_seconds"`
	SourceURL       string    `json:"source_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toTrackResponse(t *entity.Track) trackResponse {
	return trackResponse{
		ID:              t.ID,
		Title:           t.Title,
		Artist:          t.Artist,
		DurationSeconds: t.DurationSeconds,
		SourceURL:       t.SourceURL,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func toTrackResponses(tracks []*entity.Track) []trackResponse {
	out := make([]trackResponse, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, toTrackResponse(t))
	}

	return out
}

type playlistResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	TrackIDs  []uuid.UUID `json:"track_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toPlaylistResponse(p *entity.Playlist) playlistResponse {
	trackIDs := p.TrackIDs
	if trackIDs == nil {
		trackIDs = []uuid.UUID{}
	}

	return playlistResponse{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		TrackIDs:  trackIDs,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPlaylistResponses(playlists []*entity.Playlist) []playlistResponse {
	out := make([]playlistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, toPlaylistResponse(p))
	}

	return out
}
