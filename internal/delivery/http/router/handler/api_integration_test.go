package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jukebox/config"
	"jukebox/internal/delivery/http/middleware"
	"jukebox/internal/delivery/http/router"
	"jukebox/internal/delivery/http/router/handler"
	"jukebox/internal/delivery/http/validator"
	"jukebox/internal/infra/auth"
	"jukebox/internal/infra/persistence/memory"
	"jukebox/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full route table over the in-memory backend, so
// these tests exercise the real middleware chain and wire contract.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-access-secret"
	cfg.SecretKey.Refresh = "integration-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:      4,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	cfg.PasswordStrength = &config.PasswordStrengthConfig{MinLength: 8, MaxLength: 72}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasher(cfg)

	store := memory.New()
	txManager := memory.NewTransactionManager(store)
	userRepo := memory.NewUserRepository(store)
	credRepo := memory.NewCredentialRepository(store)
	sessionRepo := memory.NewSessionRepository(store)
	trackRepo := memory.NewTrackRepository(store)
	playlistRepo := memory.NewPlaylistRepository(store)

	users := impl.NewUserService(impl.UserServiceParams{
		TxManager: txManager, UserRepo: userRepo, CredRepo: credRepo,
		SessionRepo: sessionRepo, Hasher: hasher, TokenService: tokenService, Logger: logger,
	})
	catalog := impl.NewCatalogService(impl.CatalogServiceParams{
		TxManager: txManager, TrackRepo: trackRepo, Logger: logger,
	})
	playlists := impl.NewPlaylistService(impl.PlaylistServiceParams{
		TxManager: txManager, PlaylistRepo: playlistRepo, UserRepo: userRepo, Logger: logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)

	router.NewRouter(router.RouterParams{
		AuthHandler:     handler.NewAuthHandler(users, logger),
		UserHandler:     handler.NewUserHandler(users, logger),
		TrackHandler:    handler.NewTrackHandler(catalog, logger),
		PlaylistHandler: handler.NewPlaylistHandler(playlists, logger),
		HealthHandler:   handler.NewHealthHandler(),
		AuthMiddleware:  middleware.NewAuthMiddleware(users),
		RateLimit:       middleware.NewRateLimitMiddleware(cfg),
	}).RegisterRoutes(e)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

// registerAndLoginHTTP runs the register/login flow over the wire and
// returns the issued tokens.
func registerAndLoginHTTP(t *testing.T, e *echo.Echo, handle string) (userID, access, refresh string) {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"handle":"`+handle+`","password":"a long enough password","display_name":"`+handle+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userID = decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "",
		`{"handle":"`+handle+`","password":"a long enough password"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)

	return userID, body["access_token"].(string), body["refresh_token"].(string)
}

func TestAPI_RegisterLoginAndPlaylistFlow(t *testing.T) {
	e := newTestServer(t)
	_, access, _ := registerAndLoginHTTP(t, e, "alice")

	// Create a track.
	rec := doJSON(t, e, http.MethodPost, "/api/tracks", access,
		`{"title":"So What","artist":"Miles Davis","duration_seconds":545}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	trackID := decodeBody(t, rec)["id"].(string)

	// Anonymous catalog read works.
	rec = doJSON(t, e, http.MethodGet, "/api/tracks/"+trackID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Create a playlist and add the track twice.
	rec = doJSON(t, e, http.MethodPost, "/api/playlists", access, `{"name":"Kind of Blue"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	playlistID := decodeBody(t, rec)["id"].(string)

	for range 2 {
		rec = doJSON(t, e, http.MethodPost, "/api/playlists/"+playlistID+"/tracks", access,
			`{"track_id":"`+trackID+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	trackIDs := decodeBody(t, rec)["track_ids"].([]any)
	assert.Len(t, trackIDs, 2, "duplicates are allowed")

	// Deleting the track cascades into the playlist.
	rec = doJSON(t, e, http.MethodDelete, "/api/tracks/"+trackID, access, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/playlists/"+playlistID, access, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["track_ids"])
}

func TestAPI_AuthRequiredForWrites(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/tracks", "",
		`{"title":"t","artist":"a","duration_seconds":1}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "UNAUTHENTICATED", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPI_ErrorEnvelopeOnUnknownRoute(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "NOT_FOUND", body["error"])
	assert.NotEmpty(t, body["message"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err, "timestamp must be RFC 3339")
}

func TestAPI_DuplicateHandleConflict(t *testing.T) {
	e := newTestServer(t)
	registerAndLoginHTTP(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "",
		`{"handle":"alice","password":"a long enough password"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "HANDLE_TAKEN", decodeBody(t, rec)["error"])
}

func TestAPI_RefreshRotationOverTheWire(t *testing.T) {
	e := newTestServer(t)
	_, _, refresh := registerAndLoginHTTP(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+refresh+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The superseded token is rejected on replay.
	rec = doJSON(t, e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+refresh+`"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", decodeBody(t, rec)["error"])
}

func TestAPI_LogoutRevokesAccess(t *testing.T) {
	e := newTestServer(t)
	userID, access, refresh := registerAndLoginHTTP(t, e, "alice")

	rec := doJSON(t, e, http.MethodGet, "/api/users/"+userID, access, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/logout", "", `{"refresh_token":"`+refresh+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/users/"+userID, access, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_ForeignProfileUpdateForbidden(t *testing.T) {
	e := newTestServer(t)
	aliceID, _, _ := registerAndLoginHTTP(t, e, "alice")
	_, bobAccess, _ := registerAndLoginHTTP(t, e, "bob")

	rec := doJSON(t, e, http.MethodPut, "/api/users/"+aliceID, bobAccess, `{"display_name":"Hijacked"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, rec)["error"])

	rec = doJSON(t, e, http.MethodGet, "/api/users/"+aliceID, bobAccess, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decodeBody(t, rec)["display_name"])
}

func TestAPI_HealthUptimeMonotonic(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody(t, rec)
	assert.Equal(t, "healthy", first["status"])

	time.Sleep(10 * time.Millisecond)

	rec = doJSON(t, e, http.MethodGet, "/health", "", "")
	second := decodeBody(t, rec)
	assert.Greater(t, second["uptime"].(float64), first["uptime"].(float64))
}

func TestAPI_ReorderNotPermutationConflict(t *testing.T) {
	e := newTestServer(t)
	_, access, _ := registerAndLoginHTTP(t, e, "alice")

	rec := doJSON(t, e, http.MethodPost, "/api/tracks", access,
		`{"title":"t1","artist":"a","duration_seconds":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	trackID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, e, http.MethodPost, "/api/playlists", access, `{"name":"Order"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	playlistID := decodeBody(t, rec)["id"].(string)

	rec = doJSON(t, e, http.MethodPost, "/api/playlists/"+playlistID+"/tracks", access,
		`{"track_id":"`+trackID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Reordering to an empty list is not a permutation of one element.
	rec = doJSON(t, e, http.MethodPut, "/api/playlists/"+playlistID, access, `{"track_ids":[]}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "REORDER_NOT_PERMUTATION", decodeBody(t, rec)["error"])
}
