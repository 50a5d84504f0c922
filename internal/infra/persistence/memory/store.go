// Package memory provides an in-process implementation of the repository
// interfaces. It backs local development and the service-layer tests, and is
// selected with database.driver "memory".
package memory

import (
	"slices"
	"sync"
	"time"

	"jukebox/internal/domain/entity"

	"github.com/google/uuid"
)

// Store holds all in-memory state behind one mutex. Transactions operate on
// a deep copy that is swapped in on commit, so a failed transaction leaves
// the store untouched.
type Store struct {
	mu   sync.Mutex
	data *data
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: newData()}
}

type data struct {
	users          map[uuid.UUID]*entity.User
	usersByHandle  map[string]uuid.UUID
	credentials    map[uuid.UUID]*entity.Credential
	sessions       map[uuid.UUID]*entity.Session
	sessionsByHash map[string]uuid.UUID
	tracks         map[uuid.UUID]*entity.Track
	playlists      map[uuid.UUID]*entity.Playlist
}

func newData() *data {
	return &data{
		users:          make(map[uuid.UUID]*entity.User),
		usersByHandle:  make(map[string]uuid.UUID),
		credentials:    make(map[uuid.UUID]*entity.Credential),
		sessions:       make(map[uuid.UUID]*entity.Session),
		sessionsByHash: make(map[string]uuid.UUID),
		tracks:         make(map[uuid.UUID]*entity.Track),
		playlists:      make(map[uuid.UUID]*entity.Playlist),
	}
}

func (d *data) clone() *data {
	cloned := newData()
	for id, user := range d.users {
		cloned.users[id] = cloneUser(user)
	}
	for handle, id := range d.usersByHandle {
		cloned.usersByHandle[handle] = id
	}
	for id, cred := range d.credentials {
		cloned.credentials[id] = cloneCredential(cred)
	}
	for id, session := range d.sessions {
		cloned.sessions[id] = cloneSession(session)
	}
	for hash, id := range d.sessionsByHash {
		cloned.sessionsByHash[hash] = id
	}
	for id, track := range d.tracks {
		cloned.tracks[id] = cloneTrack(track)
	}
	for id, playlist := range d.playlists {
		cloned.playlists[id] = clonePlaylist(playlist)
	}

	return cloned
}

// view runs fn while holding the store lock. Used for single repository
// operations outside a transaction; fn must not retain references into data.
func (s *Store) view(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

// Entity copies keep stored state isolated from callers.

func cloneUser(u *entity.User) *entity.User {
	copied := *u
	return &copied
}

func cloneCredential(c *entity.Credential) *entity.Credential {
	copied := *c
	return &copied
}

func cloneSession(s *entity.Session) *entity.Session {
	copied := *s
	if s.RevokedAt != nil {
		revokedAt := *s.RevokedAt
		copied.RevokedAt = &revokedAt
	}

	return &copied
}

func cloneTrack(t *entity.Track) *entity.Track {
	copied := *t
	return &copied
}

func clonePlaylist(p *entity.Playlist) *entity.Playlist {
	copied := *p
	copied.TrackIDs = slices.Clone(p.TrackIDs)

	return &copied
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func now() time.Time {
	return time.Now().UTC()
}
