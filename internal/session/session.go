package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kropsz/elivraria/internal/backend"
	"github.com/kropsz/elivraria/internal/localstore"
	"github.com/kropsz/elivraria/internal/models"
)

const storageKey = "user"

var ErrValidation = errors.New("validation")

// Store keeps the client's session record. Presence alone means logged in:
// nothing here is validated, signed or expired.
type Store struct {
	kv      *localstore.Store
	api     *backend.Client
	logger  *slog.Logger
	current *models.Session
}

// NewStore rehydrates the session from storage. A corrupt record is logged
// and treated as logged out.
func NewStore(kv *localstore.Store, api *backend.Client, logger *slog.Logger) *Store {
	s := &Store{kv: kv, api: api, logger: logger}

	raw, ok, err := kv.Get(storageKey)
	if err != nil {
		logger.Error("session_load_failed", "error", err)
		return s
	}
	if !ok {
		return s
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		logger.Error("session_record_corrupt", "error", err)
		return s
	}
	s.current = &sess
	return s
}

// Current returns the session, reporting whether one exists.
func (s *Store) Current() (models.Session, bool) {
	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// userRecord is whatever subset of the user the backend returns. The
// original backend answers login with an empty body, so every field is
// optional and the submitted email fills the gap.
type userRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func (r userRecord) displayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Nome
}

// Login authenticates against the backend and stores the resulting session.
// The session is authoritative the instant a 2xx arrives.
func (s *Store) Login(ctx context.Context, email, senha string) (models.Session, error) {
	if email == "" || senha == "" {
		return models.Session{}, fmt.Errorf("%w: email and senha required", ErrValidation)
	}

	body := map[string]string{"email": email, "senha": senha}
	var rec userRecord
	if err := s.api.PostJSON(ctx, "/v1/user/login", body, &rec); err != nil {
		if transportOrServer(err) {
			return models.Session{}, err
		}
		// 2xx with an unparsable body still counts as a login.
		s.logger.Warn("login_body_unparsable", "error", err)
	}

	sess := models.Session{Name: rec.displayName(), Email: email}
	if rec.Email != "" {
		sess.Email = rec.Email
	}
	s.save(sess)
	return sess, nil
}

// Register creates the account and logs straight into it.
func (s *Store) Register(ctx context.Context, name, email, senha string) (models.Session, error) {
	if name == "" || email == "" || senha == "" {
		return models.Session{}, fmt.Errorf("%w: name, email and senha required", ErrValidation)
	}

	body := map[string]string{"name": name, "email": email, "senha": senha}
	var rec userRecord
	if err := s.api.PostJSON(ctx, "/v1/user/create", body, &rec); err != nil {
		if transportOrServer(err) {
			return models.Session{}, err
		}
		s.logger.Warn("register_body_unparsable", "error", err)
	}

	sess := models.Session{Name: name, Email: email}
	s.save(sess)
	return sess, nil
}

// Logout clears the stored session unconditionally. It is a purely local
// operation and never talks to the backend.
func (s *Store) Logout() {
	s.current = nil
	if err := s.kv.Delete(storageKey); err != nil {
		s.logger.Error("session_delete_failed", "error", err)
	}
}

func (s *Store) save(sess models.Session) {
	s.current = &sess
	raw, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("session_encode_failed", "error", err)
		return
	}
	if err := s.kv.Put(storageKey, raw); err != nil {
		s.logger.Error("session_persist_failed", "error", err)
	}
}

func transportOrServer(err error) bool {
	var srv *backend.ServerError
	return errors.Is(err, backend.ErrConnection) || errors.As(err, &srv)
}
