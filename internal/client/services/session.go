package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/client/repositories/session"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/dbx"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

// SessionStore is what views need to establish a session.
type SessionStore interface {
	Save(ctx context.Context, creds models.Credentials) error
}

// SessionService keeps the current session in memory and mirrors it to the
// local store.
//
// Save writes the token and the user in one transaction, so a reader never
// sees one without the other. Load restores what Save wrote and drops a
// JWT whose exp claim has passed. Tokens that are not JWTs are kept as is.
type SessionService struct {
	db   *sql.DB
	repo session.Repository
	log  logging.Logger
	now  func() time.Time

	mu      sync.RWMutex
	current models.Credentials
}

var _ SessionStore = (*SessionService)(nil)

func NewSessionService(db *sql.DB, repo session.Repository, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.Nop{}
	}
	return &SessionService{db: db, repo: repo, log: log, now: time.Now}
}

func (s *SessionService) Save(ctx context.Context, creds models.Credentials) error {
	if !creds.Valid() {
		return fmt.Errorf("save session: %w", common.ErrNoSession)
	}

	user, err := json.Marshal(creds.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithDB(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, creds.Token); err != nil {
			return err
		}
		return repo.Set(ctx, common.CurrentUserKey, string(user))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.current = creds
	s.mu.Unlock()

	s.log.Info(ctx, "session saved", "user_id", creds.User.ID)
	return nil
}

// Load re-reads the session from the store. It returns common.ErrNoSession
// when nothing usable is stored.
func (s *SessionService) Load(ctx context.Context) (models.Credentials, error) {
	creds, err := s.read(ctx)
	if err != nil {
		s.setCurrent(models.Credentials{})
		return models.Credentials{}, err
	}

	if s.expired(creds.Token) {
		s.log.Info(ctx, "stored session expired, clearing it")
		if err := s.Clear(ctx); err != nil {
			return models.Credentials{}, err
		}
		return models.Credentials{}, common.ErrNoSession
	}

	s.setCurrent(creds)
	return creds, nil
}

func (s *SessionService) read(ctx context.Context) (models.Credentials, error) {
	token, ok, err := s.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("load session: %w", err)
	}
	if !ok || token == "" {
		return models.Credentials{}, common.ErrNoSession
	}

	raw, ok, err := s.repo.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return models.Credentials{}, common.ErrNoSession
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn(ctx, "stored user is not valid JSON", "error", err)
		return models.Credentials{}, common.ErrNoSession
	}

	creds := models.Credentials{Token: token, User: user}
	if !creds.Valid() {
		return models.Credentials{}, common.ErrNoSession
	}
	return creds, nil
}

// expired reports whether token is a JWT with an exp claim in the past.
// The signature is not checked: the server does that on every request.
func (s *SessionService) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(s.now())
}

// Clear wipes the session store and forgets the in-memory session.
func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.setCurrent(models.Credentials{})
	return nil
}

// Current returns the in-memory session and whether there is one.
func (s *SessionService) Current() (models.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current.Valid()
}

func (s *SessionService) setCurrent(c models.Credentials) {
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
}
