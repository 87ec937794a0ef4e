package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mnstudio/quote-studio/internal/domain"
	"github.com/mnstudio/quote-studio/internal/ports"
)

// Identity is the identity service. It simulates a directory: any
// well-formed credential pair signs in, unless the address was previously
// registered, in which case the stored password hash must match. The
// signed-in identity is persisted so restarts resume the session.
type Identity struct {
	mu        sync.Mutex
	current   *domain.Identity
	listeners []func(*domain.Identity)

	store      ports.KeyValueStore
	provider   ports.IdentityProvider
	adminEmail string
	latency    time.Duration
	logger     *slog.Logger

	now func() time.Time
}

// IdentityConfig contains dependencies for the identity service.
type IdentityConfig struct {
	// Store is the durable per-device store. Required.
	Store ports.KeyValueStore

	// Provider verifies external sign-in credentials. Optional; when nil
	// or unavailable, provider sign-in reports unavailable.
	Provider ports.IdentityProvider

	// AdminEmail is the address that receives the admin flag.
	AdminEmail string

	// Latency is the simulated directory round-trip applied to Login and
	// Register. Zero disables it.
	Latency time.Duration

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Now overrides time in tests.
	Now func() time.Time
}

// NewIdentity creates the identity service. Panics if Store is nil.
func NewIdentity(cfg IdentityConfig) *Identity {
	if cfg.Store == nil {
		panic("Identity: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Identity{
		store:      cfg.Store,
		provider:   cfg.Provider,
		adminEmail: cfg.AdminEmail,
		latency:    cfg.Latency,
		logger:     logger,
		now:        now,
	}
}

// identityRecord is the persisted shape of the signed-in identity.
type identityRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Admin     bool      `json:"admin"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// accountRecord is the persisted shape of a registered account.
type accountRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// OnChange registers a listener invoked with the new identity after every
// sign-in and with nil after sign-out. Listeners must be registered before
// the service is used; registration is not synchronized with changes.
func (s *Identity) OnChange(fn func(*domain.Identity)) {
	s.listeners = append(s.listeners, fn)
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Identity) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	copied := *s.current

	return &copied
}

// Restore loads a previously persisted session at startup. Absent or
// unreadable state means no session; unreadable state is also removed so
// it does not fail again on the next start.
func (s *Identity) Restore(ctx context.Context) {
	value, ok, err := s.store.Get(ctx, ports.CurrentIdentityKey())
	if err != nil {
		s.logger.WarnContext(ctx, "loading persisted session failed",
			slog.Any("error", err),
		)

		return
	}

	if !ok {
		return
	}

	var record identityRecord

	err = json.Unmarshal([]byte(value), &record)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt persisted session",
			slog.Any("error", err),
		)

		_ = s.store.Delete(ctx, ports.CurrentIdentityKey())

		return
	}

	s.setCurrent(ctx, &domain.Identity{
		ID:        record.ID,
		Email:     record.Email,
		Name:      record.Name,
		Admin:     record.Admin,
		Avatar:    record.Avatar,
		CreatedAt: record.CreatedAt,
	}, false)
}

// Login signs in with an email/password pair. For a registered address the
// password must match the stored hash; any other well-formed pair is
// accepted by the simulated directory. The derived identity id is stable
// per address so interaction sets survive sign-out and sign-in.
func (s *Identity) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "email and password are required")
	}

	err := s.simulateLatency(ctx)
	if err != nil {
		return nil, err
	}

	account, found, err := s.loadAccount(ctx, email)
	if err != nil {
		return nil, domain.NewUnavailableError("identity-store", err.Error())
	}

	identity := &domain.Identity{
		ID:        identityID(email),
		Email:     email,
		Name:      displayName(email),
		Admin:     email == s.adminEmail,
		CreatedAt: s.now(),
	}

	if found {
		err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
		if err != nil {
			return nil, domain.ErrUnauthorized
		}

		identity.ID = account.ID
		identity.Name = account.Name
		identity.CreatedAt = account.CreatedAt
	}

	s.setCurrent(ctx, identity, true)

	return s.Current(), nil
}

// Register creates an account and signs it in. The address must not
// already be registered.
func (s *Identity) Register(ctx context.Context, name, email, password string) (*domain.Identity, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "name, email and password are required")
	}

	err := s.simulateLatency(ctx)
	if err != nil {
		return nil, err
	}

	_, found, err := s.loadAccount(ctx, email)
	if err != nil {
		return nil, domain.NewUnavailableError("identity-store", err.Error())
	}

	if found {
		return nil, domain.NewValidationError("email", "already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewUnavailableError("identity-store", err.Error())
	}

	account := accountRecord{
		ID:           identityID(email),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return nil, domain.NewUnavailableError("identity-store", err.Error())
	}

	err = s.store.Set(ctx, ports.AccountKey(email), string(payload))
	if err != nil {
		return nil, domain.NewUnavailableError("identity-store", err.Error())
	}

	s.setCurrent(ctx, &domain.Identity{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Admin:     email == s.adminEmail,
		CreatedAt: account.CreatedAt,
	}, true)

	return s.Current(), nil
}

// SignInWithProvider verifies an external provider credential and signs in
// the identity it attests to.
func (s *Identity) SignInWithProvider(ctx context.Context, credential string) (*domain.Identity, error) {
	if s.provider == nil || !s.provider.Available() {
		return nil, domain.NewUnavailableError("identity-provider", "not configured")
	}

	identity, err := s.provider.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	s.setCurrent(ctx, identity, true)

	return s.Current(), nil
}

// Logout signs out the current identity and removes the persisted session.
func (s *Identity) Logout(ctx context.Context) {
	err := s.store.Delete(ctx, ports.CurrentIdentityKey())
	if err != nil {
		s.logger.WarnContext(ctx, "removing persisted session failed",
			slog.Any("error", err),
		)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notify(nil)
}

// setCurrent installs the identity, optionally persists the session, and
// notifies listeners. Persist failures degrade the session to
// process-lifetime only.
func (s *Identity) setCurrent(ctx context.Context, identity *domain.Identity, persist bool) {
	if persist {
		payload, err := json.Marshal(identityRecord{
			ID:        identity.ID,
			Email:     identity.Email,
			Name:      identity.Name,
			Admin:     identity.Admin,
			Avatar:    identity.Avatar,
			CreatedAt: identity.CreatedAt,
		})
		if err == nil {
			err = s.store.Set(ctx, ports.CurrentIdentityKey(), string(payload))
		}

		if err != nil {
			s.logger.WarnContext(ctx, "persisting session failed",
				slog.Any("error", err),
			)
		}
	}

	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "identity signed in",
		slog.String("identity_id", identity.ID),
		slog.Bool("admin", identity.Admin),
	)

	s.notify(identity)
}

func (s *Identity) notify(identity *domain.Identity) {
	for _, fn := range s.listeners {
		fn(identity)
	}
}

// simulateLatency models the directory round trip while honoring
// cancellation.
func (s *Identity) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

func (s *Identity) loadAccount(ctx context.Context, email string) (accountRecord, bool, error) {
	var account accountRecord

	value, ok, err := s.store.Get(ctx, ports.AccountKey(email))
	if err != nil || !ok {
		return account, false, err
	}

	err = json.Unmarshal([]byte(value), &account)
	if err != nil {
		// A corrupt account record falls back to directory semantics.
		s.logger.WarnContext(ctx, "ignoring corrupt account record",
			slog.String("email", email),
			slog.Any("error", err),
		)

		return accountRecord{}, false, nil
	}

	return account, true, nil
}

// identityID derives a stable id from the sign-in address, so the same
// address maps to the same interaction sets across sessions.
func identityID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

// displayName is the address local part, matching what the directory
// would return for an unregistered address.
func displayName(email string) string {
	name, _, found := strings.Cut(email, "@")
	if !found || name == "" {
		return email
	}

	return name
}
