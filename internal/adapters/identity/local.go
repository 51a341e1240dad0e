// Package identity is the auth backend: HS256 custom-token sign-in, anonymous
// sign-in and a push-style state listener.
//
// Listener events are queued and delivered by a single dispatcher goroutine,
// so listeners never run concurrently and see changes in the order they
// happened. A listener that signs in from inside its callback receives the
// resulting change as a later event.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jsamuelsen/inspire-quotes/internal/domain"
	"github.com/jsamuelsen/inspire-quotes/internal/ports"
)

// ErrClosed is returned by sign-in calls after Close.
var ErrClosed = errors.New("auth backend closed")

const ledgerSweepInterval = 10 * time.Minute

// Options configures LocalAuth.
type Options struct {
	// TokenSecret verifies custom tokens. Without it every token is rejected.
	TokenSecret string

	// TokenIssuer, when set, must match the iss claim.
	TokenIssuer string

	Logger *slog.Logger
}

type event struct {
	user *domain.User

	// target is the single listener for an initial event; 0 broadcasts.
	target uint64
}

// LocalAuth implements ports.AuthService in process.
type LocalAuth struct {
	secret   []byte
	issuer   string
	redeemed *cache.Cache
	logger   *slog.Logger

	mu        sync.Mutex
	current   *domain.User
	listeners map[uint64]ports.AuthStateListener
	nextID    uint64
	queue     []event
	closed    bool

	signal chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

var (
	_ ports.AuthService   = (*LocalAuth)(nil)
	_ ports.HealthChecker = (*LocalAuth)(nil)
)

// New starts the dispatcher. Call Close to stop it.
func New(opts Options) *LocalAuth {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &LocalAuth{
		secret:    []byte(opts.TokenSecret),
		issuer:    opts.TokenIssuer,
		redeemed:  cache.New(cache.NoExpiration, ledgerSweepInterval),
		logger:    logger.With(slog.String("component", "identity.LocalAuth")),
		listeners: make(map[uint64]ports.AuthStateListener),
		signal:    make(chan struct{}, 1),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go a.dispatch()

	return a
}

// OnAuthStateChanged registers listener. It is called once with the current
// user and again after every change.
func (a *LocalAuth) OnAuthStateChanged(listener ports.AuthStateListener) func() {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.listeners[id] = listener
	a.enqueueLocked(event{user: copyUser(a.current), target: id})
	a.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}
}

// SignInWithCustomToken verifies an HS256 token and signs in its subject.
// Tokens are single use; a replay is rejected until the token expires.
func (a *LocalAuth) SignInWithCustomToken(_ context.Context, token string) (*domain.User, error) {
	if a.isClosed() {
		return nil, ErrClosed
	}

	uid, expiry, err := a.verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenRejected, err)
	}

	ttl := cache.NoExpiration
	if !expiry.IsZero() {
		ttl = time.Until(expiry)
	}

	if err := a.redeemed.Add(tokenKey(token), struct{}{}, ttl); err != nil {
		return nil, fmt.Errorf("%w: token already redeemed", domain.ErrTokenRejected)
	}

	user := &domain.User{UID: uid}
	a.setCurrent(user)

	return copyUser(user), nil
}

// SignInAnonymously creates a fresh anonymous identity.
func (a *LocalAuth) SignInAnonymously(context.Context) (*domain.User, error) {
	if a.isClosed() {
		return nil, ErrClosed
	}

	user := &domain.User{UID: uuid.NewString(), Anonymous: true}
	a.setCurrent(user)

	return copyUser(user), nil
}

// SignOut clears the current identity and notifies listeners.
func (a *LocalAuth) SignOut(context.Context) error {
	if a.isClosed() {
		return ErrClosed
	}

	a.setCurrent(nil)

	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (a *LocalAuth) CurrentUser() *domain.User {
	a.mu.Lock()
	defer a.mu.Unlock()

	return copyUser(a.current)
}

// Name implements ports.HealthChecker.
func (a *LocalAuth) Name() string {
	return "auth"
}

// Check fails once the backend is closed.
func (a *LocalAuth) Check(context.Context) error {
	if a.isClosed() {
		return ErrClosed
	}

	return nil
}

// Close stops the dispatcher after the event in flight, if any. Queued events
// are dropped. It must not be called from inside a listener.
func (a *LocalAuth) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.queue = nil
	a.mu.Unlock()

	a.cancel()
	<-a.done

	return nil
}

func (a *LocalAuth) verify(token string) (string, time.Time, error) {
	if len(a.secret) == 0 {
		return "", time.Time{}, errors.New("custom tokens are not configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", time.Time{}, err
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", time.Time{}, errors.New("token has no subject")
	}

	// The uid becomes a collection path segment and part of a redis key.
	if strings.ContainsAny(sub, "/:") || sub == "." || sub == ".." {
		return "", time.Time{}, fmt.Errorf("invalid token subject %q", sub)
	}

	var expiry time.Time
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}

	return sub, expiry, nil
}

func (a *LocalAuth) setCurrent(user *domain.User) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = user
	a.enqueueLocked(event{user: copyUser(user)})
}

func (a *LocalAuth) enqueueLocked(ev event) {
	if a.closed {
		return
	}

	a.queue = append(a.queue, ev)

	select {
	case a.signal <- struct{}{}:
	default:
	}
}

func (a *LocalAuth) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.closed
}

func (a *LocalAuth) dispatch() {
	defer close(a.done)

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-a.signal:
		}

		for {
			ev, ok := a.next()
			if !ok {
				break
			}

			for _, l := range a.recipients(ev) {
				if a.ctx.Err() != nil {
					return
				}
				a.deliver(l, ev.user)
			}
		}
	}
}

func (a *LocalAuth) next() (event, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.queue) == 0 {
		return event{}, false
	}

	ev := a.queue[0]
	a.queue = a.queue[1:]

	return ev, true
}

func (a *LocalAuth) recipients(ev event) []ports.AuthStateListener {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ev.target != 0 {
		if l, ok := a.listeners[ev.target]; ok {
			return []ports.AuthStateListener{l}
		}
		return nil
	}

	ids := make([]uint64, 0, len(a.listeners))
	for id := range a.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]ports.AuthStateListener, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.listeners[id])
	}

	return out
}

func (a *LocalAuth) deliver(l ports.AuthStateListener, user *domain.User) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("auth listener panicked", slog.Any("panic", r))
		}
	}()

	l(a.ctx, copyUser(user))
}

// IssueCustomToken mints a one-time HS256 token for uid. A zero ttl omits exp.
func IssueCustomToken(secret, issuer, uid string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": uid,
		"iat": time.Now().Unix(),
		"jti": uuid.NewString(),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	if ttl > 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}

	c := *u

	return &c
}
