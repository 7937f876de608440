package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AdminService gates the approval workflow behind a process-local admin
// session. The session is a plain in-memory flag plus token; it deliberately
// does not survive restarts and is never written to the persistence port.
type AdminService struct {
	auth           Authenticator
	bookings       *BookingService
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger

	mu      sync.RWMutex
	session *AdminSession
}

// NewAdminService constructs an admin service with the provided dependencies.
func NewAdminService(auth Authenticator, bookings *BookingService, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AdminService {
	return NewAdminServiceWithLogger(auth, bookings, tokenGenerator, now, sessionTTL, nil)
}

// NewAdminServiceWithLogger constructs an admin service with a specified logger.
func NewAdminServiceWithLogger(auth Authenticator, bookings *BookingService, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AdminService {
	if auth == nil {
		auth = AcceptAllPolicy{}
	}
	if tokenGenerator == nil {
		tokenGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AdminService{
		auth:           auth,
		bookings:       bookings,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AdminService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AdminService", operation, attrs...)
}

// Login runs the configured authenticator policy and, on success, starts the
// admin session.
func (s *AdminService) Login(ctx context.Context, name, email, password string) (session AdminSession, err error) {
	if s == nil {
		err = fmt.Errorf("AdminService is nil")
		return
	}

	email = strings.TrimSpace(strings.ToLower(email))
	logger := s.loggerWith(ctx, "Login", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "admin login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "admin logged in")
	}()

	if err = s.auth.Authenticate(ctx, name, email, password); err != nil {
		return
	}

	now := s.now()
	session = AdminSession{
		Token:     s.tokenGenerator(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	return
}

// Logout clears the admin session. Logging out twice is harmless.
func (s *AdminService) Logout(ctx context.Context) {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.loggerWith(ctx, "Logout").InfoContext(ctx, "admin logged out")
}

// IsLoggedIn reports whether an unexpired admin session is active.
func (s *AdminService) IsLoggedIn() bool {
	if s == nil {
		return false
	}

	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if session == nil {
		return false
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(s.now()) {
		return false
	}
	return true
}

// PendingRequests returns bookings awaiting a decision. Requires an active
// admin session.
func (s *AdminService) PendingRequests(ctx context.Context) (pending []Booking, err error) {
	if s == nil {
		err = fmt.Errorf("AdminService is nil")
		return
	}

	logger := s.loggerWith(ctx, "PendingRequests")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list pending requests", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(pending)).InfoContext(ctx, "pending requests listed")
	}()

	if !s.IsLoggedIn() {
		err = ErrUnauthorized
		return
	}
	if s.bookings == nil {
		return nil, nil
	}

	var all []Booking
	all, err = s.bookings.List(ctx)
	if err != nil {
		return
	}

	for _, booking := range all {
		if booking.Status == BookingStatusPending {
			pending = append(pending, booking)
		}
	}
	return
}

// Approve confirms a pending booking.
func (s *AdminService) Approve(ctx context.Context, id int64) (Booking, error) {
	return s.decide(ctx, "Approve", id, BookingStatusConfirmed)
}

// Reject declines a pending booking.
func (s *AdminService) Reject(ctx context.Context, id int64) (Booking, error) {
	return s.decide(ctx, "Reject", id, BookingStatusRejected)
}

func (s *AdminService) decide(ctx context.Context, operation string, id int64, next BookingStatus) (booking Booking, err error) {
	if s == nil {
		err = fmt.Errorf("AdminService is nil")
		return
	}

	logger := s.loggerWith(ctx, operation, "booking_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to decide booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(booking.Status)).InfoContext(ctx, "booking decided")
	}()

	if !s.IsLoggedIn() {
		err = ErrUnauthorized
		return
	}
	if s.bookings == nil {
		err = fmt.Errorf("booking service not configured")
		return
	}

	booking, err = s.bookings.Transition(ctx, id, next)
	return
}
