package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")

	// sign-in failures, mapped to user-facing messages by the API layer
	ErrEmailNotAllowed = errors.New("this email address is not authorized to use this application")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrDeactivated     = errors.New("account deactivated")
)

const (
	maxFailedAttempts = 5
	attemptWindow     = 15 * time.Minute
)

type (
	Repository interface {
		CreateUser(ctx context.Context, region string, usr User) (User, error)
		QueryAllUsers(ctx context.Context, region string) ([]User, error)
		GetUserByID(ctx context.Context, region, id string) (User, error)
		GetUserByEmail(ctx context.Context, region, email string) (User, error)
		UpdateUser(ctx context.Context, region string, usr User) (User, error)
		DeleteUsersByID(ctx context.Context, region string, ids ...string) error
	}

	Service struct {
		repo   Repository
		conf   *core.Config
		logger core.Logger

		mu       sync.Mutex
		attempts map[string]*attemptCounter
	}

	attemptCounter struct {
		count   int
		started time.Time
	}
)

func NewService(repo Repository, conf *core.Config, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		conf:     conf,
		logger:   logger,
		attempts: make(map[string]*attemptCounter),
	}
}

func (svc *Service) CheckUniqueness(region, email string) error {
	_, err := svc.repo.GetUserByEmail(context.Background(), region, email)
	if err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	if err != ErrNotFound {
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, region string, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	usr.SetActive(true)
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, region, usr)
}

func (svc *Service) QueryAll(ctx context.Context, region string) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx, region)
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, region, id)
}

func (svc *Service) GetByEmail(ctx context.Context, region, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, region, core.CleanString(email, true /* lower */))
}

func (svc *Service) SetLastLogin(ctx context.Context, region string, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, region, usr)
}

func (svc *Service) Delete(ctx context.Context, region string, ids ...string) error {
	return svc.repo.DeleteUsersByID(ctx, region, ids...)
}

// Authenticate verifies credentials against the tenant's user collection.
// Emails outside the allow-list are rejected before any lookup; repeated
// failures for the same email are throttled.
func (svc *Service) Authenticate(ctx context.Context, region string, creds Credentials) (User, error) {
	email := core.CleanString(creds.Email, true /* lower */)

	if !svc.emailAllowed(email) {
		return User{}, ErrEmailNotAllowed
	}
	if svc.throttled(email) {
		return User{}, ErrTooManyAttempts
	}

	usr, err := svc.repo.GetUserByEmail(ctx, region, email)
	if err != nil {
		if err == ErrNotFound {
			svc.recordFailure(email)
		}
		return User{}, err
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		svc.recordFailure(email)
		return User{}, ErrWrongPassword
	}
	if !usr.Active() {
		return User{}, ErrDeactivated
	}

	svc.clearFailures(email)
	return svc.SetLastLogin(ctx, region, usr)
}

func (svc *Service) emailAllowed(email string) bool {
	if len(svc.conf.AllowedEmails) == 0 {
		return true
	}
	for _, allowed := range svc.conf.AllowedEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}

func (svc *Service) throttled(email string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	counter, ok := svc.attempts[email]
	if !ok {
		return false
	}
	if time.Since(counter.started) > attemptWindow {
		delete(svc.attempts, email)
		return false
	}
	return counter.count >= maxFailedAttempts
}

func (svc *Service) recordFailure(email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	counter, ok := svc.attempts[email]
	if !ok || time.Since(counter.started) > attemptWindow {
		svc.attempts[email] = &attemptCounter{count: 1, started: time.Now()}
		return
	}
	counter.count++
}

func (svc *Service) clearFailures(email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.attempts, email)
}
