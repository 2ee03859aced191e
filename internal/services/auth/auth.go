package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/lib/jwt"
	"github.com/14kear/online_polls/internal/storage"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	log                *slog.Logger
	userSaver          UserSaver
	userProvider       UserProvider
	permissions        PermissionStorage
	sessions           SessionStorage
	secret             string
	tokenTTL           time.Duration
	defaultPermissions []string
}

//go:generate mockgen -source=auth.go -destination=../mocks/auth.go -package=mocks

type UserSaver interface {
	SaveUser(ctx context.Context, username string, passHash []byte, permissions []string) (uid int64, err error)
}

type UserProvider interface {
	User(ctx context.Context, username string) (entity.User, error)
	UserByID(ctx context.Context, id int64) (entity.User, error)
}

type PermissionStorage interface {
	HasPermission(ctx context.Context, userID int64, codename string) (bool, error)
}

type SessionStorage interface {
	SaveSession(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	SessionUserID(ctx context.Context, sessionID string) (int64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSession     = errors.New("invalid session")
)

// NewAuth returns the identity provider. Every registered user is granted
// defaultPermissions.
func NewAuth(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	permissions PermissionStorage,
	sessions SessionStorage,
	secret string,
	tokenTTL time.Duration,
	defaultPermissions []string,
) *Auth {
	return &Auth{
		log:                log,
		userSaver:          userSaver,
		userProvider:       userProvider,
		permissions:        permissions,
		sessions:           sessions,
		secret:             secret,
		tokenTTL:           tokenTTL,
		defaultPermissions: defaultPermissions,
	}
}

// RegisterNewUser stores a new account with a bcrypt hash of password.
// If the username is taken, returns ErrUserExists.
func (a *Auth) RegisterNewUser(ctx context.Context, username, password string) (entity.User, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(slog.String("op", op), slog.String("username", username))
	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.userSaver.SaveUser(ctx, username, passHash, a.defaultPermissions)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			log.Warn("user already exists", sl.Err(err))
			return entity.User{}, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to save user", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered successfully", slog.Int64("uid", id))
	return entity.User{ID: id, Username: username, PassHash: passHash}, nil
}

// Authenticate checks the credentials and returns the matching user.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	const op = "auth.Authenticate"

	log := a.log.With(slog.String("op", op), slog.String("username", username))
	log.Info("attempting to authenticate user")

	user, err := a.userProvider.User(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return user, nil
}

// Login opens a session for user and returns its signed token.
func (a *Auth) Login(ctx context.Context, user entity.User) (string, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op), slog.Int64("uid", user.ID))

	sessionID := uuid.NewString()

	token, err := jwt.NewSessionToken(user, sessionID, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate session token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := a.sessions.SaveSession(ctx, sessionID, user.ID, a.tokenTTL); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("successfully logged in")
	return token, nil
}

// Logout terminates the session the token refers to.
func (a *Auth) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	log := a.log.With(slog.String("op", op))

	claims, err := jwt.ParseSessionToken(token, a.secret)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	if err := a.sessions.DeleteSession(ctx, claims.SessionID); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidSession)
		}
		log.Error("failed to delete session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("successfully logged out user", slog.Int64("uid", claims.UserID))
	return nil
}

// ValidateSession resolves a session token to the user it was issued for.
// The token must carry a valid signature and a session id that is still
// registered for the same user.
func (a *Auth) ValidateSession(ctx context.Context, token string) (entity.User, error) {
	const op = "auth.ValidateSession"

	log := a.log.With(slog.String("op", op))

	claims, err := jwt.ParseSessionToken(token, a.secret)
	if err != nil {
		log.Debug("rejected session token", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	uid, err := a.sessions.SessionUserID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidSession)
		}
		log.Error("failed to read session", sl.Err(err))
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if uid != claims.UserID {
		log.Warn("session owner mismatch", slog.Int64("token_uid", claims.UserID), slog.Int64("session_uid", uid))
		return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	user, err := a.userProvider.UserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidSession)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// HasPermission reports whether the user holds the capability codename.
func (a *Auth) HasPermission(ctx context.Context, userID int64, codename string) (bool, error) {
	const op = "auth.HasPermission"

	ok, err := a.permissions.HasPermission(ctx, userID, codename)
	if err != nil {
		a.log.Error("failed to check permission", slog.String("op", op), sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}
