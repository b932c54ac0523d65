// Package identity resolves session tokens to callers and owns the
// provision-or-update path that fixes an account's role.
package identity

import (
	"context"
	"errors"
	"fmt"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/users"
	"course-gate/internal/infra/session"

	"go.uber.org/zap"
)

type Store interface {
	FindUserByID(ctx context.Context, id string) (users.User, error)
	ProvisionOrUpdate(ctx context.Context, email string, role users.Role) (users.User, error)
	FindOrLinkGoogleUser(ctx context.Context, sub, email string) (users.User, error)
}

type Service struct {
	store  Store
	issuer *session.Issuer
	logger *zap.Logger
}

func NewService(store Store, issuer *session.Issuer, logger *zap.Logger) *Service {
	return &Service{store: store, issuer: issuer, logger: logger}
}

// Resolve turns a bearer token into the caller. An empty token is an
// anonymous caller; a bad or stale token is an error, not anonymity.
func (s *Service) Resolve(ctx context.Context, token string) (access.Identity, error) {
	if token == "" {
		return access.Anonymous(), nil
	}

	claims, err := s.issuer.Parse(token)
	if err != nil {
		return access.Identity{}, fmt.Errorf("parse session: %w: %w", apperr.ErrUnauthenticated, err)
	}

	u, err := s.store.FindUserByID(ctx, claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return access.Identity{}, fmt.Errorf("session subject %s: %w", claims.Subject, apperr.ErrUnauthenticated)
	}
	if err != nil {
		return access.Identity{}, err
	}
	return access.FromUser(u), nil
}

// AssignRole sets the caller's role and returns the identity as committed,
// so the session built from it can never predate the write.
//
// Callers may only assign a role to their own email. Repeated calls are
// allowed and the last one wins.
func (s *Service) AssignRole(ctx context.Context, caller access.Identity, email, requestedRole string) (access.Identity, error) {
	if caller.IsAnonymous() {
		return access.Identity{}, fmt.Errorf("assign role: %w", apperr.ErrUnauthenticated)
	}

	email = users.NormalizeEmail(email)
	if email == "" {
		return access.Identity{}, fmt.Errorf("assign role: email is required: %w", apperr.ErrInvalidArgument)
	}
	role, err := users.ParseRole(requestedRole)
	if err != nil {
		return access.Identity{}, fmt.Errorf("assign role: %w", err)
	}
	if users.NormalizeEmail(caller.Email) != email {
		return access.Identity{}, fmt.Errorf("assign role for %s: %w", email, apperr.ErrForbidden)
	}

	u, err := s.store.ProvisionOrUpdate(ctx, email, role)
	if err != nil {
		return access.Identity{}, fmt.Errorf("assign role: %w", err)
	}

	if caller.Role != u.Role {
		s.logger.Info("Role assigned",
			zap.String("user_id", u.ID),
			zap.String("from", string(caller.Role)),
			zap.String("to", string(u.Role)),
		)
	}
	return access.FromUser(u), nil
}

// SignInWithGoogle provisions (or finds) the account behind a verified Google
// identity and issues an app session for it.
func (s *Service) SignInWithGoogle(ctx context.Context, sub, email string) (access.Identity, string, error) {
	if users.NormalizeEmail(email) == "" {
		return access.Identity{}, "", fmt.Errorf("google sign-in: account has no email: %w", apperr.ErrInvalidArgument)
	}

	u, err := s.store.FindOrLinkGoogleUser(ctx, sub, email)
	if err != nil {
		return access.Identity{}, "", fmt.Errorf("google sign-in: %w", err)
	}

	token, err := s.IssueSession(u)
	if err != nil {
		return access.Identity{}, "", err
	}
	return access.FromUser(u), token, nil
}

func (s *Service) IssueSession(u users.User) (string, error) {
	token, err := s.issuer.Issue(u)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// IssueFor issues a session for an already resolved identity.
func (s *Service) IssueFor(id access.Identity) (string, error) {
	return s.IssueSession(users.User{ID: id.SubjectID, Email: id.Email, Role: id.Role})
}
