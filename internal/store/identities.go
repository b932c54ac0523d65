package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) FindUserByID(ctx context.Context, id string) (users.User, error) {
	if err := checkID(id, "find user by id"); err != nil {
		return users.User{}, err
	}
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return users.User{}, translate(err, "find user by id")
	}
	return u, nil
}

// ProvisionOrUpdate creates the account for email with role, or overwrites
// the role of the existing one, in a single upsert keyed by email. The
// returned user is the row as committed.
func (s *Store) ProvisionOrUpdate(ctx context.Context, email string, role users.Role) (users.User, error) {
	email = users.NormalizeEmail(email)
	if email == "" {
		return users.User{}, fmt.Errorf("provision identity: email: %w", apperr.ErrInvalidArgument)
	}

	var out users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := users.User{Email: email, Role: role, UpdatedAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).Create(&u).Error; err != nil {
			return err
		}
		return tx.First(&out, "email = ?", email).Error
	})
	if err != nil {
		return users.User{}, translate(err, "provision identity")
	}
	return out, nil
}

// EnsureUser creates an account with RoleUnset when email is unknown and
// otherwise leaves the existing row untouched.
func (s *Store) EnsureUser(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	if email == "" {
		return users.User{}, fmt.Errorf("ensure identity: email: %w", apperr.ErrInvalidArgument)
	}

	var out users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := users.User{Email: email, Role: users.RoleUnset}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&u).Error; err != nil {
			return err
		}
		return tx.First(&out, "email = ?", email).Error
	})
	if err != nil {
		return users.User{}, translate(err, "ensure identity")
	}
	return out, nil
}

// FindOrLinkGoogleUser resolves a Google subject to an account: by subject
// first, then by email (linking the subject if the account has none yet),
// creating the account when neither exists.
func (s *Store) FindOrLinkGoogleUser(ctx context.Context, sub, email string) (users.User, error) {
	if sub == "" {
		return users.User{}, fmt.Errorf("google identity: subject: %w", apperr.ErrInvalidArgument)
	}

	var u users.User
	err := s.db.WithContext(ctx).Where("google_sub = ?", sub).Take(&u).Error
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return users.User{}, translate(err, "find google user")
	}

	u, err = s.EnsureUser(ctx, email)
	if err != nil {
		return users.User{}, err
	}
	if u.GoogleSub != nil && *u.GoogleSub != sub {
		return users.User{}, fmt.Errorf("google identity: email linked to another account: %w", apperr.ErrForbidden)
	}
	if u.GoogleSub == nil {
		res := s.db.WithContext(ctx).Model(&users.User{}).
			Where("id = ? AND google_sub IS NULL", u.ID).
			Update("google_sub", sub)
		if res.Error != nil {
			return users.User{}, translate(res.Error, "link google subject")
		}
		if res.RowsAffected == 0 {
			// linked concurrently; trust only what was committed
			if u, err = s.FindUserByID(ctx, u.ID); err != nil {
				return users.User{}, err
			}
			if u.GoogleSub == nil || *u.GoogleSub != sub {
				return users.User{}, fmt.Errorf("google identity: email linked to another account: %w", apperr.ErrForbidden)
			}
			return u, nil
		}
		u.GoogleSub = &sub
	}
	return u, nil
}
