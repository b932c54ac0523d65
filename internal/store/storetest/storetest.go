// Package storetest opens an in-memory SQLite store with the production
// schema, plus seeding helpers for tests in other packages.
package storetest

import (
	"context"
	"testing"

	"course-gate/database"
	"course-gate/internal/domain/courses"
	"course-gate/internal/domain/users"
	"course-gate/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t testing.TB) (*store.Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection == one in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return store.New(db), db
}

func User(t testing.TB, s *store.Store, email string, role users.Role) users.User {
	t.Helper()
	u, err := s.ProvisionOrUpdate(context.Background(), email, role)
	require.NoError(t, err)
	return u
}

// UserByEmail reads the committed row for email straight from the database.
func UserByEmail(t testing.TB, db *gorm.DB, email string) (users.User, bool) {
	t.Helper()
	var u users.User
	err := db.Where("email = ?", users.NormalizeEmail(email)).Limit(1).Find(&u).Error
	require.NoError(t, err)
	return u, u.ID != ""
}

// Course creates a course owned by ownerID with one module per title, in the
// given curriculum order.
func Course(t testing.TB, s *store.Store, ownerID, price string, titles ...string) (courses.Course, []courses.Module) {
	t.Helper()
	ctx := context.Background()

	c := courses.Course{
		OwnerTeacherID: ownerID,
		Title:          "Course of " + ownerID,
		Price:          decimal.RequireFromString(price),
	}
	require.NoError(t, s.CreateCourse(ctx, &c))

	mods := make([]courses.Module, 0, len(titles))
	for _, title := range titles {
		m := courses.Module{
			Title:       title,
			Description: "body of " + title,
			Link:        "https://videos.example.com/" + title,
		}
		require.NoError(t, s.AppendModule(ctx, c.ID, &m))
		mods = append(mods, m)
	}
	return c, mods
}
