package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/billing"
	"course-gate/internal/domain/courses"
	"course-gate/internal/domain/users"
	"course-gate/internal/store/storetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSubscriptionIsIdempotent(t *testing.T) {
	s, db := storetest.Open(t)
	ctx := context.Background()

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	student := storetest.User(t, s, "s@example.com", users.RoleStudent)
	c, _ := storetest.Course(t, s, teacher.ID, "10", "M0")

	ok, err := s.HasSubscription(ctx, student.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpsertSubscription(ctx, student.ID, c.ID))
	require.NoError(t, s.UpsertSubscription(ctx, student.ID, c.ID))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.UpsertSubscription(ctx, student.ID, c.ID))
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, db.Model(&courses.Subscription{}).
		Where("user_id = ? AND course_id = ?", student.ID, c.ID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)

	ok, err = s.HasSubscription(ctx, student.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListModulesOrderedFollowsCreationNotTitle(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	c, created := storetest.Course(t, s, teacher.ID, "10", "Zeta: getting started", "Alpha", "Middle")

	mods, err := s.ListModulesOrdered(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, mods, 3)
	for i := range mods {
		assert.Equal(t, created[i].ID, mods[i].ID)
		assert.EqualValues(t, i, mods[i].OrderKey)
	}
	assert.Equal(t, "Zeta: getting started", mods[0].Title)
}

func TestAppendModuleUnknownCourse(t *testing.T) {
	s, _ := storetest.Open(t)

	err := s.AppendModule(context.Background(), "missing", &courses.Module{Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetMissingRowsAreNotFound(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	_, err := s.GetCourse(ctx, "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.GetModule(ctx, "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = s.UpdatePrice(ctx, "nope", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClosedDatabaseIsUnavailableNotEmpty(t *testing.T) {
	s, db := storetest.Open(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ok, err := s.HasSubscription(context.Background(), "u", "c")
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
}

func TestProvisionOrUpdateKeepsRolesExclusive(t *testing.T) {
	s, db := storetest.Open(t)
	ctx := context.Background()

	u, err := s.ProvisionOrUpdate(ctx, " Ada@Example.com ", users.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, users.RoleStudent, u.Role)
	assert.NotEmpty(t, u.ID)

	again, err := s.ProvisionOrUpdate(ctx, "ada@example.com", users.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, users.RoleTeacher, again.Role)

	var n int64
	require.NoError(t, db.Model(&users.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEnsureUserNeverChangesRole(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	fresh, err := s.EnsureUser(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, users.RoleUnset, fresh.Role)

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	got, err := s.EnsureUser(ctx, "T@example.com")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, got.ID)
	assert.Equal(t, users.RoleTeacher, got.Role)

	_, err = s.EnsureUser(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestFindOrLinkGoogleUser(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	existing := storetest.User(t, s, "g@example.com", users.RoleStudent)

	linked, err := s.FindOrLinkGoogleUser(ctx, "sub-1", "g@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	require.NotNil(t, linked.GoogleSub)
	assert.Equal(t, "sub-1", *linked.GoogleSub)

	bySub, err := s.FindOrLinkGoogleUser(ctx, "sub-1", "changed@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, bySub.ID)

	_, err = s.FindOrLinkGoogleUser(ctx, "sub-2", "g@example.com")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestUpdatePriceIsVisibleOnNextRead(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	c, _ := storetest.Course(t, s, teacher.ID, "10")

	updated, err := s.UpdatePrice(ctx, c.ID, decimal.RequireFromString("49.99"))
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("49.99")))

	reread, err := s.GetCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reread.Price.Equal(decimal.RequireFromString("49.99")))
}

func TestListCoursesByOwnerCountsSubscribers(t *testing.T) {
	s, _ := storetest.Open(t)
	ctx := context.Background()

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	a := storetest.User(t, s, "a@example.com", users.RoleStudent)
	b := storetest.User(t, s, "b@example.com", users.RoleStudent)
	popular, _ := storetest.Course(t, s, teacher.ID, "10")
	quiet, _ := storetest.Course(t, s, teacher.ID, "20")

	require.NoError(t, s.UpsertSubscription(ctx, a.ID, popular.ID))
	require.NoError(t, s.UpsertSubscription(ctx, b.ID, popular.ID))

	list, err := s.ListCoursesByOwner(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	counts := map[string]int64{}
	for _, row := range list {
		counts[row.ID] = row.Subscribers
	}
	assert.EqualValues(t, 2, counts[popular.ID])
	assert.EqualValues(t, 0, counts[quiet.ID])

	none, err := s.ListCoursesByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordPurchaseReplayIsNoop(t *testing.T) {
	s, db := storetest.Open(t)
	ctx := context.Background()

	teacher := storetest.User(t, s, "t@example.com", users.RoleTeacher)
	student := storetest.User(t, s, "s@example.com", users.RoleStudent)
	c, _ := storetest.Course(t, s, teacher.ID, "10")

	p := billing.Payment{
		UserID:          student.ID,
		CourseID:        c.ID,
		StripeSessionID: "cs_test_1",
		Amount:          decimal.RequireFromString("10"),
		Currency:        "mad",
		Status:          "paid",
	}
	first := p
	created, err := s.RecordPurchase(ctx, &first)
	require.NoError(t, err)
	assert.True(t, created)

	replay := p
	created, err = s.RecordPurchase(ctx, &replay)
	require.NoError(t, err)
	assert.False(t, created)

	var payments, subs int64
	require.NoError(t, db.Model(&billing.Payment{}).Count(&payments).Error)
	require.NoError(t, db.Model(&courses.Subscription{}).Count(&subs).Error)
	assert.EqualValues(t, 1, payments)
	assert.EqualValues(t, 1, subs)

	history, err := s.ListPayments(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "cs_test_1", history[0].StripeSessionID)

	subscribed, err := s.ListSubscribedCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Equal(t, c.ID, subscribed[0].ID)

	ids, err := s.SubscribedCourseIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, ids)
}
