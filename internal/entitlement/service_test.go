package entitlement

import (
	"context"
	"testing"

	"course-gate/internal/content"
	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/users"
	"course-gate/internal/store"
	"course-gate/internal/store/storetest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store   *store.Store
	svc     *Service
	owner   access.Identity
	rival   access.Identity
	student access.Identity
}

func newFixture(t *testing.T) fixture {
	s, _ := storetest.Open(t)
	return fixture{
		store:   s,
		svc:     NewService(s, zap.NewNop()),
		owner:   access.FromUser(storetest.User(t, s, "owner@example.com", users.RoleTeacher)),
		rival:   access.FromUser(storetest.User(t, s, "rival@example.com", users.RoleTeacher)),
		student: access.FromUser(storetest.User(t, s, "student@example.com", users.RoleStudent)),
	}
}

func TestUpdatePriceAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, _ := storetest.Course(t, f.store, f.owner.SubjectID, "30", "M0")

	for _, who := range []access.Identity{f.rival, f.student, access.Anonymous()} {
		_, err := f.svc.UpdatePrice(ctx, who, c.ID, "49.99")
		assert.ErrorIs(t, err, apperr.ErrForbidden, who.Email)
	}

	_, err := f.svc.UpdatePrice(ctx, f.owner, c.ID, "-5")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = f.svc.UpdatePrice(ctx, f.owner, c.ID, "cheap")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = f.svc.UpdatePrice(ctx, f.owner, "missing", "1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	updated, err := f.svc.UpdatePrice(ctx, f.owner, c.ID, "49.99")
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("49.99")))

	view, err := content.NewService(f.store, f.store, zap.NewNop()).ReadCourse(ctx, f.student, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "49.99", view.Course.Price.StringFixed(2))
}

func TestSubscribeIsIdempotentAndChecksReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, _ := storetest.Course(t, f.store, f.owner.SubjectID, "30", "M0", "M1")

	require.NoError(t, f.svc.Subscribe(ctx, f.student.SubjectID, c.ID))
	require.NoError(t, f.svc.Subscribe(ctx, f.student.SubjectID, c.ID))

	ids, err := f.svc.SubscribedCourseIDs(ctx, f.student)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, ids)

	assert.ErrorIs(t, f.svc.Subscribe(ctx, "ghost", c.ID), apperr.ErrNotFound)
	assert.ErrorIs(t, f.svc.Subscribe(ctx, f.student.SubjectID, "ghost"), apperr.ErrNotFound)
	assert.ErrorIs(t, f.svc.Subscribe(ctx, "", c.ID), apperr.ErrInvalidArgument)

	_, err = f.svc.SubscribedCourses(ctx, access.Anonymous())
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRecordPurchase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, _ := storetest.Course(t, f.store, f.owner.SubjectID, "30", "M0", "M1")

	p := Purchase{
		SessionID: "cs_test_42",
		UserID:    f.student.SubjectID,
		CourseID:  c.ID,
		Amount:    decimal.RequireFromString("30"),
		Currency:  "MAD",
		Status:    "paid",
	}
	recorded, err := f.svc.RecordPurchase(ctx, p)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = f.svc.RecordPurchase(ctx, p)
	require.NoError(t, err)
	assert.False(t, recorded)

	payments, err := f.svc.Payments(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "mad", payments[0].Currency)

	owned, err := f.svc.SubscribedCourses(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, owned, 1)

	p.SessionID = ""
	_, err = f.svc.RecordPurchase(ctx, p)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestCatalogAuthoring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCourse(ctx, f.student, NewCourse{Title: "Go", Price: "10"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.CreateCourse(ctx, f.owner, NewCourse{Title: " ", Price: "10"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = f.svc.CreateCourse(ctx, f.owner, NewCourse{Title: "Go", Price: "-1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	c, err := f.svc.CreateCourse(ctx, f.owner, NewCourse{Title: "Go", Description: "basics", Price: "10"})
	require.NoError(t, err)
	assert.Equal(t, f.owner.SubjectID, c.OwnerTeacherID)

	_, err = f.svc.AppendModule(ctx, f.rival, c.ID, NewModule{Title: "hijack"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.svc.AppendModule(ctx, f.owner, c.ID, NewModule{})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	second, err := f.svc.AppendModule(ctx, f.owner, c.ID, NewModule{Title: "B second"})
	require.NoError(t, err)
	third, err := f.svc.AppendModule(ctx, f.owner, c.ID, NewModule{Title: "A third"})
	require.NoError(t, err)
	assert.Less(t, second.OrderKey, third.OrderKey)

	list, err := f.svc.TeacherCourses(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	_, err = f.svc.TeacherCourses(ctx, f.student)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestEnroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	paid, _ := storetest.Course(t, f.store, f.owner.SubjectID, "25", "M0", "M1")
	free, _ := storetest.Course(t, f.store, f.owner.SubjectID, "0", "M0", "M1")

	_, err := f.svc.Enroll(ctx, access.Anonymous(), paid.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = f.svc.Enroll(ctx, f.owner, paid.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = f.svc.Enroll(ctx, f.student, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	en, err := f.svc.Enroll(ctx, f.student, paid.ID)
	require.NoError(t, err)
	assert.False(t, en.Granted)
	has, err := f.store.HasSubscription(ctx, f.student.SubjectID, paid.ID)
	require.NoError(t, err)
	assert.False(t, has)

	en, err = f.svc.Enroll(ctx, f.student, free.ID)
	require.NoError(t, err)
	assert.True(t, en.Granted)
	has, err = f.store.HasSubscription(ctx, f.student.SubjectID, free.ID)
	require.NoError(t, err)
	assert.True(t, has)

	en, err = f.svc.Enroll(ctx, f.student, free.ID)
	require.NoError(t, err)
	assert.True(t, en.Granted)
}

func TestEnrollFreeCourseChecksAccountExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	free, _ := storetest.Course(t, f.store, f.owner.SubjectID, "0", "M0")

	ghost := access.Identity{SubjectID: uuid.NewString(), Role: users.RoleStudent}
	_, err := f.svc.Enroll(ctx, ghost, free.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	has, err := f.store.HasSubscription(ctx, ghost.SubjectID, free.ID)
	require.NoError(t, err)
	assert.False(t, has)
}
