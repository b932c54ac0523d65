// Package content serves course material through the access gate.
package content

import (
	"context"
	"fmt"

	"course-gate/internal/domain/access"
	"course-gate/internal/domain/apperr"
	"course-gate/internal/domain/courses"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Catalog interface {
	GetCourse(ctx context.Context, id string) (courses.Course, error)
	GetModule(ctx context.Context, id string) (courses.Module, error)
	ListModulesOrdered(ctx context.Context, courseID string) ([]courses.Module, error)
}

type Entitlements interface {
	HasSubscription(ctx context.Context, userID, courseID string) (bool, error)
}

type Service struct {
	catalog      Catalog
	entitlements Entitlements
	logger       *zap.Logger
}

func NewService(catalog Catalog, entitlements Entitlements, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, entitlements: entitlements, logger: logger}
}

// CourseView is a course as one caller may see it. Every module is present;
// the ones the caller may not read are redacted.
type CourseView struct {
	Course     courses.Course
	Subscribed bool
	IsOwner    bool
	Modules    []access.ProjectedModule
}

func (s *Service) ReadCourse(ctx context.Context, id access.Identity, courseID string) (CourseView, error) {
	if courseID == "" {
		return CourseView{}, fmt.Errorf("read course: id is required: %w", apperr.ErrInvalidArgument)
	}

	course, err := s.catalog.GetCourse(ctx, courseID)
	if err != nil {
		return CourseView{}, fmt.Errorf("read course %s: %w", courseID, err)
	}

	snap, err := s.snapshot(ctx, id, course)
	if err != nil {
		return CourseView{}, err
	}

	projected := make([]access.ProjectedModule, len(snap.modules))
	for i, m := range snap.modules {
		d := access.Decide(id, course, i, i == 0, snap.subscribed)
		projected[i] = access.Project(m, d)
	}

	return CourseView{
		Course:     course,
		Subscribed: snap.subscribed,
		IsOwner:    access.IsOwningTeacher(id, course),
		Modules:    projected,
	}, nil
}

// ReadModule returns one module, or ErrForbidden when the gate denies it so
// that a locked module is distinguishable from a missing one.
func (s *Service) ReadModule(ctx context.Context, id access.Identity, moduleID string) (access.ProjectedModule, error) {
	if moduleID == "" {
		return access.ProjectedModule{}, fmt.Errorf("read module: id is required: %w", apperr.ErrInvalidArgument)
	}

	module, err := s.catalog.GetModule(ctx, moduleID)
	if err != nil {
		return access.ProjectedModule{}, fmt.Errorf("read module %s: %w", moduleID, err)
	}

	course, err := s.catalog.GetCourse(ctx, module.CourseID)
	if err != nil {
		return access.ProjectedModule{}, fmt.Errorf("read module %s: course: %w", moduleID, err)
	}

	snap, err := s.snapshot(ctx, id, course)
	if err != nil {
		return access.ProjectedModule{}, err
	}

	index := -1
	for i, m := range snap.modules {
		if m.ID == module.ID {
			index = i
			break
		}
	}
	if index < 0 {
		// deleted between the two reads
		return access.ProjectedModule{}, fmt.Errorf("read module %s: %w", moduleID, apperr.ErrNotFound)
	}

	d := access.Decide(id, course, index, index == 0, snap.subscribed)
	if !d.IsFull() {
		return access.ProjectedModule{}, fmt.Errorf("read module %s: subscription required: %w", moduleID, apperr.ErrForbidden)
	}
	return access.Project(snap.modules[index], d), nil
}

type snapshot struct {
	modules    []courses.Module
	subscribed bool
}

// snapshot loads the module ordering and the caller's entitlement in
// parallel. Either failure aborts the read.
func (s *Service) snapshot(ctx context.Context, id access.Identity, course courses.Course) (snapshot, error) {
	var snap snapshot

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		mods, err := s.catalog.ListModulesOrdered(ctx, course.ID)
		if err != nil {
			return fmt.Errorf("list modules of %s: %w", course.ID, err)
		}
		snap.modules = mods
		return nil
	})
	eg.Go(func() error {
		if id.IsAnonymous() {
			return nil
		}
		ok, err := s.entitlements.HasSubscription(ctx, id.SubjectID, course.ID)
		if err != nil {
			return fmt.Errorf("check subscription to %s: %w", course.ID, err)
		}
		snap.subscribed = ok
		return nil
	})

	if err := eg.Wait(); err != nil {
		s.logger.Error("Failed to load course snapshot",
			zap.String("course_id", course.ID),
			zap.String("subject_id", id.SubjectID),
			zap.Error(err),
		)
		return snapshot{}, err
	}
	return snap, nil
}
