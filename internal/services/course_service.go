package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
)

type CourseService struct {
	courses repo.Courses
}

func NewCourseService(c repo.Courses) *CourseService {
	return &CourseService{courses: c}
}

func (s *CourseService) Create(ctx context.Context, c models.Course) (models.Course, error) {
	if err := c.Validate(); err != nil {
		return models.Course{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	created, err := s.courses.Create(ctx, c)
	return created, fromRepo(err)
}

func (s *CourseService) Get(ctx context.Context, id string) (models.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	return c, fromRepo(err)
}

func (s *CourseService) List(ctx context.Context, limit, offset int) ([]models.Course, error) {
	out, err := s.courses.List(ctx, limit, offset)
	return out, fromRepo(err)
}

func (s *CourseService) Update(ctx context.Context, callerID string, c models.Course) (models.Course, error) {
	existing, err := s.courses.GetByID(ctx, c.ID)
	if err != nil {
		return models.Course{}, fromRepo(err)
	}
	if existing.OwnerID != callerID {
		return models.Course{}, fmt.Errorf("%w: not the course owner", ErrUnauthorized)
	}
	if err := c.Validate(); err != nil {
		return models.Course{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	c.OwnerID = existing.OwnerID
	if err := s.courses.Update(ctx, c); err != nil {
		return models.Course{}, fromRepo(err)
	}
	return s.courses.GetByID(ctx, c.ID)
}

func (s *CourseService) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return fromRepo(err)
	}
	if existing.OwnerID != callerID {
		return fmt.Errorf("%w: not the course owner", ErrUnauthorized)
	}
	return fromRepo(s.courses.Delete(ctx, id))
}

func (s *CourseService) AddModule(ctx context.Context, callerID string, m models.CourseModule) (models.CourseModule, error) {
	if strings.TrimSpace(m.Title) == "" {
		return models.CourseModule{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	course, err := s.courses.GetByID(ctx, m.CourseID)
	if err != nil {
		return models.CourseModule{}, fromRepo(err)
	}
	if course.OwnerID != callerID {
		return models.CourseModule{}, fmt.Errorf("%w: not the course owner", ErrUnauthorized)
	}
	created, err := s.courses.AddModule(ctx, m)
	return created, fromRepo(err)
}

func (s *CourseService) AddLesson(ctx context.Context, callerID string, l models.Lesson) (models.Lesson, error) {
	if strings.TrimSpace(l.Title) == "" {
		return models.Lesson{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	module, err := s.courses.GetModule(ctx, l.ModuleID)
	if err != nil {
		return models.Lesson{}, fromRepo(err)
	}
	course, err := s.courses.GetByID(ctx, module.CourseID)
	if err != nil {
		return models.Lesson{}, fromRepo(err)
	}
	if course.OwnerID != callerID {
		return models.Lesson{}, fmt.Errorf("%w: not the course owner", ErrUnauthorized)
	}
	created, err := s.courses.AddLesson(ctx, l)
	return created, fromRepo(err)
}

func (s *CourseService) Content(ctx context.Context, courseID string) (models.CourseContent, error) {
	content, err := s.courses.Content(ctx, courseID)
	return content, fromRepo(err)
}
