package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/internal/repository"
)

// DatabaseService is the single persistence entry point used by the HTTP handlers.
// Every method maps to exactly one logical operation on the store.
type DatabaseService struct {
	store   *repository.Store
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewDatabaseService wires the store with optional cache and metrics.
func NewDatabaseService(store *repository.Store, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DatabaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatabaseService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Ping reports whether the backing store is reachable.
func (s *DatabaseService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Schools

func (s *DatabaseService) GetAllSchools(ctx context.Context) ([]models.School, error) {
	return list(ctx, s, s.store.Schools, models.CollectionSchools, "", "", repository.Sort{Field: "name"})
}

func (s *DatabaseService) CreateSchool(ctx context.Context, school *models.School) (*models.School, error) {
	return insert(ctx, s, s.store.Schools, models.CollectionSchools, school)
}

// Courses

func (s *DatabaseService) GetCoursesBySchool(ctx context.Context, schoolID string) ([]models.Course, error) {
	return list(ctx, s, s.store.Courses, models.CollectionCourses, models.FieldSchoolID, schoolID, repository.Newest)
}

func (s *DatabaseService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	return insert(ctx, s, s.store.Courses, models.CollectionCourses, course)
}

func (s *DatabaseService) DeleteCourse(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.Courses, models.CollectionCourses, id)
}

// Course enrollments

func (s *DatabaseService) GetEnrollmentsBySchool(ctx context.Context, schoolID string) ([]models.CourseEnrollment, error) {
	return list(ctx, s, s.store.CourseEnrollments, models.CollectionCourseEnrollments, models.FieldSchoolID, schoolID, repository.Newest)
}

func (s *DatabaseService) CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) (*models.CourseEnrollment, error) {
	if enrollment.EnrolledAt == nil {
		now := s.now()
		enrollment.EnrolledAt = &now
	}
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentActive
	}
	return insert(ctx, s, s.store.CourseEnrollments, models.CollectionCourseEnrollments, enrollment)
}

func (s *DatabaseService) UpdateEnrollment(ctx context.Context, id string, enrollment *models.CourseEnrollment, fields []string) (*models.CourseEnrollment, error) {
	return update(ctx, s, s.store.CourseEnrollments, models.CollectionCourseEnrollments, id, enrollment, fields)
}

func (s *DatabaseService) DeleteEnrollment(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.CourseEnrollments, models.CollectionCourseEnrollments, id)
}

// Subjects

func (s *DatabaseService) GetSubjectsBySchool(ctx context.Context, schoolID string) ([]models.Subject, error) {
	return list(ctx, s, s.store.Subjects, models.CollectionSubjects, models.FieldSchoolID, schoolID, repository.Sort{Field: "name"})
}

func (s *DatabaseService) CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	return insert(ctx, s, s.store.Subjects, models.CollectionSubjects, subject)
}

func (s *DatabaseService) UpdateSubject(ctx context.Context, id string, subject *models.Subject, fields []string) (*models.Subject, error) {
	return update(ctx, s, s.store.Subjects, models.CollectionSubjects, id, subject, fields)
}

func (s *DatabaseService) DeleteSubject(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.Subjects, models.CollectionSubjects, id)
}

// Surveys

func (s *DatabaseService) GetSurveysByCourse(ctx context.Context, courseID string) ([]models.Survey, error) {
	return list(ctx, s, s.store.Surveys, models.CollectionSurveys, models.FieldCourseID, courseID, repository.Newest)
}

func (s *DatabaseService) GetSurveysBySchool(ctx context.Context, schoolID string) ([]models.Survey, error) {
	return list(ctx, s, s.store.Surveys, models.CollectionSurveys, models.FieldSchoolID, schoolID, repository.Newest)
}

func (s *DatabaseService) CreateSurvey(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	if survey.Status == "" {
		survey.Status = models.SurveyDraft
	}
	return insert(ctx, s, s.store.Surveys, models.CollectionSurveys, survey)
}

func (s *DatabaseService) UpdateSurvey(ctx context.Context, id string, survey *models.Survey, fields []string) (*models.Survey, error) {
	return update(ctx, s, s.store.Surveys, models.CollectionSurveys, id, survey, fields)
}

func (s *DatabaseService) DeleteSurvey(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.Surveys, models.CollectionSurveys, id)
}

// Survey questions

func (s *DatabaseService) GetQuestionsBySurvey(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error) {
	return list(ctx, s, s.store.SurveyQuestions, models.CollectionSurveyQuestions, models.FieldSurveyID, surveyID, repository.Sort{Field: "order"})
}

func (s *DatabaseService) CreateQuestion(ctx context.Context, question *models.SurveyQuestion) (*models.SurveyQuestion, error) {
	if question.Type == "" {
		question.Type = models.QuestionText
	}
	return insert(ctx, s, s.store.SurveyQuestions, models.CollectionSurveyQuestions, question)
}

func (s *DatabaseService) DeleteQuestion(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.SurveyQuestions, models.CollectionSurveyQuestions, id)
}

// Survey responses

func (s *DatabaseService) GetResponsesBySchool(ctx context.Context, schoolID string) ([]models.SurveyResponse, error) {
	return list(ctx, s, s.store.SurveyResponses, models.CollectionSurveyResponses, models.FieldSchoolID, schoolID, repository.Newest)
}

// GetResponseBySurveyAndStudent returns the student's submission, or nil when there is none.
func (s *DatabaseService) GetResponseBySurveyAndStudent(ctx context.Context, surveyID, studentID string) (*models.SurveyResponse, error) {
	var found *models.SurveyResponse
	err := s.observe(models.CollectionSurveyResponses, "find_one", func() error {
		var err error
		found, err = s.store.SurveyResponses.FindOne(ctx, repository.Filter{
			models.FieldSurveyID:  surveyID,
			models.FieldStudentID: studentID,
		})
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return found, err
}

func (s *DatabaseService) CreateResponse(ctx context.Context, resp *models.SurveyResponse) (*models.SurveyResponse, error) {
	if resp.SubmittedAt == nil {
		now := s.now()
		resp.SubmittedAt = &now
	}
	if resp.Answers == nil {
		resp.Answers = []models.Answer{}
	}
	return insert(ctx, s, s.store.SurveyResponses, models.CollectionSurveyResponses, resp)
}

// Terms

func (s *DatabaseService) GetTermsBySchool(ctx context.Context, schoolID string) ([]models.Term, error) {
	return list(ctx, s, s.store.Terms, models.CollectionTerms, models.FieldSchoolID, schoolID, repository.Newest)
}

func (s *DatabaseService) CreateTerm(ctx context.Context, term *models.Term) (*models.Term, error) {
	return insert(ctx, s, s.store.Terms, models.CollectionTerms, term)
}

// Users

func (s *DatabaseService) DeleteUser(ctx context.Context, id string) error {
	return remove(ctx, s, s.store.Users, models.CollectionUsers, id)
}

// Notifications

func (s *DatabaseService) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	return list(ctx, s, s.store.Notifications, models.CollectionNotifications, "", "", repository.Newest)
}

func (s *DatabaseService) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	return insert(ctx, s, s.store.Notifications, models.CollectionNotifications, notification)
}

// observe times fn against the store metrics.
func (s *DatabaseService) observe(collection, operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveStoreOperation(collection, operation, time.Since(start), err)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("store operation failed",
			zap.String("collection", collection),
			zap.String("operation", operation),
			zap.Error(err))
	}
	return err
}

func list[T any](ctx context.Context, s *DatabaseService, coll repository.Collection[T], collection, field, value string, sort repository.Sort) ([]T, error) {
	key := ListKey(collection, field, value)
	var cached []T
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	filter := repository.Filter{}
	if field != "" {
		filter[field] = value
	}

	var items []T
	err := s.observe(collection, "find", func() error {
		var err error
		items, err = coll.Find(ctx, filter, sort)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, items)
	return items, nil
}

func insert[T any](ctx context.Context, s *DatabaseService, coll repository.Collection[T], collection string, doc *T) (*T, error) {
	if err := s.observe(collection, "insert", func() error { return coll.Insert(ctx, doc) }); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, collection)
	return doc, nil
}

// update writes only the listed fields of doc; stored fields outside the list are kept.
func update[T any](ctx context.Context, s *DatabaseService, coll repository.Collection[T], collection, id string, doc *T, fields []string) (*T, error) {
	if err := s.observe(collection, "update", func() error { return coll.Update(ctx, id, doc, fields) }); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, collection)
	return doc, nil
}

func remove[T any](ctx context.Context, s *DatabaseService, coll repository.Collection[T], collection, id string) error {
	if err := s.observe(collection, "delete", func() error { return coll.Delete(ctx, id) }); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, collection)
	return nil
}
