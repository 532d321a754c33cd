package repository

import (
	"context"

	"github.com/noah-isme/survey-admin-api/internal/models"
)

// Store groups the collections of every entity behind one backend.
type Store struct {
	Schools           Collection[models.School]
	Courses           Collection[models.Course]
	Subjects          Collection[models.Subject]
	Terms             Collection[models.Term]
	Users             Collection[models.User]
	CourseEnrollments Collection[models.CourseEnrollment]
	Notifications     Collection[models.Notification]
	Surveys           Collection[models.Survey]
	SurveyQuestions   Collection[models.SurveyQuestion]
	SurveyResponses   Collection[models.SurveyResponse]

	backend string
	ping    func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Backend names the driver serving the store.
func (s *Store) Backend() string {
	return s.backend
}

// Ping checks connectivity with the backend.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
