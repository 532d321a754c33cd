package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/survey-admin-api/internal/models"
)

// NewPostgresStore builds a store over one JSONB table per entity.
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *Store {
	return &Store{
		Schools:           NewPostgresCollection[models.School](db, tableFor(models.CollectionSchools), timeout),
		Courses:           NewPostgresCollection[models.Course](db, tableFor(models.CollectionCourses), timeout),
		Subjects:          NewPostgresCollection[models.Subject](db, tableFor(models.CollectionSubjects), timeout),
		Terms:             NewPostgresCollection[models.Term](db, tableFor(models.CollectionTerms), timeout),
		Users:             NewPostgresCollection[models.User](db, tableFor(models.CollectionUsers), timeout),
		CourseEnrollments: NewPostgresCollection[models.CourseEnrollment](db, tableFor(models.CollectionCourseEnrollments), timeout),
		Notifications:     NewPostgresCollection[models.Notification](db, tableFor(models.CollectionNotifications), timeout),
		Surveys:           NewPostgresCollection[models.Survey](db, tableFor(models.CollectionSurveys), timeout),
		SurveyQuestions:   NewPostgresCollection[models.SurveyQuestion](db, tableFor(models.CollectionSurveyQuestions), timeout),
		SurveyResponses:   NewPostgresCollection[models.SurveyResponse](db, tableFor(models.CollectionSurveyResponses), timeout),

		backend: "postgres",
		ping:    db.PingContext,
		close: func(context.Context) error {
			return db.Close()
		},
	}
}

// EnsurePostgresSchema creates the document tables and their lookup indexes.
func EnsurePostgresSchema(ctx context.Context, db *sqlx.DB) error {
	for _, spec := range specs {
		create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	body JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`, spec.table)
		if _, err := db.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("create table %s: %w", spec.table, err)
		}
		for _, field := range spec.indexed {
			index := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_%s_idx ON %s ((body->>'%s'))", spec.table, field, spec.table, field)
			if _, err := db.ExecContext(ctx, index); err != nil {
				return fmt.Errorf("create index %s.%s: %w", spec.table, field, err)
			}
		}
	}
	return nil
}
