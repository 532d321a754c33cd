package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/noah-isme/survey-admin-api/internal/models"
)

// NewMongoStore builds a store over the collections of db.
func NewMongoStore(client *mongo.Client, db *mongo.Database, timeout time.Duration) *Store {
	return &Store{
		Schools:           NewMongoCollection[models.School](db, models.CollectionSchools, timeout),
		Courses:           NewMongoCollection[models.Course](db, models.CollectionCourses, timeout),
		Subjects:          NewMongoCollection[models.Subject](db, models.CollectionSubjects, timeout),
		Terms:             NewMongoCollection[models.Term](db, models.CollectionTerms, timeout),
		Users:             NewMongoCollection[models.User](db, models.CollectionUsers, timeout),
		CourseEnrollments: NewMongoCollection[models.CourseEnrollment](db, models.CollectionCourseEnrollments, timeout),
		Notifications:     NewMongoCollection[models.Notification](db, models.CollectionNotifications, timeout),
		Surveys:           NewMongoCollection[models.Survey](db, models.CollectionSurveys, timeout),
		SurveyQuestions:   NewMongoCollection[models.SurveyQuestion](db, models.CollectionSurveyQuestions, timeout),
		SurveyResponses:   NewMongoCollection[models.SurveyResponse](db, models.CollectionSurveyResponses, timeout),

		backend: "mongo",
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

// EnsureMongoIndexes creates the lookup indexes used by list reads.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range specs {
		if len(spec.indexed) == 0 {
			continue
		}
		idx := make([]mongo.IndexModel, 0, len(spec.indexed))
		for _, field := range spec.indexed {
			idx = append(idx, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetName(field + "_1"),
			})
		}
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", spec.collection, err)
		}
	}
	return nil
}
