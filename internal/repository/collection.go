package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/noah-isme/survey-admin-api/internal/models"
)

// ErrNotFound is returned when a lookup, update or delete matches no document.
var ErrNotFound = errors.New("document not found")

// Filter restricts list reads to documents whose top-level string fields equal the given values.
type Filter map[string]string

// Keys returns the filter fields in a stable order.
func (f Filter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sort orders list reads by a single field.
type Sort struct {
	Field string
	Desc  bool
}

// Newest sorts documents by creation time, most recent first.
var Newest = Sort{Field: "createdAt", Desc: true}

// Collection is the persistence contract shared by every entity store.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter, sort Sort) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Insert(ctx context.Context, doc *T) error
	// Update writes the listed top-level fields of doc onto document id and refreshes doc
	// with the stored result. Fields not listed keep their stored values.
	Update(ctx context.Context, id string, doc *T, fields []string) error
	Delete(ctx context.Context, id string) error
}

// documentPtr constrains generic collections to pointer types implementing models.Document.
type documentPtr[T any] interface {
	*T
	models.Document
}

// collectionSpec describes one entity's storage names and lookup fields.
type collectionSpec struct {
	collection string
	table      string
	indexed    []string
}

var specs = []collectionSpec{
	{collection: models.CollectionSchools, table: "schools"},
	{collection: models.CollectionCourses, table: "courses", indexed: []string{models.FieldSchoolID}},
	{collection: models.CollectionSubjects, table: "subjects", indexed: []string{models.FieldSchoolID}},
	{collection: models.CollectionTerms, table: "terms", indexed: []string{models.FieldSchoolID}},
	{collection: models.CollectionUsers, table: "users", indexed: []string{models.FieldSchoolID}},
	{collection: models.CollectionCourseEnrollments, table: "course_enrollments", indexed: []string{models.FieldSchoolID, models.FieldCourseID}},
	{collection: models.CollectionNotifications, table: "notifications"},
	{collection: models.CollectionSurveys, table: "surveys", indexed: []string{models.FieldSchoolID, models.FieldCourseID}},
	{collection: models.CollectionSurveyQuestions, table: "survey_questions", indexed: []string{models.FieldSurveyID}},
	{collection: models.CollectionSurveyResponses, table: "survey_responses", indexed: []string{models.FieldSchoolID, models.FieldSurveyID, models.FieldStudentID}},
}

// immutableFields are maintained by the store and never taken from a client payload.
var immutableFields = map[string]struct{}{"_id": {}, "createdAt": {}, "updatedAt": {}}

// writableFields drops the store-maintained names from fields.
func writableFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := immutableFields[f]; !skip {
			out = append(out, f)
		}
	}
	return out
}

func tableFor(collection string) string {
	for _, s := range specs {
		if s.collection == collection {
			return s.table
		}
	}
	return collection
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
