package models

import "time"

// Document is implemented by every persisted entity.
type Document interface {
	DocumentID() string
	SetDocumentID(id string)
	Touch(now time.Time)
}

// Base carries the identity and timestamps shared by all documents.
// BSON and JSON field names are kept identical so filters work against either store.
type Base struct {
	ID        string    `bson:"_id" json:"_id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (b *Base) DocumentID() string { return b.ID }

func (b *Base) SetDocumentID(id string) { b.ID = id }

// Touch stamps UpdatedAt and, for new documents, CreatedAt.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Field names used as foreign keys in list filters.
const (
	FieldSchoolID  = "schoolId"
	FieldCourseID  = "courseId"
	FieldSurveyID  = "surveyId"
	FieldStudentID = "studentId"
)
