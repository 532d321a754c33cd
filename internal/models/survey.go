package models

import "time"

const (
	CollectionSurveys         = "surveys"
	CollectionSurveyQuestions = "surveyQuestions"
	CollectionSurveyResponses = "surveyResponses"
)

type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "draft"
	SurveyActive SurveyStatus = "active"
	SurveyClosed SurveyStatus = "closed"
)

// Survey is a questionnaire attached to a course.
type Survey struct {
	Base        `bson:",inline"`
	SchoolID    string       `bson:"schoolId" json:"schoolId"`
	CourseID    string       `bson:"courseId,omitempty" json:"courseId,omitempty"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Status      SurveyStatus `bson:"status,omitempty" json:"status,omitempty"`
	OpensAt     *time.Time   `bson:"opensAt,omitempty" json:"opensAt,omitempty"`
	ClosesAt    *time.Time   `bson:"closesAt,omitempty" json:"closesAt,omitempty"`
}

type QuestionType string

const (
	QuestionText   QuestionType = "text"
	QuestionRating QuestionType = "rating"
	QuestionChoice QuestionType = "choice"
)

type SurveyQuestion struct {
	Base     `bson:",inline"`
	SurveyID string       `bson:"surveyId" json:"surveyId"`
	Text     string       `bson:"text" json:"text"`
	Type     QuestionType `bson:"type" json:"type"`
	Options  []string     `bson:"options,omitempty" json:"options,omitempty"`
	Order    int          `bson:"order" json:"order"`
	Required bool         `bson:"required" json:"required"`
}

// Answer holds a single question's answer. Value is a string, a number, or a list of
// strings for multi-select choice questions.
type Answer struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Value      interface{} `bson:"value" json:"value"`
}

// SurveyResponse is one student's submission.
type SurveyResponse struct {
	Base        `bson:",inline"`
	SchoolID    string     `bson:"schoolId" json:"schoolId"`
	SurveyID    string     `bson:"surveyId" json:"surveyId"`
	CourseID    string     `bson:"courseId,omitempty" json:"courseId,omitempty"`
	StudentID   string     `bson:"studentId" json:"studentId"`
	Answers     []Answer   `bson:"answers" json:"answers"`
	SubmittedAt *time.Time `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
}

// SurveySummary aggregates all responses of a survey per question.
type SurveySummary struct {
	SurveyID      string            `json:"surveyId"`
	ResponseCount int               `json:"responseCount"`
	Questions     []QuestionSummary `json:"questions"`
}

type QuestionSummary struct {
	QuestionID string         `json:"questionId"`
	Text       string         `json:"text"`
	Type       QuestionType   `json:"type"`
	Answered   int            `json:"answered"`
	Average    *float64       `json:"average,omitempty"`
	Tally      map[string]int `json:"tally,omitempty"`
}
