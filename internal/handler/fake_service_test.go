package handler

import (
	"context"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/internal/service"
	"github.com/noah-isme/survey-admin-api/pkg/export"
)

// databaseServiceMock records the last call and answers with canned data or err.
type databaseServiceMock struct {
	err error

	lastCall     string
	lastID       string
	lastSchoolID string
	lastCourseID string
	lastSurveyID string
	lastStudent  string
	lastFormat   export.Format
	lastFields   []string

	lastSchool       *models.School
	lastCourse       *models.Course
	lastEnrollment   *models.CourseEnrollment
	lastSubject      *models.Subject
	lastSurvey       *models.Survey
	lastQuestion     *models.SurveyQuestion
	lastResponse     *models.SurveyResponse
	lastTerm         *models.Term
	lastNotification *models.Notification

	response *models.SurveyResponse
	file     *service.ExportFile
}

func (m *databaseServiceMock) called(name string) { m.lastCall = name }

func (m *databaseServiceMock) GetAllSchools(ctx context.Context) ([]models.School, error) {
	m.called("GetAllSchools")
	return []models.School{{Base: models.Base{ID: "s1"}, Name: "North High"}}, m.err
}

func (m *databaseServiceMock) CreateSchool(ctx context.Context, school *models.School) (*models.School, error) {
	m.called("CreateSchool")
	m.lastSchool = school
	return school, m.err
}

func (m *databaseServiceMock) GetCoursesBySchool(ctx context.Context, schoolID string) ([]models.Course, error) {
	m.called("GetCoursesBySchool")
	m.lastSchoolID = schoolID
	return []models.Course{{Base: models.Base{ID: "c1"}, SchoolID: schoolID, Name: "Algebra"}}, m.err
}

func (m *databaseServiceMock) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	m.called("CreateCourse")
	m.lastCourse = course
	return course, m.err
}

func (m *databaseServiceMock) DeleteCourse(ctx context.Context, id string) error {
	m.called("DeleteCourse")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetEnrollmentsBySchool(ctx context.Context, schoolID string) ([]models.CourseEnrollment, error) {
	m.called("GetEnrollmentsBySchool")
	m.lastSchoolID = schoolID
	return []models.CourseEnrollment{}, m.err
}

func (m *databaseServiceMock) CreateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) (*models.CourseEnrollment, error) {
	m.called("CreateEnrollment")
	m.lastEnrollment = enrollment
	return enrollment, m.err
}

func (m *databaseServiceMock) UpdateEnrollment(ctx context.Context, id string, enrollment *models.CourseEnrollment, fields []string) (*models.CourseEnrollment, error) {
	m.called("UpdateEnrollment")
	m.lastID = id
	m.lastFields = fields
	m.lastEnrollment = enrollment
	return enrollment, m.err
}

func (m *databaseServiceMock) DeleteEnrollment(ctx context.Context, id string) error {
	m.called("DeleteEnrollment")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetSubjectsBySchool(ctx context.Context, schoolID string) ([]models.Subject, error) {
	m.called("GetSubjectsBySchool")
	m.lastSchoolID = schoolID
	return []models.Subject{}, m.err
}

func (m *databaseServiceMock) CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	m.called("CreateSubject")
	m.lastSubject = subject
	return subject, m.err
}

func (m *databaseServiceMock) UpdateSubject(ctx context.Context, id string, subject *models.Subject, fields []string) (*models.Subject, error) {
	m.called("UpdateSubject")
	m.lastID = id
	m.lastFields = fields
	m.lastSubject = subject
	return subject, m.err
}

func (m *databaseServiceMock) DeleteSubject(ctx context.Context, id string) error {
	m.called("DeleteSubject")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetSurveysByCourse(ctx context.Context, courseID string) ([]models.Survey, error) {
	m.called("GetSurveysByCourse")
	m.lastCourseID = courseID
	return []models.Survey{}, m.err
}

func (m *databaseServiceMock) GetSurveysBySchool(ctx context.Context, schoolID string) ([]models.Survey, error) {
	m.called("GetSurveysBySchool")
	m.lastSchoolID = schoolID
	return []models.Survey{}, m.err
}

func (m *databaseServiceMock) CreateSurvey(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	m.called("CreateSurvey")
	m.lastSurvey = survey
	return survey, m.err
}

func (m *databaseServiceMock) UpdateSurvey(ctx context.Context, id string, survey *models.Survey, fields []string) (*models.Survey, error) {
	m.called("UpdateSurvey")
	m.lastID = id
	m.lastFields = fields
	m.lastSurvey = survey
	return survey, m.err
}

func (m *databaseServiceMock) DeleteSurvey(ctx context.Context, id string) error {
	m.called("DeleteSurvey")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetQuestionsBySurvey(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error) {
	m.called("GetQuestionsBySurvey")
	m.lastSurveyID = surveyID
	return []models.SurveyQuestion{}, m.err
}

func (m *databaseServiceMock) CreateQuestion(ctx context.Context, question *models.SurveyQuestion) (*models.SurveyQuestion, error) {
	m.called("CreateQuestion")
	m.lastQuestion = question
	return question, m.err
}

func (m *databaseServiceMock) DeleteQuestion(ctx context.Context, id string) error {
	m.called("DeleteQuestion")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetResponsesBySchool(ctx context.Context, schoolID string) ([]models.SurveyResponse, error) {
	m.called("GetResponsesBySchool")
	m.lastSchoolID = schoolID
	return []models.SurveyResponse{}, m.err
}

func (m *databaseServiceMock) GetResponseBySurveyAndStudent(ctx context.Context, surveyID, studentID string) (*models.SurveyResponse, error) {
	m.called("GetResponseBySurveyAndStudent")
	m.lastSurveyID = surveyID
	m.lastStudent = studentID
	return m.response, m.err
}

func (m *databaseServiceMock) CreateResponse(ctx context.Context, resp *models.SurveyResponse) (*models.SurveyResponse, error) {
	m.called("CreateResponse")
	m.lastResponse = resp
	return resp, m.err
}

func (m *databaseServiceMock) GetSurveySummary(ctx context.Context, surveyID string) (*models.SurveySummary, error) {
	m.called("GetSurveySummary")
	m.lastSurveyID = surveyID
	return &models.SurveySummary{SurveyID: surveyID}, m.err
}

func (m *databaseServiceMock) ExportSurveyResponses(ctx context.Context, surveyID string, format export.Format) (*service.ExportFile, error) {
	m.called("ExportSurveyResponses")
	m.lastSurveyID = surveyID
	m.lastFormat = format
	return m.file, m.err
}

func (m *databaseServiceMock) GetTermsBySchool(ctx context.Context, schoolID string) ([]models.Term, error) {
	m.called("GetTermsBySchool")
	m.lastSchoolID = schoolID
	return []models.Term{}, m.err
}

func (m *databaseServiceMock) CreateTerm(ctx context.Context, term *models.Term) (*models.Term, error) {
	m.called("CreateTerm")
	m.lastTerm = term
	return term, m.err
}

func (m *databaseServiceMock) DeleteUser(ctx context.Context, id string) error {
	m.called("DeleteUser")
	m.lastID = id
	return m.err
}

func (m *databaseServiceMock) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	m.called("GetNotifications")
	return []models.Notification{}, m.err
}

func (m *databaseServiceMock) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	m.called("CreateNotification")
	m.lastNotification = notification
	return notification, m.err
}
