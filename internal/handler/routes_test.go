package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/service"
	"github.com/noah-isme/survey-admin-api/pkg/export"
)

const prefix = "/api/mongodb"

func newTestRouter(db DatabaseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(prefix), db, zap.NewNop())
	return r
}

func perform(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, prefix+path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestMissingQueryParameters(t *testing.T) {
	cases := []struct {
		path    string
		message string
	}{
		{"/courses", "School ID is required"},
		{"/course-enrollments", "School ID is required"},
		{"/subjects", "School ID is required"},
		{"/terms", "School ID is required"},
		{"/surveys", "Course ID or School ID is required"},
		{"/survey-questions", "Survey ID is required"},
		{"/survey-responses", "School ID or Survey ID and Student ID are required"},
		{"/survey-responses?surveyId=sv1", "School ID or Survey ID and Student ID are required"},
		{"/survey-responses/summary", "Survey ID is required"},
		{"/survey-responses/export", "Survey ID is required"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			mock := &databaseServiceMock{}
			w := perform(newTestRouter(mock), http.MethodGet, tc.path, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
			assert.Empty(t, mock.lastCall)
		})
	}
}

func TestMissingIDOnMutations(t *testing.T) {
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/courses"},
		{http.MethodPut, "/course-enrollments"},
		{http.MethodDelete, "/course-enrollments"},
		{http.MethodPut, "/subjects"},
		{http.MethodDelete, "/subjects"},
		{http.MethodPut, "/surveys"},
		{http.MethodDelete, "/surveys"},
		{http.MethodDelete, "/survey-questions"},
		{http.MethodDelete, "/users"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			mock := &databaseServiceMock{}
			w := perform(newTestRouter(mock), tc.method, tc.path, `{}`)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ID is required", errorMessage(t, w))
			assert.Empty(t, mock.lastCall)
		})
	}
}

func TestServiceFailuresAreMasked(t *testing.T) {
	cases := []struct {
		method  string
		path    string
		body    string
		message string
	}{
		{http.MethodGet, "/schools", "", "Failed to fetch schools"},
		{http.MethodPost, "/schools", `{"name":"x"}`, "Failed to create school"},
		{http.MethodGet, "/courses?schoolId=s1", "", "Failed to fetch courses"},
		{http.MethodPost, "/courses", `{"name":"x"}`, "Failed to create course"},
		{http.MethodDelete, "/courses/c1", "", "Failed to delete course"},
		{http.MethodGet, "/course-enrollments?schoolId=s1", "", "Failed to fetch enrollments"},
		{http.MethodPost, "/course-enrollments", `{}`, "Failed to create enrollment"},
		{http.MethodPut, "/course-enrollments/e1", `{}`, "Failed to update enrollment"},
		{http.MethodDelete, "/course-enrollments/e1", "", "Failed to delete enrollment"},
		{http.MethodGet, "/subjects?schoolId=s1", "", "Failed to fetch subjects"},
		{http.MethodPost, "/subjects", `{}`, "Failed to create subject"},
		{http.MethodPut, "/subjects/sj1", `{}`, "Failed to update subject"},
		{http.MethodDelete, "/subjects/sj1", "", "Failed to delete subject"},
		{http.MethodGet, "/surveys?schoolId=s1", "", "Failed to fetch surveys"},
		{http.MethodPost, "/surveys", `{}`, "Failed to create survey"},
		{http.MethodPut, "/surveys/sv1", `{}`, "Failed to update survey"},
		{http.MethodDelete, "/surveys/sv1", "", "Failed to delete survey"},
		{http.MethodGet, "/survey-questions?surveyId=sv1", "", "Failed to fetch questions"},
		{http.MethodPost, "/survey-questions", `{}`, "Failed to create question"},
		{http.MethodDelete, "/survey-questions/q1", "", "Failed to delete question"},
		{http.MethodGet, "/survey-responses?schoolId=s1", "", "Failed to fetch responses"},
		{http.MethodGet, "/survey-responses?surveyId=sv1&studentId=st1", "", "Failed to fetch responses"},
		{http.MethodPost, "/survey-responses", `{}`, "Failed to create response"},
		{http.MethodGet, "/survey-responses/summary?surveyId=sv1", "", "Failed to summarize responses"},
		{http.MethodGet, "/survey-responses/export?surveyId=sv1", "", "Failed to export responses"},
		{http.MethodGet, "/terms?schoolId=s1", "", "Failed to fetch terms"},
		{http.MethodPost, "/terms", `{}`, "Failed to create term"},
		{http.MethodDelete, "/users/u1", "", "Failed to delete user"},
		{http.MethodGet, "/admin/notifications", "", "Failed to fetch notifications"},
		{http.MethodPost, "/admin/notifications", `{"title":"t","message":"m"}`, "Failed to create notification"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			mock := &databaseServiceMock{err: errors.New("connection refused by 10.0.0.7")}
			w := perform(newTestRouter(mock), tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
			assert.NotContains(t, w.Body.String(), "10.0.0.7")
		})
	}
}

func TestSuccessEnvelopeKeys(t *testing.T) {
	cases := []struct {
		method string
		path   string
		body   string
		key    string
	}{
		{http.MethodGet, "/schools", "", "schools"},
		{http.MethodPost, "/schools", `{"name":"North High"}`, "school"},
		{http.MethodGet, "/courses?schoolId=abc", "", "courses"},
		{http.MethodPost, "/courses", `{"name":"Algebra"}`, "course"},
		{http.MethodGet, "/course-enrollments?schoolId=abc", "", "enrollments"},
		{http.MethodPost, "/course-enrollments", `{"studentId":"st1"}`, "enrollment"},
		{http.MethodPut, "/course-enrollments/e1", `{"status":"dropped"}`, "enrollment"},
		{http.MethodGet, "/subjects?schoolId=abc", "", "subjects"},
		{http.MethodPost, "/subjects", `{"name":"Math"}`, "subject"},
		{http.MethodPut, "/subjects?id=sj1", `{"name":"Math"}`, "subject"},
		{http.MethodGet, "/surveys?courseId=c1", "", "surveys"},
		{http.MethodPost, "/surveys", `{"title":"Feedback"}`, "survey"},
		{http.MethodPut, "/surveys/sv1", `{"title":"Feedback"}`, "survey"},
		{http.MethodGet, "/survey-questions?surveyId=sv1", "", "questions"},
		{http.MethodPost, "/survey-questions", `{"text":"Why?"}`, "question"},
		{http.MethodGet, "/survey-responses?schoolId=abc", "", "responses"},
		{http.MethodPost, "/survey-responses", `{"surveyId":"sv1"}`, "response"},
		{http.MethodGet, "/survey-responses/summary?surveyId=sv1", "", "summary"},
		{http.MethodGet, "/terms?schoolId=abc", "", "terms"},
		{http.MethodPost, "/terms", `{"name":"Fall"}`, "term"},
		{http.MethodGet, "/admin/notifications", "", "notifications"},
		{http.MethodPost, "/admin/notifications", `{"title":"t","message":"m"}`, "notification"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := perform(newTestRouter(&databaseServiceMock{}), tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Len(t, body, 1)
			assert.Contains(t, body, tc.key)
		})
	}
}

func TestDeleteMessages(t *testing.T) {
	cases := map[string]string{
		"/courses/c1":            "Course deleted successfully",
		"/course-enrollments/e1": "Enrollment deleted successfully",
		"/subjects/sj1":          "Subject deleted successfully",
		"/surveys/sv1":           "Survey deleted successfully",
		"/survey-questions/q1":   "Question deleted successfully",
		"/users/u1":              "User deleted successfully",
	}
	for path, message := range cases {
		t.Run(path, func(t *testing.T) {
			w := perform(newTestRouter(&databaseServiceMock{}), http.MethodDelete, path, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"message":"`+message+`"}`, w.Body.String())
		})
	}
}

func TestCoursesBySchool(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodGet, "/courses?schoolId=abc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", mock.lastSchoolID)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body struct {
		Courses []struct {
			ID       string `json:"_id"`
			SchoolID string `json:"schoolId"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Courses, 1)
	assert.Equal(t, "c1", body.Courses[0].ID)
}

func TestIDFromQueryString(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodDelete, "/users?id=u42", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DeleteUser", mock.lastCall)
	assert.Equal(t, "u42", mock.lastID)
}

func TestUpdatePassesPathIDAndBody(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodPut, "/surveys/sv9", `{"title":"Renamed","status":"active"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sv9", mock.lastID)
	require.NotNil(t, mock.lastSurvey)
	assert.Equal(t, "Renamed", mock.lastSurvey.Title)
	assert.Equal(t, []string{"status", "title"}, mock.lastFields)
}

func TestUpdateForwardsOnlySentFields(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodPut, "/surveys/sv9", `{"status":"closed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"status"}, mock.lastFields)

	mock = &databaseServiceMock{}
	w = perform(newTestRouter(mock), http.MethodPut, "/subjects?id=sub1", `{"name":"Art"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sub1", mock.lastID)
	assert.Equal(t, []string{"name"}, mock.lastFields)
}

func TestUpdateRejectsMalformedBody(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodPut, "/surveys/sv9", `{"status":`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, mock.lastCall)
}

func TestSurveysPreferCourseID(t *testing.T) {
	mock := &databaseServiceMock{}
	perform(newTestRouter(mock), http.MethodGet, "/surveys?courseId=c1&schoolId=s1", "")
	assert.Equal(t, "GetSurveysByCourse", mock.lastCall)
	assert.Equal(t, "c1", mock.lastCourseID)

	mock = &databaseServiceMock{}
	perform(newTestRouter(mock), http.MethodGet, "/surveys?schoolId=s1", "")
	assert.Equal(t, "GetSurveysBySchool", mock.lastCall)
}

func TestResponseLookupBySurveyAndStudent(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodGet, "/survey-responses?surveyId=sv1&studentId=st1&schoolId=s1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GetResponseBySurveyAndStudent", mock.lastCall)
	assert.JSONEq(t, `{"response":null}`, w.Body.String())
}

func TestNotificationRequiresTitleAndMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"title":"Closed"}`, `{"message":"School closed"}`} {
		mock := &databaseServiceMock{}
		w := perform(newTestRouter(mock), http.MethodPost, "/admin/notifications", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Title and message are required", errorMessage(t, w))
		assert.Empty(t, mock.lastCall)
	}

	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodPost, "/admin/notifications", `{"title":"Closed","message":"School closed","audience":"parent"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.lastNotification)
	assert.Equal(t, "parent", string(mock.lastNotification.Audience))
}

func TestMalformedBodyIsUnhandledFailure(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodPost, "/courses", `{"name":`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create course", errorMessage(t, w))
	assert.Empty(t, mock.lastCall)
}

func TestExportResponses(t *testing.T) {
	mock := &databaseServiceMock{file: &service.ExportFile{
		Filename:    "survey-sv1-responses.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}}
	w := perform(newTestRouter(mock), http.MethodGet, "/survey-responses/export?surveyId=sv1&format=XLSX", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.FormatXLSX, mock.lastFormat)
	assert.Equal(t, mock.file.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="survey-sv1-responses.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String())
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	mock := &databaseServiceMock{}
	w := perform(newTestRouter(mock), http.MethodGet, "/survey-responses/export?surveyId=sv1&format=docx", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Format must be csv, pdf or xlsx", errorMessage(t, w))
	assert.Empty(t, mock.lastCall)
}

type pingerStub struct{ err error }

func (p pingerStub) Ping(ctx context.Context) error { return p.err }

func TestOpsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()

	r := gin.New()
	RegisterOps(r, NewMetricsHandler(metrics, pingerStub{}, zap.NewNop()))

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	down := gin.New()
	RegisterOps(down, NewMetricsHandler(metrics, pingerStub{err: errors.New("no primary")}, nil))
	w := httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}
