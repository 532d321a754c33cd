package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/internal/repository"
	"github.com/noah-isme/survey-admin-api/pkg/export"
)

// ExportFile is a rendered survey response export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GetSurveySummary aggregates every response of a survey per question.
func (s *DatabaseService) GetSurveySummary(ctx context.Context, surveyID string) (*models.SurveySummary, error) {
	questions, responses, err := s.surveyAnswers(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return summarize(surveyID, questions, responses), nil
}

// ExportSurveyResponses renders a survey's responses, one row per student submission.
func (s *DatabaseService) ExportSurveyResponses(ctx context.Context, surveyID string, format export.Format) (*ExportFile, error) {
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}

	questions, responses, err := s.surveyAnswers(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	title := "Survey responses"
	var survey *models.Survey
	err = s.observe(models.CollectionSurveys, "find_one", func() error {
		var err error
		survey, err = s.store.Surveys.FindOne(ctx, repository.Filter{"_id": surveyID})
		return err
	})
	switch {
	case err == nil && survey.Title != "":
		title = survey.Title
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	dataset := responseDataset(title, questions, responses)
	data, err := renderer.Render(dataset)
	if err != nil {
		return nil, fmt.Errorf("render survey %s export: %w", surveyID, err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("survey-%s-responses.%s", surveyID, format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

func (s *DatabaseService) surveyAnswers(ctx context.Context, surveyID string) ([]models.SurveyQuestion, []models.SurveyResponse, error) {
	questions, err := s.GetQuestionsBySurvey(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	responses, err := list(ctx, s, s.store.SurveyResponses, models.CollectionSurveyResponses, models.FieldSurveyID, surveyID, repository.Sort{Field: "createdAt"})
	if err != nil {
		return nil, nil, err
	}
	return questions, responses, nil
}

func summarize(surveyID string, questions []models.SurveyQuestion, responses []models.SurveyResponse) *models.SurveySummary {
	ordered := sortedQuestions(questions)
	summary := &models.SurveySummary{
		SurveyID:      surveyID,
		ResponseCount: len(responses),
		Questions:     make([]models.QuestionSummary, len(ordered)),
	}

	index := make(map[string]int, len(ordered))
	sums := make([]float64, len(ordered))
	counts := make([]int, len(ordered))
	for i, q := range ordered {
		index[q.ID] = i
		qs := models.QuestionSummary{QuestionID: q.ID, Text: q.Text, Type: q.Type}
		if q.Type == models.QuestionChoice {
			qs.Tally = make(map[string]int, len(q.Options))
			for _, opt := range q.Options {
				qs.Tally[opt] = 0
			}
		}
		summary.Questions[i] = qs
	}

	for _, r := range responses {
		for _, a := range r.Answers {
			i, ok := index[a.QuestionID]
			if !ok || answerText(a.Value) == "" {
				continue
			}
			qs := &summary.Questions[i]
			qs.Answered++
			switch qs.Type {
			case models.QuestionRating:
				if n, ok := answerNumber(a.Value); ok {
					sums[i] += n
					counts[i]++
				}
			case models.QuestionChoice:
				for _, choice := range answerChoices(a.Value) {
					qs.Tally[choice]++
				}
			}
		}
	}

	for i := range summary.Questions {
		if counts[i] > 0 {
			avg := sums[i] / float64(counts[i])
			summary.Questions[i].Average = &avg
		}
	}
	return summary
}

func responseDataset(title string, questions []models.SurveyQuestion, responses []models.SurveyResponse) export.Dataset {
	ordered := sortedQuestions(questions)
	headers := []string{"studentId", "submittedAt"}
	columns := make(map[string]string, len(ordered))
	seen := make(map[string]int, len(ordered))
	for _, q := range ordered {
		header := q.Text
		if header == "" {
			header = q.ID
		}
		if n := seen[header]; n > 0 {
			seen[header] = n + 1
			header = fmt.Sprintf("%s (%d)", header, n+1)
		} else {
			seen[header] = 1
		}
		columns[q.ID] = header
		headers = append(headers, header)
	}

	rows := make([]map[string]string, 0, len(responses))
	for _, r := range responses {
		row := map[string]string{"studentId": r.StudentID}
		if r.SubmittedAt != nil {
			row["submittedAt"] = r.SubmittedAt.UTC().Format(time.RFC3339)
		}
		for _, a := range r.Answers {
			if header, ok := columns[a.QuestionID]; ok {
				row[header] = answerText(a.Value)
			}
		}
		rows = append(rows, row)
	}

	return export.Dataset{Title: title, Headers: headers, Rows: rows}
}

func sortedQuestions(questions []models.SurveyQuestion) []models.SurveyQuestion {
	ordered := append([]models.SurveyQuestion(nil), questions...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	return ordered
}

// answerText renders an answer value decoded from either JSON or BSON.
func answerText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case []string, []interface{}, primitive.A:
		return strings.Join(answerChoices(v), "; ")
	default:
		return fmt.Sprint(v)
	}
}

// answerNumber reads a numeric answer. NaN and infinities do not count as numbers.
func answerNumber(v interface{}) (float64, bool) {
	n, ok := rawNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func rawNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// answerChoices flattens single and multi-select answers into their option labels.
func answerChoices(v interface{}) []string {
	var items []interface{}
	switch val := v.(type) {
	case []string:
		return val
	case []interface{}:
		items = val
	case primitive.A:
		items = val
	default:
		if s := answerText(v); s != "" {
			return []string{s}
		}
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := answerText(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
