package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/survey-admin-api/internal/models"
	"github.com/noah-isme/survey-admin-api/internal/repository"
	appErrors "github.com/noah-isme/survey-admin-api/pkg/errors"
)

type memCollection[T any, PT interface {
	*T
	models.Document
}] struct {
	docs  []T
	finds int
	err   error
}

func (m *memCollection[T, PT]) matches(doc T, filter repository.Filter) bool {
	raw, _ := json.Marshal(doc)
	fields := map[string]interface{}{}
	_ = json.Unmarshal(raw, &fields)
	for k, v := range filter {
		if fmt.Sprint(fields[k]) != v {
			return false
		}
	}
	return true
}

func (m *memCollection[T, PT]) Find(ctx context.Context, filter repository.Filter, sort repository.Sort) ([]T, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.finds++
	out := make([]T, 0)
	for _, doc := range m.docs {
		if m.matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *memCollection[T, PT]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	docs, err := m.Find(ctx, filter, repository.Sort{})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &docs[0], nil
}

func (m *memCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	if m.err != nil {
		return m.err
	}
	d := PT(doc)
	if d.DocumentID() == "" {
		d.SetDocumentID(fmt.Sprintf("id-%d", len(m.docs)+1))
	}
	d.Touch(time.Now().UTC())
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memCollection[T, PT]) Update(ctx context.Context, id string, doc *T, fields []string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.docs {
		if PT(&m.docs[i]).DocumentID() != id {
			continue
		}
		PT(doc).Touch(time.Now().UTC())
		stored := map[string]json.RawMessage{}
		sent := map[string]json.RawMessage{}
		raw, _ := json.Marshal(m.docs[i])
		_ = json.Unmarshal(raw, &stored)
		raw, _ = json.Marshal(doc)
		_ = json.Unmarshal(raw, &sent)
		stored["updatedAt"] = sent["updatedAt"]
		for _, f := range fields {
			if f == "_id" || f == "createdAt" || f == "updatedAt" {
				continue
			}
			if v, ok := sent[f]; ok {
				stored[f] = v
			} else {
				delete(stored, f)
			}
		}
		raw, _ = json.Marshal(stored)
		var merged T
		if err := json.Unmarshal(raw, &merged); err != nil {
			return err
		}
		m.docs[i] = merged
		*doc = merged
		return nil
	}
	return repository.ErrNotFound
}

func (m *memCollection[T, PT]) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.docs {
		if PT(&m.docs[i]).DocumentID() == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memStore struct {
	schools       *memCollection[models.School, *models.School]
	courses       *memCollection[models.Course, *models.Course]
	subjects      *memCollection[models.Subject, *models.Subject]
	terms         *memCollection[models.Term, *models.Term]
	users         *memCollection[models.User, *models.User]
	enrollments   *memCollection[models.CourseEnrollment, *models.CourseEnrollment]
	notifications *memCollection[models.Notification, *models.Notification]
	surveys       *memCollection[models.Survey, *models.Survey]
	questions     *memCollection[models.SurveyQuestion, *models.SurveyQuestion]
	responses     *memCollection[models.SurveyResponse, *models.SurveyResponse]
}

func newMemStore() (*memStore, *repository.Store) {
	m := &memStore{
		schools:       &memCollection[models.School, *models.School]{},
		courses:       &memCollection[models.Course, *models.Course]{},
		subjects:      &memCollection[models.Subject, *models.Subject]{},
		terms:         &memCollection[models.Term, *models.Term]{},
		users:         &memCollection[models.User, *models.User]{},
		enrollments:   &memCollection[models.CourseEnrollment, *models.CourseEnrollment]{},
		notifications: &memCollection[models.Notification, *models.Notification]{},
		surveys:       &memCollection[models.Survey, *models.Survey]{},
		questions:     &memCollection[models.SurveyQuestion, *models.SurveyQuestion]{},
		responses:     &memCollection[models.SurveyResponse, *models.SurveyResponse]{},
	}
	return m, &repository.Store{
		Schools:           m.schools,
		Courses:           m.courses,
		Subjects:          m.subjects,
		Terms:             m.terms,
		Users:             m.users,
		CourseEnrollments: m.enrollments,
		Notifications:     m.notifications,
		Surveys:           m.surveys,
		SurveyQuestions:   m.questions,
		SurveyResponses:   m.responses,
	}
}

type memCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: map[string][]byte{}}
}

func (r *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return r.getErr
	}
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = raw
	return nil
}

func (r *memCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range r.entries {
		if strings.HasPrefix(k, prefix) {
			delete(r.entries, k)
		}
	}
	return nil
}
