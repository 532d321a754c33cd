package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/survey-admin-api/pkg/errors"
)

func TestCacheRepositoryGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectGet("survey-api:courses:schoolId=s1").SetVal(`[{"name":"Algebra"}]`)

	var dest []map[string]string
	require.NoError(t, repo.Get(context.Background(), "survey-api:courses:schoolId=s1", &dest))
	assert.Equal(t, "Algebra", dest[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectGet("missing").RedisNil()

	var dest []string
	err := repo.Get(context.Background(), "missing", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewCacheRepository(client)

	mock.ExpectScan(0, "survey-api:courses:*", scanBatch).SetVal([]string{"k1", "k2"}, 7)
	mock.ExpectDel("k1", "k2").SetVal(2)
	mock.ExpectScan(7, "survey-api:courses:*", scanBatch).SetVal(nil, 0)

	require.NoError(t, repo.DeleteByPattern(context.Background(), "survey-api:courses:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryNilClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	var dest []string
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", dest, 0))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "*"))
}
