// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package person_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirakawa/archmap/internal/catalog/person"
	"github.com/shirakawa/archmap/internal/platform/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRepository struct {
	people []*person.Person
	total  int
	err    error
}

func (fake *fakeRepository) Search(ctx context.Context, filter person.Filter, sortKey, sortDir string, limit, offset int) ([]*person.Person, int, error) {
	if fake.err != nil {
		return nil, 0, fake.err
	}
	return fake.people, fake.total, nil
}

func (fake *fakeRepository) GetByID(ctx context.Context, id int) (*person.Person, error) {
	if fake.err != nil {
		return nil, fake.err
	}
	for _, candidate := range fake.people {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return nil, apperr.NotFound("person")
}

func TestService_SearchPeople(t *testing.T) {
	repo := &fakeRepository{
		people: []*person.Person{{ID: 1, Name: "丹下健三"}},
		total:  1,
	}
	service := person.NewService(repo, testLogger())

	result := service.SearchPeople(context.Background(), 1, 10, person.Filter{Term: "丹下"}, person.SortName, person.DirAsc)

	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.PageCount)
}

/*
TestService_SearchPeople_FailureContainment pins the empty-sentinel contract
for the people side of the boundary.
*/
func TestService_SearchPeople_FailureContainment(t *testing.T) {
	service := person.NewService(&fakeRepository{err: errors.New("range fetch timeout")}, testLogger())

	result := service.SearchPeople(context.Background(), 3, 10, person.Filter{}, person.SortName, person.DirAsc)

	require.NotNil(t, result)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.PageCount)
	assert.Equal(t, 3, result.Page)
}

func TestService_GetPerson(t *testing.T) {
	repo := &fakeRepository{people: []*person.Person{{ID: 4, Name: "安藤忠雄"}}}
	service := person.NewService(repo, testLogger())

	// 1. Hit
	found, err := service.GetPerson(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "安藤忠雄", found.Name)

	// 2. Miss and data-layer failure both read as not-found
	_, err = service.GetPerson(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	service = person.NewService(&fakeRepository{err: errors.New("boom")}, testLogger())
	_, err = service.GetPerson(context.Background(), 4)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
