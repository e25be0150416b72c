// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package tag_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirakawa/archmap/internal/catalog/tag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository serves canned tag fields and optionally fails.
type fakeRepository struct {
	fields []string
	err    error
}

func (fake *fakeRepository) TagFields(ctx context.Context) ([]string, error) {
	return fake.fields, fake.err
}

func (fake *fakeRepository) TagFieldsContaining(ctx context.Context, fragment string) ([]string, error) {
	if fake.err != nil {
		return nil, fake.err
	}
	var matched []string
	for _, field := range fake.fields {
		if strings.Contains(field, fragment) {
			matched = append(matched, field)
		}
	}
	return matched, nil
}

/*
TestService_ListBaseTags verifies dedup through the variant grammar: two
issues of the same magazine collapse into one base tag.
*/
func TestService_ListBaseTags(t *testing.T) {
	repo := &fakeRepository{fields: []string{
		"新建築2014年7月号",
		"新建築2016年3月号,BCS賞(2018)",
		"日本建築学会賞",
		"旧庁舎の追加建築",
	}}
	service := tag.NewService(repo, testLogger())

	bases := service.ListBaseTags(context.Background())

	assert.ElementsMatch(t, []string{"新建築", "BCS賞", "日本建築学会賞"}, bases)
	assert.NotContains(t, bases, "旧庁舎の追加建築")
}

/*
TestService_ListYearSuffixes verifies suffix extraction under one base,
display ordering, and exclusion of the bare base token itself.
*/
func TestService_ListYearSuffixes(t *testing.T) {
	repo := &fakeRepository{fields: []string{
		"新建築2016年3月号",
		"新建築2014年7月号",
		"新建築",
		"BCS賞(2018)",
	}}
	service := tag.NewService(repo, testLogger())

	suffixes := service.ListYearSuffixes(context.Background(), "新建築")

	assert.Equal(t, []string{"2014年7月号", "2016年3月号"}, suffixes)
}

/*
TestService_FailureContainment verifies that dataset failures degrade to
empty listings instead of propagating.
*/
func TestService_FailureContainment(t *testing.T) {
	repo := &fakeRepository{err: errors.New("range fetch timeout")}
	service := tag.NewService(repo, testLogger())

	assert.Empty(t, service.ListBaseTags(context.Background()))
	assert.Empty(t, service.ListYearSuffixes(context.Background(), "新建築"))
}
