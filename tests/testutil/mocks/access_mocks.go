package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// MockDemoGrantRepository is a mock implementation of repository.DemoGrantRepository
type MockDemoGrantRepository struct {
	mock.Mock
}

func NewMockDemoGrantRepository(t *testing.T) *MockDemoGrantRepository {
	m := &MockDemoGrantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDemoGrantRepository) FindBySubjectID(ctx context.Context, subjectID uuid.UUID) (*entity.DemoGrant, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DemoGrant), args.Error(1)
}

func (m *MockDemoGrantRepository) CreateIfAbsent(ctx context.Context, grant *entity.DemoGrant) (*entity.DemoGrant, bool, error) {
	args := m.Called(ctx, grant)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	if fn, ok := args.Get(0).(func(context.Context, *entity.DemoGrant) *entity.DemoGrant); ok {
		return fn(ctx, grant), args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.DemoGrant), args.Bool(1), args.Error(2)
}

// MockCatalogReader is a mock implementation of repository.CatalogReader
type MockCatalogReader struct {
	mock.Mock
}

func NewMockCatalogReader(t *testing.T) *MockCatalogReader {
	m := &MockCatalogReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogReader) HasAnyEnrollment(ctx context.Context, subjectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, subjectID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogReader) FirstLessonOf(ctx context.Context, programID int64) (int64, error) {
	args := m.Called(ctx, programID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogReader) LessonOwnerOf(ctx context.Context, resourceID int64) (int64, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).(int64), args.Error(1)
}
