package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionRepository) FindOrCreate(ctx context.Context, record *entity.SessionRecord, ttl time.Duration) (*entity.SessionRecord, bool, error) {
	args := m.Called(ctx, record, ttl)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	if fn, ok := args.Get(0).(func(context.Context, *entity.SessionRecord, time.Duration) *entity.SessionRecord); ok {
		return fn(ctx, record, ttl), args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.SessionRecord), args.Bool(1), args.Error(2)
}

func (m *MockSessionRepository) Touch(ctx context.Context, sessionID string, lastSeenAt time.Time) error {
	args := m.Called(ctx, sessionID, lastSeenAt)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockSessionRevoker is a mock implementation of repository.SessionRevoker
type MockSessionRevoker struct {
	mock.Mock
}

func NewMockSessionRevoker(t *testing.T) *MockSessionRevoker {
	m := &MockSessionRevoker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionRevoker) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, ttl)
	return args.Error(0)
}

func (m *MockSessionRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
