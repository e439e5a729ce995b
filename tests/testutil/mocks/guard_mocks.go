package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// MockRateLimitStore is a mock implementation of repository.RateLimitStore
type MockRateLimitStore struct {
	mock.Mock
}

func NewMockRateLimitStore(t *testing.T) *MockRateLimitStore {
	m := &MockRateLimitStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRateLimitStore) Hit(ctx context.Context, key entity.BucketKey, window time.Duration, now time.Time) (*entity.RateLimitBucket, error) {
	args := m.Called(ctx, key, window, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RateLimitBucket), args.Error(1)
}

// MockAlertDispatcher is a mock implementation of service.AlertDispatcher
type MockAlertDispatcher struct {
	mock.Mock
}

func NewMockAlertDispatcher(t *testing.T) *MockAlertDispatcher {
	m := &MockAlertDispatcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAlertDispatcher) Dispatch(ctx context.Context, subjectID uuid.UUID, eventType entity.AlertEventType, details map[string]string) {
	m.Called(ctx, subjectID, eventType, details)
}

// MockAlertNotifier is a mock implementation of service.AlertNotifier
type MockAlertNotifier struct {
	mock.Mock
}

func NewMockAlertNotifier(t *testing.T) *MockAlertNotifier {
	m := &MockAlertNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAlertNotifier) Name() string {
	return "mock"
}

func (m *MockAlertNotifier) Notify(ctx context.Context, event *entity.AlertEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
