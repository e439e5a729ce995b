package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock of email.Sender
type MockEmailSender struct {
	mock.Mock
}

func NewMockEmailSender(t *testing.T) *MockEmailSender {
	m := &MockEmailSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEmailSender) SendHTML(to []string, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}
