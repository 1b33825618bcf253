package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) PurgeExpired() int {
	return m.Called().Int(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Cleanup(maxIdle time.Duration) int {
	return m.Called(maxIdle).Int(0)
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler("every now and then", nil, nil)
	assert.Error(t, err)
}

func TestHousekeeping(t *testing.T) {
	store := new(MockStore)
	store.On("PurgeExpired").Return(3).Once()
	limiter := new(MockLimiter)
	limiter.On("Cleanup", limiterIdle).Return(1).Once()

	s, err := NewScheduler("@every 1h", store, limiter)
	require.NoError(t, err)

	s.Housekeeping()

	store.AssertExpectations(t)
	limiter.AssertExpectations(t)
}

func TestHousekeeping_NoSessionStore(t *testing.T) {
	limiter := new(MockLimiter)
	limiter.On("Cleanup", limiterIdle).Return(0).Once()

	s, err := NewScheduler("@every 1h", nil, limiter)
	require.NoError(t, err)

	assert.NotPanics(t, s.Housekeeping)
	limiter.AssertExpectations(t)
}
