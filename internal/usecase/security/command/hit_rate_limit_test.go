package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/memstore"
	"github.com/julija05/kidseducation-guard/internal/usecase/security/command"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/tests/testutil/mocks"
)

var testPolicy = command.RateLimitPolicy{
	Window:                       time.Minute,
	GeneralLimit:                 120,
	MinorGeneralLimit:            60,
	MinorPageTransitionThreshold: 30,
}

func TestHitRateLimitCommand_Execute_MinorGeneral_61stRequestRejected(t *testing.T) {
	ctx := context.Background()
	cmd := command.NewHitRateLimitCommand(memstore.NewRateLimitStore(), testPolicy)
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 60; i++ {
		out, err := cmd.Execute(ctx, command.HitRateLimitInput{Subject: minor, Class: valueobject.ActionClassGeneralRequest, Now: t0.Add(time.Duration(i) * 500 * time.Millisecond)})
		require.NoError(t, err)
		require.True(t, out.Allowed, "request %d", i)
	}

	out, err := cmd.Execute(ctx, command.HitRateLimitInput{Subject: minor, Class: valueobject.ActionClassGeneralRequest, Now: t0.Add(31 * time.Second)})
	require.NoError(t, err)
	assert.False(t, out.Allowed)
	assert.Equal(t, 61, out.Count)
	assert.Equal(t, 0, out.Remaining())
	assert.Equal(t, 30, out.RetryAfter(t0.Add(31*time.Second)))

	// ウィンドウ経過後はリセット
	out, err = cmd.Execute(ctx, command.HitRateLimitInput{Subject: minor, Class: valueobject.ActionClassGeneralRequest, Now: t0.Add(61 * time.Second)})
	require.NoError(t, err)
	assert.True(t, out.Allowed)
	assert.Equal(t, 1, out.Count)
}

func TestHitRateLimitCommand_Execute_AdultGeneral_UsesHigherLimit(t *testing.T) {
	ctx := context.Background()
	cmd := command.NewHitRateLimitCommand(memstore.NewRateLimitStore(), testPolicy)
	adult := entity.NewSubject(uuid.New(), valueobject.RoleGuardian, false)
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	var out *command.HitRateLimitOutput
	var err error
	for i := 0; i < 61; i++ {
		out, err = cmd.Execute(ctx, command.HitRateLimitInput{Subject: adult, Class: valueobject.ActionClassGeneralRequest, Now: now})
		require.NoError(t, err)
	}

	assert.True(t, out.Allowed)
	assert.Equal(t, 120, out.Limit)
}

func TestHitRateLimitCommand_Execute_MinorPageTransition_ExceedsWithoutBlocking(t *testing.T) {
	ctx := context.Background()
	cmd := command.NewHitRateLimitCommand(memstore.NewRateLimitStore(), testPolicy)
	minor := entity.NewSubject(uuid.New(), valueobject.RoleGuardianManaged, false)
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	var out *command.HitRateLimitOutput
	var err error
	for i := 0; i < 31; i++ {
		out, err = cmd.Execute(ctx, command.HitRateLimitInput{Subject: minor, Class: valueobject.ActionClassPageTransition, Now: now})
		require.NoError(t, err)
	}

	assert.True(t, out.Allowed)
	assert.True(t, out.Exceeded)
	assert.Equal(t, 31, out.Count)
}

func TestHitRateLimitCommand_Execute_AdultPageTransition_NotCounted(t *testing.T) {
	store := mocks.NewMockRateLimitStore(t)
	cmd := command.NewHitRateLimitCommand(store, testPolicy)
	adult := entity.NewSubject(uuid.New(), valueobject.RoleStaff, false)

	out, err := cmd.Execute(context.Background(), command.HitRateLimitInput{Subject: adult, Class: valueobject.ActionClassPageTransition, Now: time.Now()})

	require.NoError(t, err)
	assert.False(t, out.Counted)
	assert.True(t, out.Allowed)
}

func TestHitRateLimitCommand_Execute_StoreDown_ServiceUnavailable(t *testing.T) {
	store := mocks.NewMockRateLimitStore(t)
	store.On("Hit", mock.Anything, mock.Anything, time.Minute, mock.Anything).Return(nil, errors.New("redis down"))
	cmd := command.NewHitRateLimitCommand(store, testPolicy)
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)

	_, err := cmd.Execute(context.Background(), command.HitRateLimitInput{Subject: minor, Class: valueobject.ActionClassGeneralRequest, Now: time.Now()})

	assert.Equal(t, apperror.CodeServiceUnavailable, apperror.CodeOf(err))
}

func TestHitRateLimitCommand_Execute_UnknownClass_InvalidRequest(t *testing.T) {
	cmd := command.NewHitRateLimitCommand(mocks.NewMockRateLimitStore(t), testPolicy)
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)

	_, err := cmd.Execute(context.Background(), command.HitRateLimitInput{Subject: minor, Class: "upload", Now: time.Now()})

	assert.Equal(t, apperror.CodeInvalidRequest, apperror.CodeOf(err))
}
