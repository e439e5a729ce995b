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
	"github.com/julija05/kidseducation-guard/internal/usecase/security/command"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/tests/testutil/mocks"
)

var sessionT0 = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

const maxSessionAge = 30 * time.Minute

type checkSessionTestDeps struct {
	sessionRepo *mocks.MockSessionRepository
	revoker     *mocks.MockSessionRevoker
	minor       *entity.Subject
}

func newCheckSessionTestDeps(t *testing.T) *checkSessionTestDeps {
	t.Helper()
	return &checkSessionTestDeps{
		sessionRepo: mocks.NewMockSessionRepository(t),
		revoker:     mocks.NewMockSessionRevoker(t),
		minor:       entity.NewSubject(uuid.New(), valueobject.RoleStudent, true),
	}
}

func (d *checkSessionTestDeps) newCommand() *command.CheckSessionCommand {
	return command.NewCheckSessionCommand(d.sessionRepo, d.revoker, maxSessionAge)
}

func (d *checkSessionTestDeps) input(ip string, now time.Time) command.CheckSessionInput {
	return command.CheckSessionInput{
		Subject:         d.minor,
		SessionID:       "sid-1",
		ClientIP:        ip,
		AuthenticatedAt: sessionT0,
		TokenExpiresAt:  sessionT0.Add(time.Hour),
		Now:             now,
	}
}

func requireInvalidated(t *testing.T, err error, reason string) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, apperror.CodeSessionInvalidated, appErr.Code)
	assert.Equal(t, reason, appErr.Message)
}

func TestCheckSessionCommand_Execute_FirstRequest_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.MatchedBy(func(r *entity.SessionRecord) bool {
		return r.OriginIP == "203.0.113.10" && r.StartedAt.Equal(sessionT0)
	}), maxSessionAge).Return(func(_ context.Context, r *entity.SessionRecord, _ time.Duration) *entity.SessionRecord { return r }, true, nil)

	output, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", sessionT0))

	require.NoError(t, err)
	assert.True(t, output.Created)
	assert.True(t, output.Record.StartedAt.Equal(sessionT0))
}

func TestCheckSessionCommand_Execute_WithinMaxAge_TouchesRecord(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)
	now := sessionT0.Add(29 * time.Minute)
	stored := entity.NewSessionRecord("sid-1", deps.minor.ID, "203.0.113.10", sessionT0)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.Anything, maxSessionAge).Return(stored, false, nil)
	deps.sessionRepo.On("Touch", ctx, "sid-1", now).Return(nil)

	output, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", now))

	require.NoError(t, err)
	assert.False(t, output.Created)
	assert.True(t, output.Record.LastSeenAt.Equal(now))
}

func TestCheckSessionCommand_Execute_After31Minutes_DestroysAndRevokes(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)
	now := sessionT0.Add(31 * time.Minute)
	stored := entity.NewSessionRecord("sid-1", deps.minor.ID, "203.0.113.10", sessionT0)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.Anything, maxSessionAge).Return(stored, false, nil)
	deps.sessionRepo.On("Delete", ctx, "sid-1").Return(nil)
	// トークンの残り有効期間だけ無効化する
	deps.revoker.On("Revoke", ctx, "sid-1", 29*time.Minute).Return(nil)

	output, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", now))

	assert.Nil(t, output)
	requireInvalidated(t, err, command.ReasonSessionExpired)
}

func TestCheckSessionCommand_Execute_OriginChanged_Destroys(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)
	now := sessionT0.Add(5 * time.Minute)
	stored := entity.NewSessionRecord("sid-1", deps.minor.ID, "203.0.113.10", sessionT0)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.Anything, maxSessionAge).Return(stored, false, nil)
	deps.sessionRepo.On("Delete", ctx, "sid-1").Return(nil)
	deps.revoker.On("Revoke", ctx, "sid-1", 55*time.Minute).Return(nil)

	_, err := deps.newCommand().Execute(ctx, deps.input("198.51.100.7", now))

	requireInvalidated(t, err, command.ReasonOriginChanged)
}

func TestCheckSessionCommand_Execute_Revoked_Rejects(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(true, nil)

	_, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", sessionT0.Add(time.Minute)))

	requireInvalidated(t, err, command.ReasonSessionRevoked)
}

func TestCheckSessionCommand_Execute_LapsedRecordForOldToken_Expired(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)
	now := sessionT0.Add(40 * time.Minute)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.Anything, maxSessionAge).
		Return(func(_ context.Context, r *entity.SessionRecord, _ time.Duration) *entity.SessionRecord { return r }, true, nil)
	deps.sessionRepo.On("Delete", ctx, "sid-1").Return(nil)
	deps.revoker.On("Revoke", ctx, "sid-1", 20*time.Minute).Return(nil)

	_, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", now))

	requireInvalidated(t, err, command.ReasonSessionExpired)
}

func TestCheckSessionCommand_Execute_StoreDown_FailsClosed(t *testing.T) {
	ctx := context.Background()
	deps := newCheckSessionTestDeps(t)

	deps.revoker.On("IsRevoked", ctx, "sid-1").Return(false, nil)
	deps.sessionRepo.On("FindOrCreate", ctx, mock.Anything, maxSessionAge).Return(nil, false, errors.New("dial tcp: refused"))

	_, err := deps.newCommand().Execute(ctx, deps.input("203.0.113.10", sessionT0))

	assert.Equal(t, apperror.CodeServiceUnavailable, apperror.CodeOf(err))
}

func TestCheckSessionCommand_Execute_MissingSessionID_Rejects(t *testing.T) {
	deps := newCheckSessionTestDeps(t)
	input := deps.input("203.0.113.10", sessionT0)
	input.SessionID = ""

	_, err := deps.newCommand().Execute(context.Background(), input)

	requireInvalidated(t, err, command.ReasonSessionMissing)
}

func TestCheckSessionCommand_Execute_Adult_Skips(t *testing.T) {
	deps := newCheckSessionTestDeps(t)
	input := deps.input("203.0.113.10", sessionT0)
	input.Subject = entity.NewSubject(uuid.New(), valueobject.RoleGuardian, false)

	output, err := deps.newCommand().Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Skipped)
}
