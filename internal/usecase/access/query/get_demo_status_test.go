package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/usecase/access/query"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/tests/testutil/mocks"
)

func TestGetDemoStatusQuery_Execute_NeverStarted_NoAccessWithoutGrant(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	demoRepo := mocks.NewMockDemoGrantRepository(t)
	catalog := mocks.NewMockCatalogReader(t)
	catalog.On("HasAnyEnrollment", ctx, subjectID).Return(false, nil)
	demoRepo.On("FindBySubjectID", ctx, subjectID).Return(nil, apperror.NewNotFoundError("demo grant"))

	output, err := query.NewGetDemoStatusQuery(demoRepo, catalog).Execute(ctx, query.GetDemoStatusInput{SubjectID: subjectID, Now: accessNow})

	require.NoError(t, err)
	assert.Equal(t, valueobject.AccessStateNoAccess, output.State)
	assert.Nil(t, output.Grant)
}

func TestGetDemoStatusQuery_Execute_Active_ReportsRemaining(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	demoRepo := mocks.NewMockDemoGrantRepository(t)
	catalog := mocks.NewMockCatalogReader(t)
	catalog.On("HasAnyEnrollment", ctx, subjectID).Return(false, nil)
	demoRepo.On("FindBySubjectID", ctx, subjectID).
		Return(entity.NewDemoGrant(subjectID, 1, 7, accessNow.Add(-24*time.Hour), 7*24*time.Hour), nil)

	output, err := query.NewGetDemoStatusQuery(demoRepo, catalog).Execute(ctx, query.GetDemoStatusInput{SubjectID: subjectID, Now: accessNow})

	require.NoError(t, err)
	assert.Equal(t, valueobject.AccessStateDemoActive, output.State)
	assert.Equal(t, 6*24*time.Hour, output.Remaining)
}

func TestGetDemoStatusQuery_Execute_Expired_KeepsGrant(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	demoRepo := mocks.NewMockDemoGrantRepository(t)
	catalog := mocks.NewMockCatalogReader(t)
	catalog.On("HasAnyEnrollment", ctx, subjectID).Return(false, nil)
	demoRepo.On("FindBySubjectID", ctx, subjectID).
		Return(entity.NewDemoGrant(subjectID, 1, 7, accessNow.Add(-8*24*time.Hour), 7*24*time.Hour), nil)

	output, err := query.NewGetDemoStatusQuery(demoRepo, catalog).Execute(ctx, query.GetDemoStatusInput{SubjectID: subjectID, Now: accessNow})

	require.NoError(t, err)
	assert.Equal(t, valueobject.AccessStateDemoExpired, output.State)
	require.NotNil(t, output.Grant)
	assert.Zero(t, output.Remaining)
}

func TestGetDemoStatusQuery_Execute_Enrolled_SkipsGrantLookup(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	catalog := mocks.NewMockCatalogReader(t)
	catalog.On("HasAnyEnrollment", ctx, subjectID).Return(true, nil)

	output, err := query.NewGetDemoStatusQuery(mocks.NewMockDemoGrantRepository(t), catalog).
		Execute(ctx, query.GetDemoStatusInput{SubjectID: subjectID, Now: accessNow})

	require.NoError(t, err)
	assert.Equal(t, valueobject.AccessStateEnrolled, output.State)
}
