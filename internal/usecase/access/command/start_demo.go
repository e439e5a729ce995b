package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// StartDemoInput は体験開始の入力を定義します
type StartDemoInput struct {
	SubjectID uuid.UUID
	ProgramID int64
	Now       time.Time
}

// StartDemoOutput は体験開始の出力を定義します
type StartDemoOutput struct {
	Grant   *entity.DemoGrant
	Created bool
}

// StartDemoConfig は体験開始の設定を定義します
type StartDemoConfig struct {
	Duration    time.Duration
	CatalogPath string
	ExpiredPath string
}

// StartDemoCommand は体験開始コマンドです
type StartDemoCommand struct {
	demoRepo  repository.DemoGrantRepository
	catalog   repository.CatalogReader
	txManager repository.TransactionManager
	config    StartDemoConfig
}

// NewStartDemoCommand は新しいStartDemoCommandを作成します
func NewStartDemoCommand(
	demoRepo repository.DemoGrantRepository,
	catalog repository.CatalogReader,
	txManager repository.TransactionManager,
	cfg StartDemoConfig,
) *StartDemoCommand {
	return &StartDemoCommand{
		demoRepo:  demoRepo,
		catalog:   catalog,
		txManager: txManager,
		config:    cfg,
	}
}

// Execute は体験アクセスを開始します
func (c *StartDemoCommand) Execute(ctx context.Context, input StartDemoInput) (*StartDemoOutput, error) {
	if input.ProgramID <= 0 {
		return nil, apperror.NewValidationError("invalid program id", []apperror.FieldError{
			{Field: "programId", Message: "must be a positive integer"},
		})
	}

	var output *StartDemoOutput
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 1. 受講登録済みの主体は体験を開始できない
		enrolled, err := c.catalog.HasAnyEnrollment(ctx, input.SubjectID)
		if err != nil {
			return err
		}
		if enrolled {
			return apperror.NewAccessDeniedError(c.config.CatalogPath, "demo access is only available before enrolling")
		}

		// 2. 既存の体験アクセス
		existing, err := c.demoRepo.FindBySubjectID(ctx, input.SubjectID)
		if err == nil {
			output, err = c.resolveExisting(existing, input)
			return err
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		// 3. 体験で閲覧可能なレッスンを確定
		lessonID, err := c.catalog.FirstLessonOf(ctx, input.ProgramID)
		if err != nil {
			return err
		}

		// 4. 作成（同時実行時は先着の1件に収束）
		grant := entity.NewDemoGrant(input.SubjectID, input.ProgramID, lessonID, input.Now, c.config.Duration)
		stored, created, err := c.demoRepo.CreateIfAbsent(ctx, grant)
		if err != nil {
			return err
		}
		if !created {
			output, err = c.resolveExisting(stored, input)
			return err
		}

		output = &StartDemoOutput{Grant: stored, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// resolveExisting は既存の体験アクセスに対する応答を決定します
func (c *StartDemoCommand) resolveExisting(grant *entity.DemoGrant, input StartDemoInput) (*StartDemoOutput, error) {
	if grant.IsExpired(input.Now) {
		return nil, apperror.NewAccessDeniedError(c.config.ExpiredPath, "your demo has already been used")
	}
	if grant.ProgramID != input.ProgramID {
		return nil, apperror.NewConflictError("a demo for another program is already active")
	}
	return &StartDemoOutput{Grant: grant, Created: false}, nil
}
