package di

import (
	accesscmd "github.com/julija05/kidseducation-guard/internal/usecase/access/command"
	accessqry "github.com/julija05/kidseducation-guard/internal/usecase/access/query"
	authcmd "github.com/julija05/kidseducation-guard/internal/usecase/auth/command"
	"github.com/julija05/kidseducation-guard/internal/usecase/guard"
	modqry "github.com/julija05/kidseducation-guard/internal/usecase/moderation/query"
	securitycmd "github.com/julija05/kidseducation-guard/internal/usecase/security/command"
	"github.com/julija05/kidseducation-guard/pkg/config"
)

// GuardUseCases はガード関連のUseCaseを保持します
type GuardUseCases struct {
	// Pipeline stages
	CheckSession     *securitycmd.CheckSessionCommand
	HitRateLimit     *securitycmd.HitRateLimitCommand
	EvaluateActivity *securitycmd.EvaluateActivityCommand
	EvaluateAccess   *accessqry.EvaluateAccessQuery
	Pipeline         *guard.Pipeline

	// Access
	StartDemo     *accesscmd.StartDemoCommand
	GetDemoStatus *accessqry.GetDemoStatusQuery

	// Moderation
	CheckText        *modqry.CheckTextQuery
	GetAdvisoryRules *modqry.GetAdvisoryRulesQuery

	// Session
	Logout *authcmd.LogoutCommand
}

// NewGuardUseCases は新しいGuardUseCasesを作成します
func NewGuardUseCases(c *Container, cfg *config.Config) *GuardUseCases {
	g := cfg.Guard

	u := &GuardUseCases{
		CheckSession: securitycmd.NewCheckSessionCommand(c.SessionRepo, c.SessionRevoker, g.MaxSessionAge),
		HitRateLimit: securitycmd.NewHitRateLimitCommand(c.RateLimitStore, securitycmd.RateLimitPolicy{
			Window:                       g.RateLimitWindow,
			GeneralLimit:                 g.GeneralRequestLimit,
			MinorGeneralLimit:            g.MinorGeneralRequestLimit,
			MinorPageTransitionThreshold: g.MinorPageTransitionWarning,
		}),
		EvaluateActivity: securitycmd.NewEvaluateActivityCommand(c.Moderator, c.Alerts),
		EvaluateAccess: accessqry.NewEvaluateAccessQuery(c.DemoGrantRepo, c.Catalog, accessqry.RedirectPaths{
			Catalog:       cfg.App.CatalogPath,
			DemoDashboard: cfg.App.DemoDashboardPath,
			DemoExpired:   cfg.App.DemoExpiredPath,
		}),

		StartDemo: accesscmd.NewStartDemoCommand(c.DemoGrantRepo, c.Catalog, c.TxManager, accesscmd.StartDemoConfig{
			Duration:    g.DemoDuration,
			CatalogPath: cfg.App.CatalogPath,
			ExpiredPath: cfg.App.DemoExpiredPath,
		}),
		GetDemoStatus: accessqry.NewGetDemoStatusQuery(c.DemoGrantRepo, c.Catalog),

		CheckText:        modqry.NewCheckTextQuery(c.Moderator),
		GetAdvisoryRules: modqry.NewGetAdvisoryRulesQuery(c.Moderator),

		Logout: authcmd.NewLogoutCommand(c.SessionRepo, c.SessionRevoker, g.MaxSessionAge),
	}
	u.Pipeline = guard.NewPipeline(u.CheckSession, u.HitRateLimit, u.EvaluateActivity, u.EvaluateAccess)
	return u
}
