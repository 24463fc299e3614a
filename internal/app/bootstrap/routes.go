// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	authfeature "github.com/dalemusser/flockhub/internal/app/features/auth"
	healthfeature "github.com/dalemusser/flockhub/internal/app/features/health"
	livefeedfeature "github.com/dalemusser/flockhub/internal/app/features/livefeed"
	membersfeature "github.com/dalemusser/flockhub/internal/app/features/members"
	superadminsfeature "github.com/dalemusser/flockhub/internal/app/features/superadmins"
	unitsfeature "github.com/dalemusser/flockhub/internal/app/features/units"
	uploadsfeature "github.com/dalemusser/flockhub/internal/app/features/uploads"
	"github.com/dalemusser/flockhub/internal/app/store/audit"
	mediastore "github.com/dalemusser/flockhub/internal/app/store/media"
	memberstore "github.com/dalemusser/flockhub/internal/app/store/members"
	superadminstore "github.com/dalemusser/flockhub/internal/app/store/superadmins"
	unitstore "github.com/dalemusser/flockhub/internal/app/store/units"
	"github.com/dalemusser/flockhub/internal/app/system/assets"
	"github.com/dalemusser/flockhub/internal/app/system/auditlog"
	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/dalemusser/flockhub/internal/app/system/ratelimit"
	"github.com/dalemusser/flockhub/internal/app/system/token"
	"github.com/dalemusser/flockhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed.
//
// All API routes live under /api; the health endpoint sits at the root for
// load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	unitStores := make(map[models.Role]*unitstore.Store, len(models.UnitRoles))
	cascade := make([]*unitstore.Store, 0, len(models.UnitRoles))
	for _, role := range models.UnitRoles {
		s := unitstore.New(db, role)
		unitStores[role] = s
		cascade = append(cascade, s)
	}
	adminStore := superadminstore.New(db)

	assetStore, err := buildAssetStore(appCfg, logger)
	if err != nil {
		return nil, err
	}

	minter := token.NewMinter(appCfg.TokenKey)
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.MongoClient, time.Now(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	api := chi.NewRouter()

	// One handler per unit variant; the variant picks collection and
	// envelope key.
	for _, role := range models.UnitRoles {
		h := unitsfeature.NewHandler(unitStores, role, assetStore, minter, auditLog, logger)
		api.Mount("/"+role.String(), unitsfeature.Routes(h, loginLimiter))
	}

	superadminHandler := superadminsfeature.NewHandler(adminStore, minter, auditLog, logger)
	api.Mount("/superadmin", superadminsfeature.Routes(superadminHandler, loginLimiter))

	resolver := identity.New(cascade, adminStore)
	authHandler := authfeature.NewHandler(resolver, minter, auditLog, logger)
	authfeature.Register(api, authHandler, loginLimiter)

	memberHandler := membersfeature.NewHandler(memberstore.New(db), auditLog, logger)
	api.Mount("/members", membersfeature.Routes(memberHandler))

	uploadHandler := uploadsfeature.NewHandler(mediastore.New(db), assetStore, auditLog, logger)
	uploadsfeature.Register(api, uploadHandler)

	livefeedHandler := livefeedfeature.NewHandler(appCfg.YouTubeAPIKey, appCfg.YouTubeChannelID, logger)
	api.Mount("/livefeed", livefeedfeature.Routes(livefeedHandler))

	r.Mount("/api", api)

	return r, nil
}

func buildAssetStore(appCfg AppConfig, logger *zap.Logger) (assets.Store, error) {
	if appCfg.OSSBucket == "" {
		logger.Warn("no OSS configuration; upload endpoints will reject requests")
		return assets.Disabled(), nil
	}
	return assets.NewOSSStore(assets.OSSConfig{
		Endpoint:   appCfg.OSSEndpoint,
		AccessKey:  appCfg.OSSAccessKey,
		SecretKey:  appCfg.OSSSecretKey,
		Bucket:     appCfg.OSSBucket,
		PublicBase: appCfg.OSSPublicBase,
	})
}
