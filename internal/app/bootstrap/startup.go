// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. FlockHub
// only reports its optional-subsystem posture here so a deployment log
// shows at a glance what is enabled.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("flockhub starting",
		zap.String("env", coreCfg.Env),
		zap.Bool("assets_enabled", appCfg.OSSBucket != ""),
		zap.Bool("livefeed_enabled", appCfg.YouTubeAPIKey != "" && appCfg.YouTubeChannelID != ""),
		zap.String("audit_log_auth", appCfg.AuditLogAuth),
		zap.String("audit_log_admin", appCfg.AuditLogAdmin))
	return nil
}
