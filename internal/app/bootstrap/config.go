// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for FlockHub, loaded via
// WAFFLE's config system from config files, FLOCKHUB_* environment
// variables, and command-line flags.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "flockhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Login token signing key (must be strong in production)"},

	// Aliyun OSS asset storage
	{Name: "oss_endpoint", Default: "", Desc: "Aliyun OSS endpoint (e.g. oss-cn-hangzhou.aliyuncs.com)"},
	{Name: "oss_access_key", Default: "", Desc: "Aliyun OSS access key id"},
	{Name: "oss_secret_key", Default: "", Desc: "Aliyun OSS access key secret"},
	{Name: "oss_bucket", Default: "", Desc: "Aliyun OSS bucket name"},
	{Name: "oss_public_base", Default: "", Desc: "Public URL base for stored assets (blank derives from bucket+endpoint)"},

	// YouTube live feed passthrough
	{Name: "youtube_api_key", Default: "", Desc: "YouTube Data API key (blank disables /api/livefeed)"},
	{Name: "youtube_channel_id", Default: "", Desc: "YouTube channel id for the live feed"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Login rate limiting
	{Name: "login_rate_limit", Default: 10, Desc: "Max login attempts per client IP per window"},
	{Name: "login_rate_window", Default: "1m", Desc: "Login rate-limit window (e.g. 1m, 30s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, FLOCKHUB_* for app), and
// command-line flags, merging with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FLOCKHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenKey: appValues.String("token_key"),

		OSSEndpoint:   appValues.String("oss_endpoint"),
		OSSAccessKey:  appValues.String("oss_access_key"),
		OSSSecretKey:  appValues.String("oss_secret_key"),
		OSSBucket:     appValues.String("oss_bucket"),
		OSSPublicBase: appValues.String("oss_public_base"),

		YouTubeAPIKey:    appValues.String("youtube_api_key"),
		YouTubeChannelID: appValues.String("youtube_channel_id"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked up front so a configuration mistake dies here
// rather than on the first connection attempt. OSS settings are all-or-
// nothing: a partially configured object store is a deployment error.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	ossFields := []string{appCfg.OSSEndpoint, appCfg.OSSAccessKey, appCfg.OSSSecretKey, appCfg.OSSBucket}
	var set int
	for _, f := range ossFields {
		if f != "" {
			set++
		}
	}
	if set != 0 && set != len(ossFields) {
		return fmt.Errorf("oss configuration is incomplete: endpoint, access key, secret key, and bucket must all be set together")
	}

	if appCfg.TokenKey == "" {
		return fmt.Errorf("token_key must not be empty")
	}
	if appCfg.LoginRateLimit < 1 {
		return fmt.Errorf("login_rate_limit must be at least 1")
	}

	return nil
}
