// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to FlockHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Login token signing key (securecookie hash key)
	TokenKey string

	// Aliyun OSS asset storage. Registration logos and media uploads land
	// here; leaving it unconfigured disables uploads but nothing else.
	OSSEndpoint   string
	OSSAccessKey  string
	OSSSecretKey  string
	OSSBucket     string
	OSSPublicBase string

	// YouTube live feed passthrough (optional)
	YouTubeAPIKey    string
	YouTubeChannelID string

	// Audit logging settings: 'all' (db+log), 'db', 'log', or 'off'
	AuditLogAuth  string
	AuditLogAdmin string

	// Login rate limiting, per client IP
	LoginRateLimit  int
	LoginRateWindow time.Duration
}
