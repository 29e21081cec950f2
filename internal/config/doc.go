// Package config manages application configuration for the Chapel API.
//
// Configuration is read once at startup from environment variables. A .env
// file in the working directory is loaded first when present:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, timeouts, CORS origins, request body limit
//   - DatabaseConfig: store driver and connection settings
//   - RateLimitConfig: per-client request limits
//   - LogConfig: slog level and output format
//
// # Environment Variables
//
//	PORT                 - HTTP server port (default: 8000)
//	SERVER_ENV           - development, production or test
//	CORS_ALLOWED_ORIGINS - comma separated origins (default: *)
//	MAX_BODY_BYTES       - request body limit (default: 1 MiB)
//	STORE_DRIVER         - surrealdb, redis or memory (default: surrealdb)
//	DATABASE_URL         - store endpoint
//	DATABASE_NAME        - database name (default: church)
//	DATABASE_NAMESPACE   - SurrealDB namespace (default: church)
//	DATABASE_USER        - store username
//	DATABASE_PASSWORD    - store password
//	RATE_LIMIT_REQUESTS  - requests per window (default: 100)
//	RATE_LIMIT_WINDOW    - window duration (default: 1m)
//	LOG_LEVEL            - debug, info, warn or error
//	LOG_FORMAT           - json or text
package config
