// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file/DSN or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Session token signing secret (required)
  - TokenTTL: Session token lifetime (default: 24h)
  - AdminUsername, AdminPassword: Bootstrap admin account (optional, both or neither)
  - LogLevel, LogFormat: slog level and handler ("text" or "json")

# Logging

NewLogger turns LogLevel and LogFormat into a *slog.Logger:

	logger, err := cliparse.NewLogger(cfg, os.Stderr)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-env          .env file to load (default: .env, missing is fine)
	--jwt-secret  JWT signing secret
	--token-ttl   Token lifetime
	--log-level   Log level

# Environment Variables

Flags fall back to environment variables, which may come from the .env
file. Variables already present in the environment win over the file.

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → --jwt-secret
	TOKEN_TTL     → --token-ttl
	LOG_LEVEL     → --log-level
	ADMIN_USERNAME, ADMIN_PASSWORD, LOG_FORMAT (env only)

CLI flags take precedence over environment variables.
*/
package cliparse
