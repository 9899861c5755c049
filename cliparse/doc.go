// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags loads .env (via github.com/joho/godotenv, best effort) and returns
a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4270)
  - DatabaseURL: Connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - TokenSecret: Secret for principal token signing (required)
  - TokenTTLMin: Principal token lifetime in minutes (default: 480)
  - RedisAddr: Redis address for event notifications (optional)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-redis        Redis address
	-token-ttl    Token lifetime in minutes
	-token-secret Token signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	REDIS_ADDR        → -redis
	TOKEN_TTL_MINUTES → -token-ttl
	TOKEN_SECRET      → -token-secret

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - TOKEN_SECRET must be provided
  - DATABASE_TYPE, if set, must be sqlite or postgres
*/
package cliparse
