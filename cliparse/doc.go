// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Flags fall back to environment variables:

	-p             PORT             server port (default 3000)
	-d             DATABASE_URL     connection string or sqlite file path (required)
	-t             DATABASE_TYPE    postgres(ql) or sqlite(3) (default postgres)
	-token-key     TOKEN_KEY        64 hex chars, 32-byte token key (required)
	-token-ttl     TOKEN_TTL        token lifetime (default 24h)
	-log-level     LOG_LEVEL        debug, info, warn, error (default info)
	-log-format    LOG_FORMAT       text or json (default text)
	-cors-origins  CORS_ORIGINS     comma separated (default *)
	-auth-rps      AUTH_RATE_LIMIT  auth requests per second per client (default 5)
	-auth-burst    AUTH_RATE_BURST  auth burst per client (default 10)
	-trust-proxy   TRUST_PROXY      take client IPs from proxy headers (default false)

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file into the environment first without overriding existing values.

# Example

	_ = cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
*/
package cliparse
