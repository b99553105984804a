// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                 Server port
	-t                 Database type (sqlite or postgres)
	-d                 Database URL
	-u                 Campaign API base URL
	-directory-ttl     District directory cache lifetime
	-upstream-timeout  Campaign API request timeout
	-session-salt      Session key salt
	-env-file          Dotenv file to load

# Environment Variables

Flags fall back to PORT, DATABASE_TYPE, DATABASE_URL, UPSTREAM_URL,
DIRECTORY_TTL, UPSTREAM_TIMEOUT and SESSION_KEY_SALT. Values from the dotenv
file never override variables already set.

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error when UPSTREAM_URL or SESSION_KEY_SALT is missing,
when postgres is selected without a DATABASE_URL, or when a duration does
not parse.
*/
package cliparse
