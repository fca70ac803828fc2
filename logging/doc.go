// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures the process-wide slog logger.
//
// main builds a logger from the LOG_LEVEL and LOG_FORMAT settings and
// installs it with slog.SetDefault; every other package logs through the
// slog package functions with key/value pairs.
package logging
