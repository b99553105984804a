// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package upstream talks to the campaign API that owns the district directory
// and the call statistics.
package upstream
