// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and keys.

# Session IDs

Session ids are random UUIDs:

	id, err := auth.GenerateSessionID()
	err = auth.ValidateSessionID(id)

# Session Keys

Session keys use HMAC-SHA256 over the session id:

	key := auth.GenerateSessionKey(id, salt)
	err := auth.ValidateSessionKey(id, key, salt)

The key is URL-safe base64 encoded without padding. It is deterministic, so
it is never stored; a client proves ownership of a call history by sending
it in the X-Session-Key header.
*/
package auth
