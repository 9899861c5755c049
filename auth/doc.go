// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and principal token handling.

# Passwords

Resident passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials on mismatch so callers never
branch on bcrypt internals.

# Principal Tokens

A successful login issues a signed HMAC-SHA256 token carrying the principal:

	token, err := auth.IssueToken(principal, secret, 8*time.Hour)

Claims: sub (resident ID), role, society (empty for super admins), exp, iat.
The token is the only authentication state; there is no server-side session.

# Request Extraction

Handlers resolve the caller from the Authorization header:

	principal, err := auth.PrincipalFromRequest(r, secret)

Expects "Authorization: Bearer <token>". The voting core never reads tokens
itself; it receives the already-validated principal value.
*/
package auth
