// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens, password hashing and the
request-scoped Principal.

# Session Tokens

Tokens are HS256 JWTs carrying the user id (subject), username, role and,
for students, the student record id:

	tokens := auth.NewTokenService(secret, 24*time.Hour)
	token, expiresAt, err := tokens.Issue(principal)
	principal, err := tokens.Validate(token)

Clients send them as "Authorization: Bearer <token>". Logging out is a
client-side discard; tokens expire after the configured TTL.

# Principal

The middleware decodes the token into a Principal and stores it on the
request context:

	ctx = auth.WithPrincipal(ctx, p)
	p, ok := auth.PrincipalFrom(ctx)

Handlers pass the Principal explicitly into every service call.

# Passwords

bcrypt hashes:

	hash, err := auth.HashPassword(pw)
	ok := auth.CheckPassword(hash, pw)

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()
*/
package auth
