// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential validation and session token helpers.

# Credentials

ValidateCredentials applies the login form rules before any network call:

	err := auth.ValidateCredentials(creds)

  - username: required, at least 3 characters
  - password: required, at least 4 characters

Failures are returned as ValidationErrors, a field → message map with the
messages "Required" and "Too short".

# Session Tokens

The login endpoint returns a JWT. The client cannot verify it, but it can
read the expiry for display:

	exp, err := auth.TokenExpiry(token)

ErrNoExpiry is returned for tokens without an exp claim and ErrInvalidToken
for anything that does not parse.

# Request IDs

	id := auth.NewRequestID()  // random UUID string
*/
package auth
