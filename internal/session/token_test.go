// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplesocial/ripple/internal/session"
)

// signedToken mints an HS256 JWT with the given expiry. The signing key is
// irrelevant: the store reads claims without verification.
func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("not-the-real-key"))
	require.NoError(t, err)
	return signed
}

/*
TestStore_TokenExpiry verifies the unverified expiry readout and its nil
cases (no token, opaque token, no exp claim).
*/
func TestStore_TokenExpiry(t *testing.T) {
	keystore := session.NewMemoryKeystore()
	store := session.NewStore(nil, keystore, nil)

	// 1. No token persisted
	assert.Nil(t, store.TokenExpiry())

	// 2. Opaque non-JWT token
	require.NoError(t, keystore.SetPair("just-an-opaque-string", "ref"))
	assert.Nil(t, store.TokenExpiry())

	// 3. JWT without an exp claim
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7})
	signed, err := bare.SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, keystore.SetPair(signed, "ref"))
	assert.Nil(t, store.TokenExpiry())

	// 4. JWT with an expiry
	wantExpiry := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	require.NoError(t, keystore.SetPair(signedToken(t, wantExpiry), "ref"))

	gotExpiry := store.TokenExpiry()
	require.NotNil(t, gotExpiry)
	assert.True(t, gotExpiry.Equal(wantExpiry), "expiry should survive the round trip")
}
