package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"userId":"u1","email":"ada@example.com","name":"Ada","isAdmin":true}`)
	}))
	defer srv.Close()

	verifier := NewVerifier(srv.URL, nil)

	identity, err := verifier.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.True(t, identity.IsAdmin)
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	verifier := NewVerifier(srv.URL, nil)

	_, err := verifier.Verify(context.Background(), "bad-token")
	assert.Error(t, err)
}

func TestVerifyUnreachable(t *testing.T) {
	verifier := NewVerifier("http://127.0.0.1:1", nil)

	_, err := verifier.Verify(context.Background(), "any-token")
	assert.Error(t, err)
}
