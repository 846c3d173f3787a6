// Package auth verifies bearer tokens against an external
// token-verification service and attaches the resulting identity to the
// request. The marketplace core never authenticates on its own.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"booknook-backend/internal/models"
	"booknook-backend/internal/redisclient"
	"booknook-backend/internal/util"

	"go.uber.org/zap"
)

const identityCacheTTL = 5 * time.Minute

// Verifier resolves bearer tokens to caller identities via an external
// verification endpoint, with an optional Redis cache in front.
type Verifier struct {
	endpoint string
	client   *http.Client
	cache    *redisclient.Client
	logger   *zap.Logger
}

// NewVerifier creates a verifier for the given endpoint. cache may be nil.
func NewVerifier(endpoint string, cache *redisclient.Client) *Verifier {
	return &Verifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		logger:   util.GetLogger(),
	}
}

// Verify resolves a bearer token to an identity. Returns an error for
// tokens the verification service rejects.
func (v *Verifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	if v.cache != nil {
		identity, err := v.cache.GetCachedIdentity(ctx, token)
		if err != nil {
			v.logger.Warn("Identity cache lookup failed", zap.Error(err))
		} else if identity != nil {
			util.AuthVerificationsTotal.WithLabelValues("cache_hit").Inc()
			return identity, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		util.AuthVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("token verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		util.AuthVerificationsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("token rejected by verifier: status %d", resp.StatusCode)
	}

	var identity models.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		util.AuthVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode verifier response: %w", err)
	}

	util.AuthVerificationsTotal.WithLabelValues("verified").Inc()

	if v.cache != nil {
		if err := v.cache.CacheIdentity(ctx, token, &identity, identityCacheTTL); err != nil {
			v.logger.Warn("Failed to cache identity", zap.Error(err))
		}
	}

	return &identity, nil
}
