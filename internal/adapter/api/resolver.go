package api

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

// CallFunc performs one attempt against a single endpoint path.
type CallFunc func(ctx context.Context, path string) (*Response, error)

// Resolver tries an ordered list of candidate endpoints for one logical
// operation until a candidate succeeds. It is stateless across invocations:
// a working candidate is never remembered, and each candidate is tried at
// most once per call, strictly in order.
type Resolver struct {
	logger *zap.Logger
}

func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve invokes call against each path in order and returns the first
// success. A validation error from a reached endpoint is authoritative and
// stops resolution immediately; so does an authentication error, since no
// other route can succeed with dead credentials. Other failures advance to
// the next candidate. When every candidate fails, the returned error names
// all tried paths and wraps the last failure.
func (r *Resolver) Resolve(ctx context.Context, paths []string, call CallFunc) (*Response, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no endpoint candidates configured")
	}

	var lastErr error
	for _, path := range paths {
		resp, err := call(ctx, path)
		if err == nil {
			return resp, nil
		}
		if domain.IsKind(err, domain.ErrKindValidation) || domain.IsKind(err, domain.ErrKindAuthentication) {
			return nil, err
		}
		r.logger.Warn("endpoint candidate failed, trying next",
			zap.String("path", path),
			zap.Error(err))
		lastErr = err
	}
	return nil, fmt.Errorf("all candidate endpoints failed (%s): %w", strings.Join(paths, ", "), lastErr)
}
