// Package service implements the request translator, the single code path both
// transport adapters funnel through.
package service

import (
	"context"

	"geogateway/internal/geocoding/transport"
	"geogateway/platform/logger"
)

// UpstreamClient is the slice of the upstream client the translator needs.
type UpstreamClient interface {
	Fetch(ctx context.Context, text, k string) ([]transport.GeocodeResult, error)
}

// Service translates a geocode request into a normalized response envelope.
// It never returns an error: fallible outcomes fold into the envelope so that
// both transports observe identical semantics for identical inputs.
type Service struct {
	client UpstreamClient
	log    *logger.Logger
}

// New creates a translator backed by the given upstream client.
func New(client UpstreamClient, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Resolve issues the upstream call and shapes the envelope. Upstream failure
// detail is logged here and replaced by a fixed generic message so upstream
// internals never leak to callers.
func (s *Service) Resolve(ctx context.Context, req transport.GeocodeRequest) transport.GeocodeResponse {
	results, err := s.client.Fetch(ctx, req.Text, req.K)
	if err != nil {
		s.log.WithContext(ctx).Error("geocoding lookup failed", "error", err)
		return transport.Failure(transport.MsgUpstreamFailure)
	}

	return transport.Success(results)
}
