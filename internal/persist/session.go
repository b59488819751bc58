package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"script-shelf/internal/config"
	"script-shelf/internal/domain"
)

// Source names the tier a document was loaded from or saved to.
type Source string

const (
	SourceGateway Source = "gateway"
	SourceLegacy  Source = "legacy"
)

// Session pairs the gateway with the legacy store. The gateway is preferred;
// the legacy store is used whenever the gateway cannot initialize, load or
// save.
type Session struct {
	gateway *Gateway
	legacy  config.Store
	logger  *slog.Logger
}

// NewSession creates a session. legacy may be nil.
func NewSession(gateway *Gateway, legacy config.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{gateway: gateway, legacy: legacy, logger: logger}
}

// Gateway returns the preferred tier for backup, import and export.
func (s *Session) Gateway() *Gateway {
	return s.gateway
}

// Load returns the document from the first tier that can supply one. When
// both fail the defaults are returned so the panel can still start.
func (s *Session) Load(ctx context.Context) (domain.Settings, Source, error) {
	if err := s.gateway.Init(ctx); err != nil {
		s.logger.Warn("gateway unavailable, using legacy store", "err", err)
	} else {
		doc, err := s.gateway.Load(ctx)
		if err == nil {
			return doc, SourceGateway, nil
		}
		s.logger.Warn("gateway load failed, using legacy store", "err", err)
	}

	if s.legacy == nil {
		return config.Defaults(), SourceLegacy, nil
	}
	doc, err := s.legacy.Load()
	if err != nil {
		s.logger.Warn("legacy load failed, using defaults", "err", err)
		return config.Defaults(), SourceLegacy, nil
	}
	return doc, SourceLegacy, nil
}

// Save writes doc through the gateway when it is ready, falling back to the
// legacy store on host failures. Invalid documents are never written.
func (s *Session) Save(ctx context.Context, doc *domain.Settings) (Source, error) {
	var gatewayErr error
	if s.gateway.State() == StateReady {
		gatewayErr = s.gateway.Save(ctx, doc)
		if gatewayErr == nil {
			return SourceGateway, nil
		}
		if errors.Is(gatewayErr, ErrInvalidDocument) {
			return SourceGateway, gatewayErr
		}
		s.logger.Warn("gateway save failed, using legacy store", "err", gatewayErr)
	} else {
		gatewayErr = ErrNotReady
	}

	if s.legacy == nil {
		return SourceGateway, gatewayErr
	}
	if doc == nil {
		return SourceLegacy, ErrInvalidDocument
	}
	if err := s.legacy.Save(*doc); err != nil {
		return SourceLegacy, fmt.Errorf("legacy save: %w", err)
	}
	return SourceLegacy, nil
}
