package manager

import (
	"cmp"
	"context"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Authenticate makes sure the entity has connected the app. When it has
// not, the response carries the redirect URL for the user to sign in. When
// Wait is set, the request blocks until the connection becomes active or
// the wait elapses. The app defaults to DefaultApp, and the wait can be at
// most MaxWait seconds.
func (m *Manager) Authenticate(ctx context.Context, req schema.AuthRequest) (result *schema.AuthResponse, err error) {
	req.Entity = cmp.Or(req.Entity, m.entity)
	req.App = cmp.Or(req.App, DefaultApp)
	logger := m.logger.With(
		zap.String("request", uuid.NewString()),
		zap.String("entity", req.Entity),
		zap.String("app", req.App),
	)

	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Authenticate",
		attribute.String("request", req.String()),
	)
	defer func() {
		if err != nil {
			logger.Error("authenticate failed", zap.Error(err))
		}
		endSpan(err)
	}()

	// Check the wait
	if req.Wait > MaxWait {
		return nil, toolset.ErrBadParameter.Withf("wait %d exceeds %d seconds", req.Wait, MaxWait)
	}

	// Check for a connection
	entity, err := m.toolkit.Entity(req.Entity)
	if err != nil {
		return nil, err
	}
	conn, err := entity.EnsureConnection(ctx, req.App)
	if err != nil {
		return nil, err
	}

	// Connection is active
	if conn.IsActive() {
		logger.Debug("connection is active", zap.String("connection", conn.Id))
		return &schema.AuthResponse{Connection: conn}, nil
	}

	// Return the redirect URL, or wait for the user to sign in
	logger.Info("log in required", zap.String("redirect", conn.RedirectURL))
	if req.Wait == 0 {
		return &schema.AuthResponse{
			RedirectURL: conn.RedirectURL,
			Message:     AuthMessage,
			Connection:  conn,
		}, nil
	}
	conn, err = entity.WaitUntilActive(ctx, conn.Id, time.Duration(req.Wait)*time.Second)
	if err != nil {
		return nil, err
	}
	logger.Info("connection is active", zap.String("connection", conn.Id))
	return &schema.AuthResponse{Connection: conn}, nil
}
