package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/events"
)

func authConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAgents()
	dispatcher := events.NewInMemoryDispatcher()
	var logins []events.Event
	dispatcher.Subscribe(events.EventAgentLoggedIn, func(_ context.Context, e events.Event) error {
		logins = append(logins, e)
		return nil
	})
	svc := NewAuthService(authConfig(), repo, dispatcher, zap.NewNop())

	created, err := svc.CreateAgent(ctx, "Dana", "dana@example.com", "correct-horse", domain.AgentRoleSupervisor)
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", created.PasswordHash)

	res, err := svc.Login(ctx, "  dana@example.com ", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, created.ID, res.Agent.ID)
	require.Equal(t, []string{created.ID}, repo.touched)

	claims, err := svc.TokenManager().ParseToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.AgentID)
	require.Equal(t, domain.AgentRoleSupervisor, claims.Role)
	require.Equal(t, res.Meta.ID, claims.SessionID())

	require.Len(t, logins, 1)
	require.Equal(t, res.Meta.ID, logins[0].Actor.Session)
}

func TestAuthServiceLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)
	repo := newFakeAgents(
		domain.Agent{ID: "a-1", Email: "on@example.com", PasswordHash: hash, Role: domain.AgentRoleAgent, Active: true},
		domain.Agent{ID: "a-2", Email: "off@example.com", PasswordHash: hash, Role: domain.AgentRoleAgent},
	)
	svc := NewAuthService(authConfig(), repo, nil, zap.NewNop())

	for _, tc := range []struct{ email, password string }{
		{"missing@example.com", "correct-horse"},
		{"on@example.com", "wrong-horse"},
		{"off@example.com", "correct-horse"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		require.Equal(t, "UNAUTHORIZED", errCode(t, err), tc.email)
		require.EqualError(t, err, "invalid credentials")
	}

	_, err = svc.Login(ctx, "", "")
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	require.Empty(t, repo.touched)
}

func TestAuthServiceCreateAgentValidation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAgents(domain.Agent{ID: "a-1", Email: "taken@example.com"})
	svc := NewAuthService(authConfig(), repo, nil, zap.NewNop())

	_, err := svc.CreateAgent(ctx, "", "not-an-email", "short", "ROOT")
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = svc.CreateAgent(ctx, "Taken", "TAKEN@example.com", "long-enough", domain.AgentRoleAgent)
	require.Equal(t, "CONFLICT", errCode(t, err))
}
