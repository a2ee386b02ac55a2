package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/events"
	"github.com/spec-kit/helpdesk-admin/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-admin/pkg/util/errorutil"
)

// AuthService coordinates agent login.
type AuthService struct {
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	Meta  domain.Token
	Agent *domain.Agent
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, agents repository.AgentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		agents:     agents,
		dispatcher: dispatcher,
		logger:     logger,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates an agent and issues a token. Unknown emails, wrong
// passwords and disabled agents all yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	agent, err := s.agents.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			auth.ComparePlaceholder(password)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !agent.Active {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(agent.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, meta, err := s.tokenMgr.GenerateToken(agent.ID, agent.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.agents.TouchLogin(ctx, agent.ID); err != nil {
		s.logger.Warn("record last login failed", zap.String("agent_id", agent.ID), zap.Error(err))
	}
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAgentLoggedIn,
		Actor:     events.Actor{AgentID: agent.ID, Role: agent.Role, Session: meta.ID},
		Timestamp: time.Now().UTC(),
		Payload:   events.AgentLoggedInPayload{Email: agent.Email, ExpiresAt: meta.ExpiresAt},
	})

	return &LoginResult{Token: token, Meta: meta, Agent: agent}, nil
}

// CreateAgent registers a console agent with a hashed password.
func (s *AuthService) CreateAgent(ctx context.Context, name, email, password string, role domain.AgentRole) (*domain.Agent, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	details := map[string]any{}
	if name == "" {
		details["name"] = "required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid"
	}
	if err := auth.ValidatePassword(password); err != nil {
		details["password"] = err.Error()
	}
	switch role {
	case domain.AgentRoleAgent, domain.AgentRoleSupervisor, domain.AgentRoleAdmin:
	default:
		details["role"] = "unknown"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid agent", details)
	}

	if _, err := s.agents.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	agent := &domain.Agent{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
