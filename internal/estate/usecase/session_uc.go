package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

const (
	loginPath    = "/api/v1/auth/login/"
	registerPath = "/api/v1/auth/register/"
	logoutPath   = "/api/v1/auth/logout/"
	sessionPath  = "/api/v1/auth/session/"
	profilePath  = "/api/v1/auth/profile/"
)

// RegisterFields is the payload for account creation.
type RegisterFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      domain.Role
}

// SessionUsecase is the only mutator of current-session state. Login and
// Register carry an in-flight guard: a second concurrent submission is
// rejected with domain.ErrRequestInFlight while one is outstanding.
type SessionUsecase struct {
	gateway Gateway
	logger  *zap.Logger

	mu       sync.Mutex
	session  domain.Session
	inFlight bool
}

func NewSessionUsecase(gateway Gateway, logger *zap.Logger) *SessionUsecase {
	return &SessionUsecase{gateway: gateway, logger: logger}
}

// Current returns a copy of the session state.
func (uc *SessionUsecase) Current() domain.Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session
}

func (uc *SessionUsecase) IsAuthenticated() bool {
	return uc.Current().Authenticated()
}

func (uc *SessionUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if !uc.begin() {
		return nil, domain.ErrRequestInFlight
	}
	defer uc.end()

	resp, err := uc.gateway.Post(ctx, loginPath, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		uc.clear()
		uc.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return uc.adopt(resp)
}

func (uc *SessionUsecase) Register(ctx context.Context, fields RegisterFields) (*domain.User, error) {
	if !uc.begin() {
		return nil, domain.ErrRequestInFlight
	}
	defer uc.end()

	role := fields.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	resp, err := uc.gateway.Post(ctx, registerPath, map[string]string{
		"first_name": fields.FirstName,
		"last_name":  fields.LastName,
		"email":      fields.Email,
		"phone":      fields.Phone,
		"password":   fields.Password,
		"role":       string(role),
	})
	if err != nil {
		uc.clear()
		uc.logger.Warn("registration failed", zap.String("email", fields.Email), zap.Error(err))
		return nil, err
	}
	return uc.adopt(resp)
}

// Logout clears the session locally no matter what: a user left looking
// logged in after asking to log out is worse than a server-side session
// outliving the client's belief about it.
func (uc *SessionUsecase) Logout(ctx context.Context) {
	uc.clear()
	if _, err := uc.gateway.Post(ctx, logoutPath, nil); err != nil {
		uc.logger.Warn("remote logout failed, local session cleared anyway", zap.Error(err))
	}
}

// Refresh replaces the session from the server. Failures are swallowed:
// a transient error during refresh must not crash a page, it just leaves
// the session anonymous.
func (uc *SessionUsecase) Refresh(ctx context.Context) {
	resp, err := uc.gateway.Get(ctx, sessionPath)
	if err != nil {
		uc.clear()
		uc.logger.Debug("session refresh failed", zap.Error(err))
		return
	}
	if _, err := uc.adopt(resp); err != nil {
		uc.logger.Debug("session refresh returned no user")
	}
}

// CheckOnLoad is the startup session probe; same swallow-errors contract
// as Refresh.
func (uc *SessionUsecase) CheckOnLoad(ctx context.Context) {
	uc.Refresh(ctx)
}

// Profile fetches the full current-user record, including the nested
// preference profile.
func (uc *SessionUsecase) Profile(ctx context.Context) (*domain.User, error) {
	if !uc.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	resp, err := uc.gateway.Get(ctx, profilePath)
	if err != nil {
		return nil, err
	}
	user := api.NormalizeUser(resp.Body)
	if user == nil {
		uc.clear()
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (uc *SessionUsecase) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	if !uc.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	_, err := uc.gateway.Put(ctx, profilePath, map[string]any{
		"address":                  profile.Address,
		"email_notifications":      profile.EmailNotifications,
		"sms_notifications":        profile.SMSNotifications,
		"price_min":                profile.PriceMin,
		"price_max":                profile.PriceMax,
		"preferred_locations":      profile.PreferredLocations,
		"preferred_property_types": profile.PreferredTypes,
	})
	return err
}

// adopt normalizes a login/register/session response and replaces the
// session wholesale, or clears it when the payload carries no user.
func (uc *SessionUsecase) adopt(resp *api.Response) (*domain.User, error) {
	user := api.NormalizeUser(resp.Body)
	if user == nil {
		uc.clear()
		return nil, &domain.APIError{
			Kind:    domain.ErrKindAuthentication,
			Message: "response carried no recognizable user",
		}
	}
	uc.mu.Lock()
	uc.session = domain.Session{User: user, ExpiresAt: tokenExpiry(resp.Map())}
	uc.mu.Unlock()
	uc.logger.Info("session established",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (uc *SessionUsecase) clear() {
	uc.mu.Lock()
	uc.session = domain.Session{}
	uc.mu.Unlock()
}

func (uc *SessionUsecase) begin() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight {
		return false
	}
	uc.inFlight = true
	return true
}

func (uc *SessionUsecase) end() {
	uc.mu.Lock()
	uc.inFlight = false
	uc.mu.Unlock()
}

// tokenExpiry peeks at the access token a login response may carry and
// reads its exp claim. Claims are parsed unverified: signature validation
// is the server's job, the client only wants the expiry hint.
func tokenExpiry(body map[string]any) time.Time {
	if body == nil {
		return time.Time{}
	}
	var token string
	for _, key := range []string{"access", "access_token", "token"} {
		if s, ok := body[key].(string); ok && s != "" {
			token = s
			break
		}
	}
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
