package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

func userBody() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"id":         "u-1",
			"email":      "kip@example.com",
			"first_name": "Kip",
			"role":       "seller",
		},
	}
}

func TestLoginReplacesSessionWholesale(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Return(&api.Response{Status: 200, Body: userBody()}, nil)

	user, err := uc.Login(context.Background(), "kip@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, domain.RoleSeller, user.Role)
	assert.True(t, uc.IsAuthenticated())
	gw.AssertExpectations(t)
}

func TestLoginFailureClearsSessionAndReRaises(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())

	// Establish a session first.
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Return(&api.Response{Status: 200, Body: userBody()}, nil).Once()
	_, err := uc.Login(context.Background(), "kip@example.com", "pw")
	require.NoError(t, err)
	require.True(t, uc.IsAuthenticated())

	authErr := &domain.APIError{Kind: domain.ErrKindAuthentication, Status: 401, Message: "bad credentials"}
	gw.On("Post", mock.Anything, loginPath, mock.Anything).Return(nil, authErr).Once()

	_, err = uc.Login(context.Background(), "kip@example.com", "wrong")
	require.ErrorIs(t, err, authErr)
	assert.False(t, uc.IsAuthenticated(), "a failed login must leave the session anonymous")
}

func TestLoginResponseWithoutUserIsAuthError(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Return(&api.Response{Status: 200, Body: map[string]any{"status": "ok"}}, nil)

	_, err := uc.Login(context.Background(), "kip@example.com", "pw")
	assert.True(t, domain.IsKind(err, domain.ErrKindAuthentication))
	assert.False(t, uc.IsAuthenticated())
}

func TestLoginInFlightGuard(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())

	release := make(chan struct{})
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(&api.Response{Status: 200, Body: userBody()}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := uc.Login(context.Background(), "kip@example.com", "pw")
		assert.NoError(t, err)
	}()

	// Wait for the first login to be inside the gateway call.
	require.Eventually(t, func() bool {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		return uc.inFlight
	}, time.Second, 5*time.Millisecond)

	_, err := uc.Login(context.Background(), "kip@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(release)
	wg.Wait()
	assert.True(t, uc.IsAuthenticated())
}

func TestLogoutClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Return(&api.Response{Status: 200, Body: userBody()}, nil).Once()
	_, err := uc.Login(context.Background(), "kip@example.com", "pw")
	require.NoError(t, err)

	gw.On("Post", mock.Anything, logoutPath, mock.Anything).
		Return(nil, &domain.APIError{Kind: domain.ErrKindServer, Status: 500}).Once()

	uc.Logout(context.Background())
	assert.False(t, uc.IsAuthenticated())
}

func TestRefreshSwallowsErrors(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Get", mock.Anything, sessionPath).
		Return(nil, &domain.APIError{Kind: domain.ErrKindNetwork, Message: "offline"})

	// Must not panic or surface the error.
	uc.Refresh(context.Background())
	assert.False(t, uc.IsAuthenticated())
}

func TestCheckOnLoadAdoptsExistingSession(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Get", mock.Anything, sessionPath).
		Return(&api.Response{Status: 200, Body: userBody()}, nil)

	uc.CheckOnLoad(context.Background())
	assert.True(t, uc.IsAuthenticated())
	assert.Equal(t, "u-1", uc.Current().User.ID)
}

func TestLoginReadsTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	body := userBody()
	body["access"] = signed

	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())
	gw.On("Post", mock.Anything, loginPath, mock.Anything).
		Return(&api.Response{Status: 200, Body: body}, nil)

	_, err = uc.Login(context.Background(), "kip@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, uc.Current().ExpiresAt.Equal(exp))
}

func TestProfileRequiresAuthentication(t *testing.T) {
	gw := new(MockGateway)
	uc := NewSessionUsecase(gw, zap.NewNop())

	_, err := uc.Profile(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	gw.AssertNotCalled(t, "Get", mock.Anything, profilePath)
}
