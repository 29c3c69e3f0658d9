package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkhub/config"
	"rkhub/infras/jwt"
)

var office = jwt.Identity{AdminID: "admin-1", Email: "office@example.com", Role: "admin"}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "rkhub"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 30
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestService_IssueAndVerify(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.Issue(office)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(1800), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, office, claims.Identity)
	assert.Equal(t, "rkhub", claims.Issuer)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestService_VerifyRejects(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.Issue(office)
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.Verify("garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	other := newConfig()
	other.App.Name = "elsewhere"

	foreign, err := jwt.New(other).Issue(office)
	require.NoError(t, err)

	_, err = svc.Verify(foreign.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_VerifyExpired(t *testing.T) {
	cfg := newConfig()
	cfg.JWT.AccessExpireMin = -1

	svc := jwt.New(cfg)

	pair, err := svc.Issue(office)
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestService_VerifyWithoutAdmin(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.Issue(jwt.Identity{Email: "office@example.com"})
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestService_Refresh(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.Issue(jwt.Identity{AdminID: "admin-0", Email: "head@example.com", Role: "superadmin"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.Verify(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "superadmin", claims.Role)

	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestFromHeader(t *testing.T) {
	token, err := jwt.FromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.FromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.FromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrTokenFormat)

	_, err = jwt.FromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrTokenFormat)
}

func TestClaimsContext(t *testing.T) {
	_, ok := jwt.ClaimsFrom(context.Background())
	assert.False(t, ok)

	ctx := jwt.WithClaims(context.Background(), &jwt.Claims{Identity: office})

	claims, ok := jwt.ClaimsFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin-1", claims.AdminID)
}
