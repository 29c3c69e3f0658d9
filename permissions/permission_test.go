package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkhub/permissions"
)

func TestGet_EmbeddedPolicy(t *testing.T) {
	policy := permissions.Get()
	require.NotNil(t, policy)

	route, ok := policy.Lookup(http.MethodDelete, "/v1/admin/gallery/{id}")

	require.True(t, ok)
	assert.True(t, route.Allows("admin"))
	assert.True(t, route.Allows("superadmin"))
	assert.False(t, route.Allows("guest"))
	assert.False(t, route.Public)
}

func TestLookup(t *testing.T) {
	policy, err := permissions.Parse([]byte(`{"routes": [
		{"method": "post", "pattern": "/v1/admin/updates", "roles": ["superadmin"]},
		{"method": "GET", "pattern": "/v1/admin/dashboard"}
	]}`))
	require.NoError(t, err)

	t.Run("method is case insensitive", func(t *testing.T) {
		route, ok := policy.Lookup(http.MethodPost, "/v1/admin/updates")

		require.True(t, ok)
		assert.False(t, route.Allows("admin"))
	})

	t.Run("no roles allows any admin", func(t *testing.T) {
		route, ok := policy.Lookup(http.MethodGet, "/v1/admin/dashboard")

		require.True(t, ok)
		assert.True(t, route.Allows("admin"))
	})

	t.Run("unknown route", func(t *testing.T) {
		_, ok := policy.Lookup(http.MethodGet, "/v1/admin/updates")

		assert.False(t, ok)
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":    "{",
		"unknown role": `{"routes": [{"method": "GET", "pattern": "/v1/admin/dashboard", "roles": ["visitor"]}]}`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := permissions.Parse([]byte(data))

			assert.Error(t, err)
		})
	}
}
