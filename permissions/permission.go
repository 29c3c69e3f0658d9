// Package permissions holds the role policy for the admin routes, embedded
// from permissions.json.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"rkhub/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var policyFile []byte

var knownRoles = []string{constant.RoleSuperAdmin, constant.RoleAdmin}

// Route lists the roles allowed on one chi route pattern. Public routes
// skip authentication entirely.
type Route struct {
	Method  string   `json:"method"`
	Pattern string   `json:"pattern"`
	Roles   []string `json:"roles"`
	Public  bool     `json:"public"`
}

// Allows reports whether role may call the route. A route without roles
// accepts any authenticated admin.
func (r Route) Allows(role string) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

type Policy struct {
	Public bool    `json:"public"`
	Routes []Route `json:"routes"`
}

// Lookup finds the route registered for method and pattern.
func (p *Policy) Lookup(method, pattern string) (Route, bool) {
	idx := slices.IndexFunc(p.Routes, func(r Route) bool {
		return r.Pattern == pattern && strings.EqualFold(r.Method, method)
	})

	if idx == -1 {
		return Route{}, false
	}

	return p.Routes[idx], true
}

// Parse decodes a policy and rejects roles the service does not know.
func Parse(data []byte) (*Policy, error) {
	var policy Policy

	if err := json.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}

	for _, route := range policy.Routes {
		for _, role := range route.Roles {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("route %s %s: unknown role %q", route.Method, route.Pattern, role)
			}
		}
	}

	return &policy, nil
}

// Get decodes the embedded policy. It returns nil when the file is invalid,
// which makes RBAC deny every request.
func Get() *Policy {
	policy, err := Parse(policyFile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("routes", len(policy.Routes)).Msg("Loaded embedded permissions")

	return policy
}
