// Package common contains constants and sentinel errors shared by the
// firflight client and server.
package common

const (
	// AuthorizationHeader carries "Bearer <access token>" on API requests.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// HealthService is the name registered with the gRPC health server.
	HealthService = "firflight.api"

	// APIPrefix is the path prefix of every versioned HTTP route.
	APIPrefix = "/api/v1"
)
