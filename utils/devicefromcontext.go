package utils

import (
	"context"

	"darklands/globals"
)

// DeviceIDFromContext returns the authenticated device id, or "" when
// the request carried no valid token.
func DeviceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(globals.DeviceIDKey).(string)
	return id
}

// RoleFromContext returns the authenticated role, or "".
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(globals.RoleKey).(string)
	return role
}
