package globals

import (
	"os"
)

var JwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "darklands-dev-secret" // override via JWT_SECRET in production
}

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const DeviceIDKey ContextKey = "deviceId"
