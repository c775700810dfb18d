//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"tripd/internal/pkg/config"
	"tripd/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// BearerToken mints a valid access token for userID using the test config's
// signing secret.
func BearerToken(t *testing.T, cfg config.Config, userID uuid.UUID) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.JWT.Secret, duration).GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}
