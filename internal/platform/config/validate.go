package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minJWTSecretLength = 32

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (got %d)", minJWTSecretLength, len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive (got %s)", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("AUTH_BCRYPT_COST must be within [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Reset.TokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive (got %s)", c.Reset.TokenTTL)
	}
	if strings.Count(c.Reset.URLTemplate, "%s") != 1 {
		return fmt.Errorf("RESET_URL_TEMPLATE must contain exactly one %%s placeholder")
	}
	if c.Content.RequestsPerMinute <= 0 {
		return fmt.Errorf("GITHUB_REQUESTS_PER_MIN must be positive (got %d)", c.Content.RequestsPerMinute)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive (got %d)", c.Database.MaxOpenConns)
	}
	return nil
}
