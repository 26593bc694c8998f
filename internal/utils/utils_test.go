package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmoutsourcing/payslip-api/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
	assert.False(t, CheckPassword("s3cret-pass", "not-a-bcrypt-hash"))
}

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "bm-payslip",
		Audience:  "bm-payslip-users",
		Algorithm: "HS256",
		Expiry:    time.Hour,
	}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	cfg := testJWTConfig()
	user := models.JWT{ID: 5, Name: "Maria Santos", Username: "msantos", Role: "admin"}

	token, err := GenerateJWT(user, cfg)
	require.NoError(t, err)

	claims, err := VerifyJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, claims.ID)
	assert.Equal(t, "msantos", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateJWT(models.JWT{ID: 5}, cfg)
	require.NoError(t, err)

	other := cfg
	other.SecretKey = "different-secret"
	_, err = VerifyJWT(token, other)
	assert.Error(t, err)
}

func TestVerifyJWT_WrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateJWT(models.JWT{ID: 5}, cfg)
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = VerifyJWT(token, other)
	assert.Error(t, err)
}

func TestVerifyJWT_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute

	token, err := GenerateJWT(models.JWT{ID: 5}, cfg)
	require.NoError(t, err)

	_, err = VerifyJWT(token, cfg)
	assert.Error(t, err)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	_, err := VerifyJWT("not.a.token", testJWTConfig())
	assert.Error(t, err)
}

type validateSample struct {
	Email  string `json:"email" validate:"required,email"`
	Amount int    `json:"amount" validate:"gte=0"`
	Status string `json:"status" validate:"required,oneof=Paid Pending Cancelled"`
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	fields := ValidateStruct(validateSample{Email: "nope", Amount: -1, Status: "Settled"})

	require.NotNil(t, fields)
	assert.Equal(t, "Must be a valid email address", fields["email"])
	assert.Equal(t, "Value is below the allowed minimum", fields["amount"])
	assert.Equal(t, "Value must be one of: Paid Pending Cancelled", fields["status"])
}

func TestValidateStruct_ValidInput(t *testing.T) {
	fields := ValidateStruct(validateSample{Email: "a@b.com", Amount: 10, Status: "Paid"})
	assert.Nil(t, fields)
}

func TestValidateStruct_RequiredMessage(t *testing.T) {
	fields := ValidateStruct(validateSample{Amount: 1, Status: "Paid"})

	require.NotNil(t, fields)
	assert.Equal(t, "This field is required", fields["email"])
}
