package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventra-api/pkg/jwt"
)

const (
	testSecret = "jwt-test-secret"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "inventra-test"
)

// Generar y parsear devuelve los mismos claims, incluido el jti.
func TestGenerateYParse(t *testing.T) {
	token, jti, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti, "todo token lleva jti para poder revocarse")

	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, jti, claims.ID, "el jti devuelto debe coincidir con el claim ID")
}

// Dos tokens del mismo usuario tienen jti distintos (revocación independiente).
func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	_, jti1, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)
	_, jti2, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)
	assert.NotEqual(t, jti1, jti2)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", testUserID, "admin", testIssuer, 60)
	assert.Error(t, err)
}

// Un token firmado con otro secret no debe validar.
func TestParse_FirmaIncorrecta(t *testing.T) {
	token, _, err := jwt.Generate("otro-secret", testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

// Un token expirado no debe validar.
func TestParse_TokenExpirado(t *testing.T) {
	token, _, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, -5)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err, "un token con exp en el pasado debe rechazarse")
}

func TestParse_TokenMalFormado(t *testing.T) {
	_, err := jwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}

// TTL devuelve el tiempo restante, y cero cuando ya expiró.
func TestClaims_TTL(t *testing.T) {
	token, _, err := jwt.Generate(testSecret, testUserID, "admin", testIssuer, 60)
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)

	ttl := claims.TTL()
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, 60*time.Minute)

	var empty jwt.Claims
	assert.Equal(t, time.Duration(0), empty.TTL(), "sin exp no hay TTL")
}
