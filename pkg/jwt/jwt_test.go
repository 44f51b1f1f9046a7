package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tiendix/retail-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testTenant = "00000000-0000-0000-0000-000000000002"
	testIssuer = "retail-api-test"
	testExpMin = 60
)

func TestGenerateAndParse_ClaimsCompletos(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenant, "bodeguero", pkgjwt.ScopeTenant, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testTenant, claims.TenantID)
	assert.Equal(t, "bodeguero", claims.Role)
	assert.Equal(t, pkgjwt.ScopeTenant, claims.Scope)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "el jti debe emitirse para poder revocar el token")
}

func TestParse_ScopePlatformSinTenant(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "superadmin", pkgjwt.ScopePlatform, testIssuer, testExpMin)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Empty(t, claims.TenantID)
	assert.Equal(t, pkgjwt.ScopePlatform, claims.Scope)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenant, "admin", pkgjwt.ScopeTenant, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testTenant, "admin", pkgjwt.ScopeTenant, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testTenant, "admin", pkgjwt.ScopeTenant, testIssuer, testExpMin)
	assert.Error(t, err)
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, testUserID, testTenant, "admin", pkgjwt.ScopeTenant, testIssuer, testExpMin)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, testUserID, testTenant, "admin", pkgjwt.ScopeTenant, testIssuer, testExpMin)
	require.NoError(t, err)

	ca, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID, "cada token lleva su propio jti")
}
