package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

var hr = Identity{UserID: "u1", CompanyID: "c1", Role: "hr_manager"}

func TestIssueVerify_KimlikTasinir(t *testing.T) {
	s, err := Issue(testSecret, "ik-portal-test", hr, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	id, err := Verify(testSecret, s.Token)
	require.NoError(t, err)
	assert.Equal(t, hr, id)
}

func TestVerify_SuresiDolmus(t *testing.T) {
	s, err := Issue(testSecret, "ik-portal-test", hr, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(testSecret, s.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_YanlisSecret(t *testing.T) {
	s, err := Issue(testSecret, "ik-portal-test", hr, time.Hour)
	require.NoError(t, err)

	_, err = Verify("baska-secret", s.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_BaskaAlgoritmaReddedilir(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		CompanyID:        "c1", Role: "admin",
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Verify(testSecret, signed)
	assert.Error(t, err)
}

func TestVerify_SuresizTokenReddedilir(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		CompanyID:        "c1", Role: "admin",
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = Verify(testSecret, signed)
	assert.Error(t, err)
}

func TestIssue_EksikAlanlar(t *testing.T) {
	_, err := Issue("", "x", hr, time.Hour)
	assert.Error(t, err)

	_, err = Issue(testSecret, "x", Identity{UserID: "u1", Role: "admin"}, time.Hour)
	assert.Error(t, err)
}
