package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func testPublicKeyB64(t *testing.T) string {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return base64.StdEncoding.EncodeToString(pemBytes)
}

func baseEnv(t *testing.T) map[string]string {
	return map[string]string{
		"APP_PORT":              "8080",
		"APP_URL_FROM_ANYWHERE": "http://localhost:8080",
		"DB_URL":                "postgres://u:p@localhost:5432/society",
		"RSA_PUBLIC_KEY_BASE64": testPublicKeyB64(t),
	}
}

func loadFrom(env map[string]string) (*Config, error) {
	getenv := func(k string) string { return env[k] }
	return load(getenv, envFlags{getenv: getenv})
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadFrom(baseEnv(t))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.AppPort)
	require.NotNil(t, cfg.RSAPublicKey)
	require.Equal(t, DefaultTimeZone, cfg.SocietyLocation.String())
	require.True(t, cfg.LDFlag_CORSHighSecurity)
	require.False(t, cfg.LDFlag_SupplyAlerts)
	require.Equal(t, "no-reply@hijibiji.local", cfg.SendgridFromEmail)
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_URL_FROM_ANYWHERE", "DB_URL", "RSA_PUBLIC_KEY_BASE64"} {
		env := baseEnv(t)
		delete(env, key)
		_, err := loadFrom(env)
		require.Error(t, err, key)
	}
}

func TestLoadFlagsFromEnv(t *testing.T) {
	env := baseEnv(t)
	env["FLAG_SUPPLY_ALERTS"] = "true"
	env["FLAG_CORS_HIGH_SECURITY"] = "false"
	cfg, err := loadFrom(env)
	require.NoError(t, err)
	require.True(t, cfg.LDFlag_SupplyAlerts)
	require.False(t, cfg.LDFlag_CORSHighSecurity)

	env["FLAG_SUPPLY_ALERTS"] = "maybe"
	_, err = loadFrom(env)
	require.Error(t, err)
}

func TestOpenAIFlagRequiresKey(t *testing.T) {
	env := baseEnv(t)
	env["FLAG_OPENAI_PROOF_RATING"] = "true"
	_, err := loadFrom(env)
	require.Error(t, err)

	env["OPENAI_API_KEY"] = "sk-test"
	cfg, err := loadFrom(env)
	require.NoError(t, err)
	require.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestGeofenceFlagRequiresCoordinates(t *testing.T) {
	env := baseEnv(t)
	env["FLAG_PUNCH_GEOFENCE"] = "true"
	_, err := loadFrom(env)
	require.Error(t, err)

	env["SOCIETY_LATITUDE"] = "22.5726"
	env["SOCIETY_LONGITUDE"] = "88.3639"
	cfg, err := loadFrom(env)
	require.NoError(t, err)
	require.NotEqual(t, "UTC", cfg.SocietyLocation.String())
}

func TestExplicitTimeZoneWins(t *testing.T) {
	env := baseEnv(t)
	env["SOCIETY_TIMEZONE"] = "Europe/London"
	env["SOCIETY_LATITUDE"] = "22.5726"
	env["SOCIETY_LONGITUDE"] = "88.3639"
	cfg, err := loadFrom(env)
	require.NoError(t, err)
	require.Equal(t, "Europe/London", cfg.SocietyLocation.String())

	env["SOCIETY_TIMEZONE"] = "Nowhere/Land"
	_, err = loadFrom(env)
	require.Error(t, err)
}
