package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/bradfitz/latlong"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	UniqueRunNumber  string
	UniqueRunnerID   string

	// Database
	DBUrl string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// Society
	SocietyLatitude  float64
	SocietyLongitude float64
	SocietyLocation  *time.Location

	// Billing collaborator
	BillingAPIURL string
	BillingAPIKey string

	// Redis (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Proof images (optional)
	GCSBucket          string
	GCSCredentialsJSON []byte

	// Notifications (optional)
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromPhone   string
	SendGridAPIKey    string
	SendgridFromEmail string
	ManagerPhone      string
	ManagerEmail      string

	OpenAIAPIKey string

	// Feature flags
	LDFlag_UsingIsolatedSchema bool
	LDFlag_SeedDbWithTestData  bool
	LDFlag_CORSHighSecurity    bool
	LDFlag_OpenAIProofRating   bool
	LDFlag_SupplyAlerts        bool
	LDFlag_PunchGeofence       bool
	LDFlag_SendgridSandboxMode bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
	DefaultTimeZone     = "Asia/Kolkata"
)

// build-time overrides
var (
	AppName             = "housekeeping-service"
	UniqueRunNumber     string
	UniqueRunnerID      string
	LDServerContextKey  = "housekeeping-service"
	LDServerContextKind = "service"
)

// flagSource resolves boolean feature flags.
type flagSource interface {
	BoolVariation(key string, defaultVal bool) (bool, error)
}

type ldFlags struct {
	client *ld.LDClient
	ctx    ldcontext.Context
}

func (f ldFlags) BoolVariation(key string, defaultVal bool) (bool, error) {
	return f.client.BoolVariation(key, f.ctx, defaultVal)
}

// envFlags reads FLAG_<KEY> variables, e.g. FLAG_SUPPLY_ALERTS=true.
type envFlags struct {
	getenv func(string) string
}

func (f envFlags) BoolVariation(key string, defaultVal bool) (bool, error) {
	raw := f.getenv("FLAG_" + strings.ToUpper(key))
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(raw)
}

// LoadConfig reads .env (when present), the environment and feature flags.
// Any missing required value is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file loaded")
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	var flags flagSource = envFlags{getenv: os.Getenv}
	if sdkKey := os.Getenv("LD_SDK_KEY"); sdkKey != "" {
		ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
		}
		if !ldClient.Initialized() {
			ldClient.Close()
			utils.Logger.Fatal("LaunchDarkly client failed to initialize")
		}
		defer ldClient.Close()
		flags = ldFlags{
			client: ldClient,
			ctx:    ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey),
		}
	} else {
		utils.Logger.Warn("LD_SDK_KEY not set, reading feature flags from FLAG_* env vars")
	}

	cfg, err := load(os.Getenv, flags)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}
	return cfg
}

func load(getenv func(string) string, flags flagSource) (*Config, error) {
	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		UniqueRunNumber:  UniqueRunNumber,
		UniqueRunnerID:   UniqueRunnerID,
	}

	cfg.AppPort = getenv("APP_PORT")
	if cfg.AppPort == "" {
		return nil, errors.New("APP_PORT env var is missing")
	}
	cfg.AppUrl = getenv("APP_URL_FROM_ANYWHERE")
	if cfg.AppUrl == "" {
		return nil, errors.New("APP_URL_FROM_ANYWHERE env var is missing")
	}
	cfg.DBUrl = getenv("DB_URL")
	if cfg.DBUrl == "" {
		return nil, errors.New("DB_URL env var is missing")
	}

	pubKey, err := parsePublicKey(getenv("RSA_PUBLIC_KEY_BASE64"))
	if err != nil {
		return nil, err
	}
	cfg.RSAPublicKey = pubKey

	cfg.SocietyLatitude, err = parseFloatOr(getenv("SOCIETY_LATITUDE"), 0)
	if err != nil {
		return nil, fmt.Errorf("SOCIETY_LATITUDE: %w", err)
	}
	cfg.SocietyLongitude, err = parseFloatOr(getenv("SOCIETY_LONGITUDE"), 0)
	if err != nil {
		return nil, fmt.Errorf("SOCIETY_LONGITUDE: %w", err)
	}
	cfg.SocietyLocation, err = resolveLocation(getenv("SOCIETY_TIMEZONE"), cfg.SocietyLatitude, cfg.SocietyLongitude)
	if err != nil {
		return nil, err
	}

	cfg.BillingAPIURL = getenv("BILLING_API_URL")
	cfg.BillingAPIKey = getenv("BILLING_API_KEY")
	if cfg.BillingAPIURL == "" {
		utils.Logger.Warn("BILLING_API_URL not set, active flats will be unknown and progress will count leniently")
	}

	cfg.RedisAddr = getenv("REDIS_ADDR")
	cfg.RedisPassword = getenv("REDIS_PASSWORD")
	if raw := getenv("REDIS_DB"); raw != "" {
		if cfg.RedisDB, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
	}

	cfg.GCSBucket = getenv("GCS_BUCKET")
	if raw := getenv("GCS_CREDENTIALS_JSON_BASE64"); raw != "" {
		if cfg.GCSCredentialsJSON, err = base64.StdEncoding.DecodeString(raw); err != nil {
			return nil, fmt.Errorf("GCS_CREDENTIALS_JSON_BASE64: %w", err)
		}
	}

	cfg.TwilioAccountSID = getenv("TWILIO_ACCOUNT_SID")
	cfg.TwilioAuthToken = getenv("TWILIO_AUTH_TOKEN")
	cfg.TwilioFromPhone = getenv("TWILIO_FROM_PHONE")
	cfg.SendGridAPIKey = getenv("SENDGRID_API_KEY")
	cfg.SendgridFromEmail = getenv("SENDGRID_FROM_EMAIL")
	if cfg.SendgridFromEmail == "" {
		cfg.SendgridFromEmail = "no-reply@hijibiji.local"
	}
	cfg.ManagerPhone = getenv("MANAGER_PHONE")
	cfg.ManagerEmail = getenv("MANAGER_EMAIL")

	if err := loadFlags(cfg, flags); err != nil {
		return nil, err
	}

	if cfg.LDFlag_OpenAIProofRating {
		cfg.OpenAIAPIKey = getenv("OPENAI_API_KEY")
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY missing but openai_proof_rating flag enabled")
		}
	}
	if cfg.LDFlag_PunchGeofence && cfg.SocietyLatitude == 0 && cfg.SocietyLongitude == 0 {
		return nil, errors.New("SOCIETY_LATITUDE/SOCIETY_LONGITUDE required when punch_geofence flag enabled")
	}
	if cfg.LDFlag_UsingIsolatedSchema && (cfg.UniqueRunnerID == "" || cfg.UniqueRunNumber == "") {
		return nil, errors.New("UniqueRunnerID and UniqueRunNumber ldflags required for isolated schema")
	}

	return cfg, nil
}

func loadFlags(cfg *Config, flags flagSource) error {
	targets := []struct {
		key string
		dst *bool
		def bool
	}{
		{"using_isolated_schema", &cfg.LDFlag_UsingIsolatedSchema, false},
		{"seed_db_with_test_data", &cfg.LDFlag_SeedDbWithTestData, false},
		{"cors_high_security", &cfg.LDFlag_CORSHighSecurity, true},
		{"openai_proof_rating", &cfg.LDFlag_OpenAIProofRating, false},
		{"supply_alerts", &cfg.LDFlag_SupplyAlerts, false},
		{"punch_geofence", &cfg.LDFlag_PunchGeofence, false},
		{"sendgrid_sandbox_mode", &cfg.LDFlag_SendgridSandboxMode, false},
	}
	for _, t := range targets {
		v, err := flags.BoolVariation(t.key, t.def)
		if err != nil {
			return fmt.Errorf("error retrieving %s flag: %w", t.key, err)
		}
		*t.dst = v
		utils.Logger.Debugf("%s flag: %t", t.key, v)
	}
	return nil
}

func parsePublicKey(b64 string) (*rsa.PublicKey, error) {
	if b64 == "" {
		return nil, errors.New("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("RSA_PUBLIC_KEY_BASE64 is not base64: %w", err)
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		return nil, errors.New("failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return pubKey, nil
}

// resolveLocation prefers an explicit zone name, then the zone at the
// society's coordinates, then DefaultTimeZone.
func resolveLocation(zone string, lat, lng float64) (*time.Location, error) {
	if zone == "" && (lat != 0 || lng != 0) {
		zone = latlong.LookupZoneName(lat, lng)
	}
	if zone == "" {
		zone = DefaultTimeZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid society time zone %q: %w", zone, err)
	}
	return loc, nil
}

func parseFloatOr(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
