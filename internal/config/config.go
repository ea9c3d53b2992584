package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/phone-validator-service/internal/utils"
)

type Config struct {
	AppName string
	Env     string
	AppPort string
	AppUrl  string
	DBUrl   string

	TwilioAccountSID string
	TwilioAuthToken  string

	// Feature-flag snapshots
	LDFlag_CORSHighSecurity          bool
	LDFlag_SeedDbWithTestData        bool
	LDFlag_ValidateNumbersWithTwilio bool
	LDFlag_RequireE164Numbers        bool
}

const (
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig reads ldflags, then env vars, then secrets (Bitwarden when
// BWS_ACCESS_TOKEN is set, env otherwise), then LaunchDarkly flags.
// Anything required and missing is fatal.
func LoadConfig() *Config {
	appName := AppName
	if appName == "" {
		appName = utils.DefaultAppName
	}
	utils.Logger.Info("Loading config for app: ", appName)

	env := requireEnv("ENV")
	appURL := requireEnv("APP_URL_FROM_ANYWHERE")
	appPort := requireEnv("APP_PORT")

	secrets := loadSecrets(appName, env)

	dbURL := secrets["DB_URL"]
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL not found in secrets")
	}

	cfg := &Config{
		AppName:          appName,
		Env:              env,
		AppPort:          appPort,
		AppUrl:           appURL,
		DBUrl:            dbURL,
		TwilioAccountSID: secrets["TWILIO_ACCOUNT_SID"],
		TwilioAuthToken:  secrets["TWILIO_AUTH_TOKEN"],
	}

	if sdkKey := secrets["LD_SDK_KEY"]; sdkKey != "" {
		loadLDFlags(cfg, sdkKey)
	} else {
		utils.Logger.Warn("LD_SDK_KEY not set; reading feature flags from LDFLAG_* env vars")
		cfg.LDFlag_CORSHighSecurity = envBool("LDFLAG_CORS_HIGH_SECURITY", true)
		cfg.LDFlag_SeedDbWithTestData = envBool("LDFLAG_SEED_DB_WITH_TEST_DATA", false)
		cfg.LDFlag_ValidateNumbersWithTwilio = envBool("LDFLAG_VALIDATE_NUMBERS_WITH_TWILIO", false)
		cfg.LDFlag_RequireE164Numbers = envBool("LDFLAG_REQUIRE_E164_NUMBERS", false)
	}

	if cfg.LDFlag_ValidateNumbersWithTwilio && (cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "") {
		utils.Logger.Fatal("validate_numbers_with_twilio is on but Twilio credentials are missing")
	}

	utils.Logger.Infof("Loaded config for %s (%s)", appName, env)
	return cfg
}

func (c *Config) Close() {
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', defaulting to %t", key, raw, def)
		return def
	}
	return v
}

var secretKeys = []string{"DB_URL", "LD_SDK_KEY", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN"}

func loadSecrets(appName, env string) map[string]string {
	out := make(map[string]string, len(secretKeys))

	if !utils.BWSConfigured() {
		utils.Logger.Debug("BWS_ACCESS_TOKEN not set; reading secrets from env")
		for _, k := range secretKeys {
			out[k] = os.Getenv(k)
		}
		return out
	}

	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Init BWS client")
	}
	defer client.Close()

	bwsProjectName := fmt.Sprintf("%s-%s", appName, env)
	appSecrets, err := client.GetBWSSecrets(bwsProjectName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
	}
	for _, k := range secretKeys {
		out[k] = appSecrets[k]
	}
	return out
}

func loadLDFlags(cfg *Config, sdkKey string) {
	if LDServerContextKey == "" || LDServerContextKind == "" {
		utils.Logger.Fatal("LD context ldflags missing")
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(key string, def bool) bool {
		v, err := ldClient.BoolVariation(key, ctx, def)
		if err != nil {
			ldClient.Close()
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %t", key, v)
		return v
	}

	cfg.LDFlag_CORSHighSecurity = boolFlag("cors_high_security", true)
	cfg.LDFlag_SeedDbWithTestData = boolFlag("seed_db_with_test_data", false)
	cfg.LDFlag_ValidateNumbersWithTwilio = boolFlag("validate_numbers_with_twilio", false)
	cfg.LDFlag_RequireE164Numbers = boolFlag("require_e164_numbers", false)
}
