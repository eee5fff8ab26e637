package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/bostadsportal/mono-repo/backend/services/roster-service/internal/constants"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	Env              string

	// Database
	DBUrl string

	// Exports
	ExportRootDir         string
	ExportRetention       time.Duration
	ExportCleanupSchedule string
	CollationLocale       string
	RosterTemplates       RosterTemplates

	// Feature flags (LaunchDarkly, or env fallbacks when no SDK key is set)
	LDFlag_SeedDbWithTestData       bool
	LDFlag_CORSHighSecurity         bool
	LDFlag_SpreadsheetRosterEnabled bool
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

func LoadConfig() *Config {
	if AppName == "" {
		utils.Logger.Fatal("AppName was not provided via ldflags")
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	//----------------------------------------------------------------------
	// 1) Runtime environment
	//----------------------------------------------------------------------
	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}

	//----------------------------------------------------------------------
	// 2) Secrets: Bitwarden when configured, plain env otherwise
	//----------------------------------------------------------------------
	secrets := loadSecrets(fmt.Sprintf("%s-%s", AppName, env))

	dbURL := secrets["DB_URL"]
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL missing (BWS project or DATABASE_URL env var)")
	}

	//----------------------------------------------------------------------
	// 3) Export settings
	//----------------------------------------------------------------------
	exportRoot := envOr("EXPORT_ROOT_DIR", constants.DefaultExportRootDir)
	retention, err := durationEnvOr("EXPORT_RETENTION", constants.DefaultExportRetention)
	if err != nil {
		utils.Logger.WithError(err).Fatal("EXPORT_RETENTION is not a valid duration")
	}
	templates, err := LoadRosterTemplates(
		envOr("ROSTER_TEMPLATE_DIR", constants.DefaultRosterTemplateDir),
		os.Getenv("ROSTER_TEMPLATES_FILE"),
	)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load roster templates")
	}

	cfg := &Config{
		OrganizationName:      OrganizationName,
		AppName:               AppName,
		AppPort:               appPort,
		AppUrl:                appURL,
		Env:                   env,
		DBUrl:                 dbURL,
		ExportRootDir:         exportRoot,
		ExportRetention:       retention,
		ExportCleanupSchedule: envOr("EXPORT_CLEANUP_SCHEDULE", constants.DefaultExportCleanupSchedule),
		CollationLocale:       envOr("ROSTER_COLLATION_LOCALE", constants.DefaultCollationLocale),
		RosterTemplates:       templates,
	}

	//----------------------------------------------------------------------
	// 4) Feature flags
	//----------------------------------------------------------------------
	if sdkKey := secrets["LD_SDK_KEY"]; sdkKey != "" {
		loadLDFlags(cfg, sdkKey)
	} else {
		utils.Logger.Info("LD_SDK_KEY not set; reading feature flags from env")
		cfg.LDFlag_SeedDbWithTestData = boolEnv("SEED_DB_WITH_TEST_DATA", false)
		cfg.LDFlag_CORSHighSecurity = boolEnv("CORS_HIGH_SECURITY", true)
		cfg.LDFlag_SpreadsheetRosterEnabled = boolEnv("SPREADSHEET_ROSTER_ENABLED", true)
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)
	return cfg
}

func (c *Config) Close() {
}

// loadSecrets prefers the Bitwarden project; DATABASE_URL and LD_SDK_KEY
// from the environment fill in whatever it does not provide.
func loadSecrets(projectName string) map[string]string {
	out := map[string]string{}

	if os.Getenv("BWS_ACCESS_TOKEN") != "" {
		client, err := utils.NewBWSSecretsClient()
		if err != nil {
			utils.Logger.WithError(err).Fatal("Init BWS client")
		}
		defer client.Close()

		appSecrets, err := client.GetBWSSecrets(projectName)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
		}
		for k, v := range appSecrets {
			out[k] = v
		}
	}

	if out["DB_URL"] == "" {
		out["DB_URL"] = os.Getenv("DATABASE_URL")
	}
	if out["LD_SDK_KEY"] == "" {
		out["LD_SDK_KEY"] = os.Getenv("LD_SDK_KEY")
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
	defer ldClient.Close()
	if !ldClient.Initialized() {
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	flag := func(key string, def bool) bool {
		v, err := ldClient.BoolVariation(key, ctx, def)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("%s flag error", key)
		}
		utils.Logger.Debugf("%s flag: %t", key, v)
		return v
	}

	cfg.LDFlag_SeedDbWithTestData = flag("seed_db_with_test_data", false)
	cfg.LDFlag_CORSHighSecurity = flag("cors_high_security", true)
	cfg.LDFlag_SpreadsheetRosterEnabled = flag("spreadsheet_roster_enabled", true)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnvOr(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

func boolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using %t", key, v, def)
		return def
	}
	return b
}
