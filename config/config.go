package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultPageSize           = 5
	defaultUserPageSize       = 10
	defaultCookieName         = "quill_ctx"
	defaultMaxCacheScopes     = 1024
	defaultMagicLinksPerMin   = 5

	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendSQLite   = "sqlite"
)

// envFiles are loaded into the process environment before the config file is read.
var envFiles = []string{".env.local", ".env"}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port                int    `json:"port" yaml:"port"`
		MaxRequestBodySize  string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// MagicLinksPerMinute limits sign-in emails per client IP.
		MagicLinksPerMinute int    `json:"magicLinksPerMinute" yaml:"magicLinksPerMinute"`
		Timeouts            struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Supabase holds the hosted BaaS endpoints. URL and AnonKey are required.
	Supabase SupabaseConfig `json:"supabase" yaml:"supabase"`

	Session SessionConfig `json:"session" yaml:"session"`

	// Postgres is only used by the postgres session backend.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Posts PostsConfig `json:"posts" yaml:"posts"`

	Cache CacheConfig `json:"cache" yaml:"cache"`

	// QRCode configuration for post share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// SupabaseConfig points at the hosted identity provider and GraphQL endpoint.
type SupabaseConfig struct {
	URL     string `json:"url" yaml:"url"`
	AnonKey string `json:"anonKey" yaml:"anonKey"`
	// JWTSecret enables local verification of access tokens. Without it every
	// protected request asks the identity provider.
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`
	// JWKSURL verifies asymmetrically signed tokens when no JWTSecret is set.
	JWKSURL string `json:"jwksUrl" yaml:"jwksUrl"`
	// SiteURL is the public base URL of quill, used for email and OAuth redirects.
	SiteURL string        `json:"siteUrl" yaml:"siteUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// OAuthProviders are offered on the sign-in page.
	OAuthProviders []string `json:"oauthProviders" yaml:"oauthProviders"`
}

// SessionConfig defines how browser contexts and their sessions are kept.
type SessionConfig struct {
	CookieName string `json:"cookieName" yaml:"cookieName"`
	Secure     bool   `json:"secure" yaml:"secure"`
	// Backend is "memory", "postgres" or "sqlite".
	Backend string `json:"backend" yaml:"backend"`
	// Secret derives the key that seals tokens stored by the persistent backends.
	Secret     string `json:"secret" yaml:"secret"`
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath"`
	// IdleTimeout stops background token refresh for contexts without requests.
	IdleTimeout time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	// MaxSignedOutContexts bounds the signed-out contexts remembered in memory.
	MaxSignedOutContexts int `json:"maxSignedOutContexts" yaml:"maxSignedOutContexts"`
}

// PostsConfig defines listing page sizes.
type PostsConfig struct {
	PageSize     int `json:"pageSize" yaml:"pageSize"`
	UserPageSize int `json:"userPageSize" yaml:"userPageSize"`
}

// CacheConfig bounds the number of per-browser cache scopes kept in memory.
type CacheConfig struct {
	MaxScopes int `json:"maxScopes" yaml:"maxScopes"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SUPABASE_ANONKEY -> supabase.anonKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	loadEnvFiles(envFiles...)

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFiles copies variables from env files into the process environment.
// Variables that are already set win; missing files are skipped.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.MagicLinksPerMinute <= 0 {
		cfg.HTTP.MagicLinksPerMinute = defaultMagicLinksPerMin
	}
	if cfg.Posts.PageSize <= 0 {
		cfg.Posts.PageSize = defaultPageSize
	}
	if cfg.Posts.UserPageSize <= 0 {
		cfg.Posts.UserPageSize = defaultUserPageSize
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultCookieName
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = SessionBackendMemory
	}
	if cfg.Cache.MaxScopes <= 0 {
		cfg.Cache.MaxScopes = defaultMaxCacheScopes
	}
	if cfg.Supabase.OAuthProviders == nil {
		cfg.Supabase.OAuthProviders = []string{"google"}
	}
	if cfg.Supabase.Timeout <= 0 {
		cfg.Supabase.Timeout = 15 * time.Second
	}
	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	cfg.Supabase.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.SiteURL), "/")
}

// Validate fails fast on configuration that would only break at request time.
func (cfg *Config) Validate() error {
	if cfg.Supabase.URL == "" {
		return errors.New("supabase.url is required (SUPABASE_URL)")
	}
	if u, err := url.Parse(cfg.Supabase.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("supabase.url %q is not an absolute URL", cfg.Supabase.URL)
	}
	if strings.TrimSpace(cfg.Supabase.AnonKey) == "" {
		return errors.New("supabase.anonKey is required (SUPABASE_ANONKEY)")
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendPostgres:
		if cfg.Postgres == nil {
			return errors.New("session.backend is postgres but no postgres section is configured")
		}
		if cfg.Session.Secret == "" {
			return errors.New("session.secret is required by the postgres session backend")
		}
	case SessionBackendSQLite:
		if cfg.Session.SQLitePath == "" {
			return errors.New("session.sqlitePath is required by the sqlite session backend")
		}
		if cfg.Session.Secret == "" {
			return errors.New("session.secret is required by the sqlite session backend")
		}
	default:
		return errors.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
