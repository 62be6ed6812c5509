package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/forces-league/internal/platform/logging"
)

// Data store drivers.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	CORSAllowedOrigins             []string
	SwaggerEnabled                 bool
	AdminPassword                  string
	DataStoreDriver                string
	DataStoreURL                   string
	DataStoreKey                   string
	DataStoreTimeout               time.Duration
	DataStoreCircuitEnabled        bool
	DataStoreCircuitFailureCount   int
	DataStoreCircuitOpenTimeout    time.Duration
	DataStoreCircuitHalfOpenMaxReq int
	DBURL                          string
	DBBinaryParameters             bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	adminPassword := getEnv("ADMIN_PASSWORD", "")
	if adminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	driver, err := parseDriver(getEnv("DATASTORE_DRIVER", DriverREST))
	if err != nil {
		return Config{}, err
	}
	if driver == DriverMemory && appEnv == EnvProd {
		return Config{}, fmt.Errorf("DATASTORE_DRIVER=%s is not allowed when APP_ENV=%s", DriverMemory, EnvProd)
	}

	dataStoreURL := strings.TrimRight(strings.TrimSpace(getEnv("DATASTORE_URL", "")), "/")
	dataStoreKey := strings.TrimSpace(getEnv("DATASTORE_KEY", ""))
	if driver == DriverREST {
		if dataStoreURL == "" {
			return Config{}, fmt.Errorf("DATASTORE_URL is required when DATASTORE_DRIVER=%s", DriverREST)
		}
		if dataStoreKey == "" {
			return Config{}, fmt.Errorf("DATASTORE_KEY is required when DATASTORE_DRIVER=%s", DriverREST)
		}
	}

	dataStoreTimeout, err := time.ParseDuration(getEnv("DATASTORE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASTORE_TIMEOUT: %w", err)
	}
	if dataStoreTimeout <= 0 {
		return Config{}, fmt.Errorf("DATASTORE_TIMEOUT must be > 0")
	}
	dataStoreCircuitEnabled, err := strconv.ParseBool(getEnv("DATASTORE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASTORE_CIRCUIT_ENABLED: %w", err)
	}
	dataStoreCircuitFailureCount, err := getEnvAsInt("DATASTORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASTORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if dataStoreCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("DATASTORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	dataStoreCircuitOpenTimeout, err := time.ParseDuration(getEnv("DATASTORE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASTORE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if dataStoreCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("DATASTORE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	dataStoreCircuitHalfOpenMaxReq, err := getEnvAsInt("DATASTORE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASTORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if dataStoreCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("DATASTORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if driver == DriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATASTORE_DRIVER=%s", DriverPostgres)
	}
	dbBinaryParameters, err := strconv.ParseBool(getEnv("DB_BINARY_PARAMETERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_BINARY_PARAMETERS: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "forces-league-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:                 swaggerEnabled,
		AdminPassword:                  adminPassword,
		DataStoreDriver:                driver,
		DataStoreURL:                   dataStoreURL,
		DataStoreKey:                   dataStoreKey,
		DataStoreTimeout:               dataStoreTimeout,
		DataStoreCircuitEnabled:        dataStoreCircuitEnabled,
		DataStoreCircuitFailureCount:   dataStoreCircuitFailureCount,
		DataStoreCircuitOpenTimeout:    dataStoreCircuitOpenTimeout,
		DataStoreCircuitHalfOpenMaxReq: dataStoreCircuitHalfOpenMaxReq,
		DBURL:                          dbURL,
		DBBinaryParameters:             dbBinaryParameters,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case DriverREST, DriverPostgres, DriverMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid DATASTORE_DRIVER %q: valid values are %s, %s, %s", v, DriverREST, DriverPostgres, DriverMemory)
	}
}
