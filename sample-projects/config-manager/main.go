package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	godec "github.com/reoring/godec"
	"github.com/reoring/godec/dsl"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `json:"app"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Logging  LoggingConfig  `json:"logging"`
	Features FeaturesConfig `json:"features"`
}

type AppConfig struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Port        int               `json:"port"`
	Host        string            `json:"host"`
	TLS         TLSConfig         `json:"tls"`
	Cors        CorsConfig        `json:"cors"`
	Metadata    map[string]string `json:"metadata"`
}

type TLSConfig struct {
	Enabled  bool   `json:"enabled"`
	CertFile string `json:"certFile"`
	KeyFile  string `json:"keyFile"`
}

type CorsConfig struct {
	Enabled bool     `json:"enabled"`
	Origins []string `json:"origins"`
}

type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Database     string `json:"database"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	MaxConns     int    `json:"maxConns"`
	MaxIdleConns int    `json:"maxIdleConns"`
	SSLMode      string `json:"sslMode"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database int    `json:"database"`
	Password string `json:"password"`
	PoolSize int    `json:"poolSize"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	Output string `json:"output"`
}

type FeaturesConfig struct {
	Analytics bool `json:"analytics"`
	Debugging bool `json:"debugging"`
}

// ConfigManager loads and validates layered YAML configuration.
type ConfigManager struct {
	decoder godec.Decoder[Config]
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{decoder: newConfigDecoder()}
}

// newConfigDecoder declares every section of the configuration. Fields
// without a Default are required: a missing key decodes as null and the
// inner decoder rejects it.
func newConfigDecoder() godec.Decoder[Config] {
	tlsDec := dsl.MustBind[TLSConfig](dsl.Object().
		Field("enabled", dsl.Of[bool](dsl.Default(dsl.Bool(), false))).
		Field("certFile", dsl.Of[string](dsl.Default(dsl.String(), ""))).
		Field("keyFile", dsl.Of[string](dsl.Default(dsl.String(), ""))))

	corsDec := dsl.MustBind[CorsConfig](dsl.Object().
		Field("enabled", dsl.Of[bool](dsl.Default(dsl.Bool(), true))).
		Field("origins", dsl.Of[[]string](dsl.Default(dsl.Array(dsl.String()), []string{"*"}))))

	appDec := dsl.MustBind[AppConfig](dsl.Object().
		Field("name", dsl.Of[string](dsl.String())).
		Field("version", dsl.Of[string](dsl.String())).
		Field("environment", dsl.Of[string](dsl.Default(dsl.String(), "development"))).
		Field("port", dsl.Of[int64](dsl.Default(dsl.Int(), 8080))).
		Field("host", dsl.Of[string](dsl.Default(dsl.String(), "0.0.0.0"))).
		Field("tls", dsl.Of[TLSConfig](dsl.Default(tlsDec, TLSConfig{}))).
		Field("cors", dsl.Of[CorsConfig](dsl.Default(corsDec, CorsConfig{Enabled: true, Origins: []string{"*"}}))).
		Field("metadata", dsl.Of[map[string]string](dsl.Default(dsl.Dict(dsl.String()), map[string]string{}))))

	dbDec := dsl.MustBind[DatabaseConfig](dsl.Object().
		Field("host", dsl.Of[string](dsl.String())).
		Field("port", dsl.Of[int64](dsl.Default(dsl.Int(), 5432))).
		Field("database", dsl.Of[string](dsl.String())).
		Field("username", dsl.Of[string](dsl.String())).
		Field("password", dsl.Of[string](dsl.Default(dsl.String(), ""))).
		Field("maxConns", dsl.Of[int64](dsl.Default(dsl.Int(), 10))).
		Field("maxIdleConns", dsl.Of[int64](dsl.Default(dsl.Int(), 5))).
		Field("sslMode", dsl.Of[string](dsl.Default(dsl.String(), "prefer"))))

	redisDec := dsl.MustBind[RedisConfig](dsl.Object().
		Field("host", dsl.Of[string](dsl.Default(dsl.String(), "localhost"))).
		Field("port", dsl.Of[int64](dsl.Default(dsl.Int(), 6379))).
		Field("database", dsl.Of[int64](dsl.Default(dsl.Int(), 0))).
		Field("password", dsl.Of[string](dsl.Default(dsl.String(), ""))).
		Field("poolSize", dsl.Of[int64](dsl.Default(dsl.Int(), 10))))

	loggingDec := dsl.MustBind[LoggingConfig](dsl.Object().
		Field("level", dsl.Of[string](dsl.Default(dsl.String(), "info"))).
		Field("format", dsl.Of[string](dsl.Default(dsl.String(), "json"))).
		Field("output", dsl.Of[string](dsl.Default(dsl.String(), "stdout"))))

	featuresDec := dsl.MustBind[FeaturesConfig](dsl.Object().
		Field("analytics", dsl.Of[bool](dsl.Default(dsl.Bool(), true))).
		Field("debugging", dsl.Of[bool](dsl.Default(dsl.Bool(), false))))

	return dsl.MustBind[Config](dsl.Object().
		Field("app", dsl.Of[AppConfig](appDec)).
		Field("database", dsl.Of[DatabaseConfig](dbDec)).
		Field("redis", dsl.Of[RedisConfig](redisDec)).
		Field("logging", dsl.Of[LoggingConfig](loggingDec)).
		Field("features", dsl.Of[FeaturesConfig](featuresDec)))
}

// LoadConfig reads base.yaml, applies the <env>.yaml overlay when present
// and decodes both through the config decoder.
func (cm *ConfigManager) LoadConfig(env string, opts ...godec.DecodeOpt) (Config, error) {
	ctx := context.Background()

	baseData, err := cm.loadFile("base.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("failed to load base config: %w", err)
	}
	baseData = cm.expandEnvVars(baseData)

	baseConfig, err := godec.DecodeFrom(ctx, cm.decoder, godec.YAMLBytes(baseData), opts...)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode base config: %w", describeErr(err))
	}

	envFile := fmt.Sprintf("%s.yaml", env)
	if !cm.fileExists(envFile) {
		return baseConfig, nil
	}

	envData, err := cm.loadFile(envFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load %s config: %w", env, err)
	}
	envData = cm.expandEnvVars(envData)

	envConfig, err := godec.DecodeFrom(ctx, cm.decoder, godec.YAMLBytes(envData), opts...)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode %s config: %w", env, describeErr(err))
	}

	return cm.mergeConfigs(baseConfig, envConfig), nil
}

// ValidateConfig loads the configuration and applies checks the decoder
// cannot express. With strict set, duplicate mapping keys in the YAML
// files are rejected instead of last-wins.
func (cm *ConfigManager) ValidateConfig(env string, strict bool) error {
	opt := godec.DecodeOpt{RejectDuplicateKeys: strict}

	config, err := cm.LoadConfig(env, opt)
	if err != nil {
		return err
	}

	if config.App.Port < 1 || config.App.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.App.Port)
	}

	if config.App.TLS.Enabled && (config.App.TLS.CertFile == "" || config.App.TLS.KeyFile == "") {
		return fmt.Errorf("TLS enabled but cert/key files not specified")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	fmt.Printf("✅ Configuration for environment '%s' is valid!\n", env)
	return nil
}

func (cm *ConfigManager) ShowConfig(env string, maskSecrets bool) error {
	config, err := cm.LoadConfig(env)
	if err != nil {
		return err
	}

	if maskSecrets {
		config = cm.maskSecrets(config)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Printf("📋 Configuration for environment: %s\n", env)
	fmt.Println("=" + strings.Repeat("=", len(env)+25))
	fmt.Print(string(data))

	return nil
}

// ExportConfig prints the merged configuration as canonical JSON: object
// keys sorted, one line, the same rendering Value.String produces.
func (cm *ConfigManager) ExportConfig(env string) error {
	config, err := cm.LoadConfig(env)
	if err != nil {
		return err
	}

	data, err := gojson.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	v, err := godec.ValueFrom(godec.JSONBytes(data))
	if err != nil {
		return fmt.Errorf("failed to rebuild config value: %w", err)
	}

	fmt.Println(v.String())
	return nil
}

func (cm *ConfigManager) GenerateTemplate() error {
	templates := map[string]string{
		"base.yaml": `# Base configuration (common settings)
app:
  name: "MyWebApp"
  version: "1.0.0"
  host: "0.0.0.0"
  port: 8080
  tls:
    enabled: false
  cors:
    enabled: true
    origins: ["*"]
  metadata:
    team: "platform"
    description: "Web application"

database:
  host: "localhost"
  port: 5432
  database: "myapp"
  username: "postgres"
  maxConns: 10
  maxIdleConns: 5
  sslMode: "prefer"

redis:
  host: "localhost"
  port: 6379
  database: 0
  poolSize: 10

logging:
  level: "info"
  format: "json"
  output: "stdout"

features:
  analytics: true
  debugging: false
`,
		"development.yaml": `# Development environment overrides
app:
  environment: "development"
  port: 3000

database:
  password: "${DB_PASSWORD:-dev_password}"
  sslMode: "disable"

redis:
  password: "${REDIS_PASSWORD:-}"

logging:
  level: "debug"

features:
  debugging: true
`,
		"production.yaml": `# Production environment overrides
app:
  environment: "production"
  port: 80
  tls:
    enabled: true
    certFile: "${TLS_CERT_FILE}"
    keyFile: "${TLS_KEY_FILE}"
  cors:
    origins: ["https://example.com", "https://app.example.com"]

database:
  host: "${DB_HOST}"
  password: "${DB_PASSWORD}"
  maxConns: 50
  maxIdleConns: 10
  sslMode: "require"

redis:
  host: "${REDIS_HOST}"
  password: "${REDIS_PASSWORD}"
  poolSize: 50

logging:
  level: "warn"
  output: "${LOG_OUTPUT:-stdout}"

features:
  debugging: false
`,
	}

	for filename, content := range templates {
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		fmt.Printf("📝 Generated %s\n", filename)
	}

	fmt.Println("✅ Template configuration files generated!")
	fmt.Println("\n📖 Next steps:")
	fmt.Println("1. Edit the configuration files as needed")
	fmt.Println("2. Set required environment variables")
	fmt.Println("3. Validate with: go run . validate --env=development")

	return nil
}

func (cm *ConfigManager) loadFile(filename string) ([]byte, error) {
	if !cm.fileExists(filename) {
		return nil, fmt.Errorf("file %s does not exist", filename)
	}
	return os.ReadFile(filename)
}

func (cm *ConfigManager) fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// expandEnvVars substitutes ${VAR} and ${VAR:-default} before decoding.
func (cm *ConfigManager) expandEnvVars(data []byte) []byte {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	result := re.ReplaceAllStringFunc(string(data), func(match string) string {
		varExpr := match[2 : len(match)-1]

		if name, def, ok := strings.Cut(varExpr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		return os.Getenv(varExpr)
	})

	return []byte(result)
}

// mergeConfigs overlays env values onto the base. Shallow merge over the
// fields an overlay file typically sets; bools follow the overlay.
func (cm *ConfigManager) mergeConfigs(base, override Config) Config {
	result := base

	if override.App.Environment != "" {
		result.App.Environment = override.App.Environment
	}
	if override.App.Port != 0 {
		result.App.Port = override.App.Port
	}
	if override.App.TLS.Enabled {
		result.App.TLS = override.App.TLS
	}
	if len(override.App.Cors.Origins) > 0 {
		result.App.Cors = override.App.Cors
	}
	if override.Database.Host != "" {
		result.Database.Host = override.Database.Host
	}
	if override.Database.Password != "" {
		result.Database.Password = override.Database.Password
	}
	if override.Database.SSLMode != "" {
		result.Database.SSLMode = override.Database.SSLMode
	}
	if override.Redis.Host != "" {
		result.Redis.Host = override.Redis.Host
	}
	if override.Redis.Password != "" {
		result.Redis.Password = override.Redis.Password
	}
	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		result.Logging.Output = override.Logging.Output
	}
	result.Features.Debugging = override.Features.Debugging

	return result
}

func (cm *ConfigManager) maskSecrets(config Config) Config {
	masked := config

	if masked.Database.Password != "" {
		masked.Database.Password = "***masked***"
	}
	if masked.Redis.Password != "" {
		masked.Redis.Password = "***masked***"
	}
	if masked.App.TLS.KeyFile != "" {
		masked.App.TLS.KeyFile = "***masked***"
	}

	return masked
}

// describeErr flattens decode and source errors into a single line for
// CLI output.
func describeErr(err error) error {
	if se, ok := godec.AsSourceError(err); ok {
		if se.Path != "" {
			return fmt.Errorf("%s at %s: %s", se.Code, se.Path, se.Message)
		}
		return fmt.Errorf("%s: %s", se.Code, se.Message)
	}
	return err
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// a local .env feeds the ${VAR} expansions; missing files are fine
	_ = godotenv.Load()

	cm := NewConfigManager()
	command := os.Args[1]

	switch command {
	case "validate":
		env := getEnvFlag()
		strict := getBoolFlag("--strict")
		if err := cm.ValidateConfig(env, strict); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Validation failed: %v\n", err)
			os.Exit(1)
		}

	case "show":
		env := getEnvFlag()
		maskSecrets := !getBoolFlag("--no-mask")
		if err := cm.ShowConfig(env, maskSecrets); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Show failed: %v\n", err)
			os.Exit(1)
		}

	case "export":
		env := getEnvFlag()
		if err := cm.ExportConfig(env); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Export failed: %v\n", err)
			os.Exit(1)
		}

	case "generate":
		if getBoolFlag("--template") {
			if err := cm.GenerateTemplate(); err != nil {
				fmt.Fprintf(os.Stderr, "❌ Generate failed: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Fprintf(os.Stderr, "❌ Use --template flag to generate template files\n")
			os.Exit(1)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`🎯 godec Config Manager Sample

Usage: %s <command> [flags...]

Commands:
  validate [--env=<env>] [--strict]  Validate configuration for environment
  show [--env=<env>] [--no-mask]     Show configuration (default: mask secrets)
  export [--env=<env>]               Print merged config as canonical JSON
  generate --template                Generate template configuration files

Flags:
  --env=<environment>      Environment (default: development)
  --strict                 Reject duplicate keys in the YAML files
  --no-mask                Don't mask sensitive information
  --template               Generate template files

Examples:
  %s validate --env=development
  %s validate --env=production --strict
  %s show --env=production --no-mask
  %s export --env=development
  %s generate --template

Environment Files:
  .env                    Optional variables for ${VAR} expansion
  base.yaml               Base configuration (required)
  <environment>.yaml      Environment-specific overrides (optional)

`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func getEnvFlag() string {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "--env=") {
			return strings.TrimPrefix(arg, "--env=")
		}
	}
	return "development"
}

func getBoolFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
