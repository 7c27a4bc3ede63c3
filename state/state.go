package state

import (
	"context"
	"os"
	"regexp"
	"strings"
	"time"

	"cadrebook/auth"
	"cadrebook/config"
	"cadrebook/types"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	Pool        *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Context     = context.Background()
	Validator   = validator.New()
	Config      *config.Config
	Tokens      *auth.Codec
	Passwords   auth.Bcrypt
	Revocations auth.Revocations = auth.NopRevocations{}
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func oneOf(options []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(options, fl.Field().String())
	}
}

// SetupValidator registers the custom tags used by request bodies and the config.
func SetupValidator() {
	Validator.RegisterValidation("notblank", validators.NotBlank)
	Validator.RegisterValidation("nospaces", snippets.ValidatorNoSpaces)
	Validator.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	// bcrypt rejects passwords over 72 bytes, max counts runes
	Validator.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= 72
	})
	Validator.RegisterValidation("sex", oneOf(types.SexOptions))
	Validator.RegisterValidation("relstatus", oneOf(types.RelationshipOptions))
}

func openDialector(cfg config.Database) gorm.Dialector {
	switch cfg.Driver {
	case "sqlite":
		dsn := cfg.DatabaseURL
		if !strings.Contains(dsn, "_foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_foreign_keys=1"
			} else {
				dsn += "?_foreign_keys=1"
			}
		}

		return sqlite.Open(dsn)
	default:
		return postgres.Open(cfg.DatabaseURL)
	}
}

func Setup() {
	SetupValidator()

	// A missing .env is fine, the environment may already be set
	godotenv.Load()

	genconfig.GenConfig(config.Config{})

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	cfg, err := os.ReadFile(configFile)
	if err != nil {
		panic("Failed to read config file: " + err.Error())
	}

	err = yaml.Unmarshal(cfg, &Config)
	if err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		Config.Auth.Secret = secret
	}

	err = Validator.Struct(Config)
	if err != nil {
		panic("config validation error: " + err.Error())
	}

	// Initialize Logger
	Logger = snippets.CreateZap()

	// Initalize Gorm connection
	Pool, err = gorm.Open(openDialector(Config.Database), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := Pool.AutoMigrate(types.Models()...); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	Tokens = auth.NewCodec(Config.Auth.Secret, time.Duration(Config.Auth.TokenExpiryMinutes)*time.Minute)
	Passwords = auth.Bcrypt{Cost: Config.Auth.BcryptCost}

	// Redis only backs logout, so it is optional
	if Config.Database.RedisURL == "" {
		Logger.Warn("No redis_url configured, logout will not revoke tokens")
		return
	}

	rOptions, err := redis.ParseURL(Config.Database.RedisURL)
	if err != nil {
		panic("Failed to parse Redis URL: " + err.Error())
	}

	Redis = redis.NewClient(rOptions)
	if err := Redis.Ping(Context).Err(); err != nil {
		panic("Failed to connect to Redis: " + err.Error())
	}

	Revocations = auth.NewRedisRevocations(Redis)
}
