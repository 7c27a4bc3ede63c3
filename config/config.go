package config

type Config struct {
	Server   Server   `yaml:"server" validate:"required"`
	Database Database `yaml:"storage" validate:"required"`
	Auth     Auth     `yaml:"auth" validate:"required"`
}

type Server struct {
	Port       string `yaml:"port" default:":8000" comment:"Server Port" validate:"required"`
	Env        string `yaml:"env" default:"development" comment:"Server Environment" validate:"required"`
	CorsOrigin string `yaml:"cors_origin" default:"http://localhost:5173" comment:"Allowed CORS origin, * for any"`
}

type Database struct {
	Driver      string `yaml:"driver" default:"postgres" comment:"Database driver (postgres or sqlite)" validate:"required,oneof=postgres sqlite"`
	DatabaseURL string `yaml:"database_url" comment:"Database URL (DSN for postgres, file path for sqlite)" validate:"required"`
	RedisURL    string `yaml:"redis_url" comment:"Redis URL, used for token revocation. Leave empty to disable logout revocation"`
}

type Auth struct {
	Secret             string `yaml:"secret" comment:"Token signing secret, overridden by JWT_SECRET" validate:"required"`
	TokenExpiryMinutes int    `yaml:"token_expiry_minutes" default:"1440" comment:"Access token lifetime in minutes" validate:"required,gt=0"`
	BcryptCost         int    `yaml:"bcrypt_cost" comment:"bcrypt cost, 0 uses the library default" validate:"omitempty,min=4,max=31"`
}
