package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config armazena todas as configurações do aplicativo GoCapacity.
// Os campos são lidos de variáveis de ambiente (opcionalmente via arquivo .env).
type Config struct {
	// Geral
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `env:"DATABASE_URL,required"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`

	// Cache (Redis)
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	// Segurança (JWT)
	JWTSecretKey string        `env:"JWT_SECRET_KEY,required"`
	TokenExpiry  time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`

	// Rate Limiting
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD" envDefault:"1m"`

	// Consultas de capacidade: maior intervalo aceito por requisição, em dias.
	CapacityMaxRangeDays int `env:"CAPACITY_MAX_RANGE_DAYS" envDefault:"366"`

	// Observabilidade
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// Relatórios de utilização (MongoDB). Sem MONGODB_URI o agendador fica desligado.
	MongoURI           string `env:"MONGODB_URI"`
	MongoDBName        string `env:"MONGODB_DB_NAME" envDefault:"gocapacity"`
	ReportCronSchedule string `env:"REPORT_CRON_SCHEDULE" envDefault:"0 2 * * *"`
	ReportHorizonDays  int    `env:"REPORT_HORIZON_DAYS" envDefault:"30"`
}

// ReportsEnabled indica se o armazenamento de relatórios foi configurado.
func (c *Config) ReportsEnabled() bool {
	return c.MongoURI != ""
}

// LoadConfig carrega um .env (se existir) e faz o parse das variáveis de ambiente.
// Variáveis obrigatórias ausentes resultam em erro, não em encerramento do processo.
func LoadConfig(envFiles ...string) (*Config, error) {
	// .env ausente não é erro: em containers as variáveis vêm do ambiente.
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro de configuração: %w", err)
	}
	if cfg.ReportHorizonDays <= 0 {
		return nil, fmt.Errorf("erro de configuração: REPORT_HORIZON_DAYS deve ser positivo (recebido %d)", cfg.ReportHorizonDays)
	}
	if cfg.CapacityMaxRangeDays <= 0 {
		return nil, fmt.Errorf("erro de configuração: CAPACITY_MAX_RANGE_DAYS deve ser positivo (recebido %d)", cfg.CapacityMaxRangeDays)
	}
	if cfg.ReportHorizonDays > cfg.CapacityMaxRangeDays {
		return nil, fmt.Errorf("erro de configuração: REPORT_HORIZON_DAYS (%d) excede CAPACITY_MAX_RANGE_DAYS (%d)", cfg.ReportHorizonDays, cfg.CapacityMaxRangeDays)
	}
	if cfg.RateLimitMaxRequests <= 0 {
		return nil, fmt.Errorf("erro de configuração: RATE_LIMIT_MAX_REQUESTS deve ser positivo (recebido %d)", cfg.RateLimitMaxRequests)
	}
	return cfg, nil
}
