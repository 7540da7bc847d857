package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	ERP            ERP            `mapstructure:",squash"`
	Enrichment     Enrichment     `mapstructure:",squash"`
	ReportSnapshot ReportSnapshot `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host" validate:"required"`
	Port           string   `mapstructure:"port" validate:"required"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Migrate  bool   `mapstructure:"database_migrate"`
	Driver   string `mapstructure:"database_driver" validate:"required_if=Enabled true"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url" validate:"required_if=Enabled true"`
	User     string `mapstructure:"database_user"`
}

type ERP struct {
	URL               string        `mapstructure:"erp_url" validate:"required,url"`
	Timeout           time.Duration `mapstructure:"erp_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"erp_requests_per_second" validate:"gte=0"`
	Burst             int           `mapstructure:"erp_burst" validate:"gte=1"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Timezone string `mapstructure:"report_timezone" validate:"required"`
}

type Enrichment struct {
	MaxConcurrency int `mapstructure:"enrichment_max_concurrency" validate:"gte=1,lte=50"`
}

type ReportSnapshot struct {
	CronSchedule string   `mapstructure:"report_snapshot_cron" validate:"required_if=Enabled true"`
	Kinds        []string `mapstructure:"report_snapshot_kinds"`
	LookbackDays int      `mapstructure:"report_snapshot_lookback_days" validate:"gte=0"`
	Token        string   `mapstructure:"report_snapshot_token"`
	Enabled      bool     `mapstructure:"report_snapshot_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_MIGRATE", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/erp?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")

	viper.SetDefault("ERP_URL", "http://localhost:9000/api")
	viper.SetDefault("ERP_TIMEOUT", "30s")
	viper.SetDefault("ERP_REQUESTS_PER_SECOND", 10) // 0 desabilita o limite
	viper.SetDefault("ERP_BURST", 5)

	// Máximo de buscas de detalhe simultâneas por relatório
	viper.SetDefault("ENRICHMENT_MAX_CONCURRENCY", 5)

	viper.SetDefault("REPORT_SNAPSHOT_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("REPORT_SNAPSHOT_KINDS", "delivery-notes,inventory,payments")
	viper.SetDefault("REPORT_SNAPSHOT_LOOKBACK_DAYS", 30)
	viper.SetDefault("REPORT_SNAPSHOT_TOKEN", "")
	viper.SetDefault("REPORT_SNAPSHOT_ENABLED", false)

	viper.SetDefault("REPORT_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.ReportSnapshot.Kinds = cleanList(config.ReportSnapshot.Kinds)
	config.Server.AllowedOrigins = cleanList(config.Server.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica as regras declaradas nas tags validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("configuração inválida: REPORT_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	return nil
}

// Location retorna o fuso usado nas datas de geração dos relatórios
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	return cleaned
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
