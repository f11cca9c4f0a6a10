package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulingConfig controls slot generation for appointment booking.
type SchedulingConfig struct {
	DayStartHour   int           // first bookable hour of a working day
	DayEndHour     int           // exclusive upper bound
	SlotInterval   time.Duration // step between slot starts
	MinLeadTime    time.Duration // minimum gap between "now" and a same-day slot
	HorizonDays    int           // how many days ahead to scan for candidate dates
	CandidateCount int           // how many candidate dates to offer
	SweepInterval  time.Duration // how often past appointments are auto-completed
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: viper.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduling: loadSchedulingConfig(),
	}

	if config.DB.MigrationsDir == "" {
		config.DB.MigrationsDir = "db/migrations"
	}

	return config, nil
}

func loadSchedulingConfig() SchedulingConfig {
	cfg := SchedulingConfig{
		DayStartHour:   9,
		DayEndHour:     17,
		SlotInterval:   30 * time.Minute,
		MinLeadTime:    time.Hour,
		HorizonDays:    30,
		CandidateCount: 14,
		SweepInterval:  10 * time.Minute,
	}

	if v := viper.GetInt("SCHEDULING_DAY_START_HOUR"); v > 0 {
		cfg.DayStartHour = v
	}
	if v := viper.GetInt("SCHEDULING_DAY_END_HOUR"); v > 0 {
		cfg.DayEndHour = v
	}
	if v, err := time.ParseDuration(viper.GetString("SCHEDULING_SLOT_INTERVAL")); err == nil && v > 0 {
		cfg.SlotInterval = v
	}
	if v, err := time.ParseDuration(viper.GetString("SCHEDULING_MIN_LEAD_TIME")); err == nil && v > 0 {
		cfg.MinLeadTime = v
	}
	if v := viper.GetInt("SCHEDULING_HORIZON_DAYS"); v > 0 {
		cfg.HorizonDays = v
	}
	if v := viper.GetInt("SCHEDULING_CANDIDATE_COUNT"); v > 0 {
		cfg.CandidateCount = v
	}
	if v, err := time.ParseDuration(viper.GetString("SCHEDULING_SWEEP_INTERVAL")); err == nil && v > 0 {
		cfg.SweepInterval = v
	}

	return cfg
}
