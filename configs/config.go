package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	AppEnv      string
	Port        string
	AppName     string
	CORSOrigins string

	JWTSecret string
	JWTExpiry time.Duration

	MockLatency time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int

	ReminderSchedule string
	ReminderWindow   time.Duration

	CloudinaryURL string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	LogLevel string
	LogFile  string
}

func (s Settings) IsProduction() bool {
	return s.AppEnv == "production"
}

var (
	loadOnce sync.Once
	v        *viper.Viper
)

func load() *viper.Viper {
	loadOnce.Do(func() {
		// A missing .env is fine; the process environment is read either way.
		_ = godotenv.Load(".env")

		v = viper.New()
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		v.SetDefault("APP_ENV", "development")
		v.SetDefault("PORT", "8080")
		v.SetDefault("APP_NAME", "Tutoring Sessions")
		v.SetDefault("CORS_ORIGINS", "*")
		v.SetDefault("JWT_SECRET", "change-me")
		v.SetDefault("JWT_EXPIRY_HOURS", 72)
		v.SetDefault("MOCK_LATENCY_MS", 300)
		v.SetDefault("RATE_LIMIT_PER_MINUTE", 200)
		v.SetDefault("RATE_LIMIT_BURST", 50)
		v.SetDefault("REMINDER_CRON", "*/5 * * * *")
		v.SetDefault("REMINDER_WINDOW_MINUTES", 60)
		v.SetDefault("LOG_LEVEL", "")
		v.SetDefault("LOG_FILE", "")
	})
	return v
}

// Config returns a single raw setting.
func Config(key string) string {
	return load().GetString(key)
}

func Load() Settings {
	v := load()
	return Settings{
		AppEnv:             v.GetString("APP_ENV"),
		Port:               v.GetString("PORT"),
		AppName:            v.GetString("APP_NAME"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTExpiry:          time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		MockLatency:        time.Duration(v.GetInt("MOCK_LATENCY_MS")) * time.Millisecond,
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		ReminderSchedule:   v.GetString("REMINDER_CRON"),
		ReminderWindow:     time.Duration(v.GetInt("REMINDER_WINDOW_MINUTES")) * time.Minute,
		CloudinaryURL:      v.GetString("CLOUDINARY_URL"),
		BrevoAPIKey:        v.GetString("BREVO_API_KEY"),
		EmailSender:        v.GetString("EMAIL_SENDER"),
		EmailSenderName:    v.GetString("EMAIL_SENDER_NAME"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFile:            v.GetString("LOG_FILE"),
	}
}
