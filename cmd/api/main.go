package main

import (
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vypay/internal/payments"
	"vypay/internal/ratelimiter"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 60
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		fmt.Printf("Invalid %s, defaulting to %s\n", key, def)
	}
	return def
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := level.Set(lvl); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)
	return zap.New(core).Sugar(), nil
}

func loadConfig() config {
	return config{
		addr:      getenv("ADDR", ":5000"),
		env:       getenv("ENV", "development"),
		apiURL:    getenv("EXTERNAL_URL", "localhost:5000"),
		staticDir: getenv("STATIC_DIR", "./public"),
		pakasir: pakasirConfig{
			baseURL: getenv("PAKASIR_BASE_URL", payments.DefaultPakasirURL),
			project: os.Getenv("PAKASIR_PROJECT"),
			apiKey:  os.Getenv("PAKASIR_API_KEY"),
			timeout: getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}

var version = "1.0.0"

//	@title			VyPay API
//	@description	Transaction proxy in front of the Pakasir payment gateway.

//	@license.name	MIT

// @BasePath	/api
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println("Error loading .env file:", err)
		os.Exit(1)
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.pakasir.apiKey == "" {
		logger.Warnw("PAKASIR_API_KEY not set; callers must send their own credentials")
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		gateway:     payments.NewPakasirAdapter(cfg.pakasir.baseURL, cfg.pakasir.timeout),
		catalog:     payments.DefaultCatalog(),
		fees:        payments.DefaultFeeTable(),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}

	//Metrics collected http://localhost:5000/api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
