package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vypay/internal/payments"
	"vypay/internal/proxyclient"
)

var version = "1.0.0"

type options struct {
	proxyURL string
	project  string
	apiKey   string
	timeout  time.Duration
	verbose  bool
}

func (o *options) client() *proxyclient.Client {
	return proxyclient.New(o.proxyURL, o.timeout)
}

func (o *options) credentials() payments.Credentials {
	return payments.Credentials{Project: o.project, APIKey: o.apiKey}
}

// logger writes to stderr so command output on stdout stays clean.
func (o *options) logger() *zap.SugaredLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zapcore.WarnLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), level)
	return zap.New(core).Sugar()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "checkout",
		Short:         "VyPay checkout from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.proxyURL, "proxy", getenv("VYPAY_PROXY_URL", "http://localhost:5000"), "VyPay proxy base URL")
	flags.StringVar(&opts.project, "project", os.Getenv("VYPAY_PROJECT"), "Pakasir project slug (optional when the proxy holds one)")
	flags.StringVar(&opts.apiKey, "api-key", os.Getenv("VYPAY_API_KEY"), "Pakasir API key (optional when the proxy holds one)")
	flags.DurationVar(&opts.timeout, "http-timeout", 30*time.Second, "Timeout for each proxy request")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(methodsCmd(opts))
	rootCmd.AddCommand(payCmd(opts))
	rootCmd.AddCommand(statusCmd(opts))
	rootCmd.AddCommand(simulateCmd(opts))

	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error loading .env file:", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
