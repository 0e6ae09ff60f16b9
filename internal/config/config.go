// Package config provides functionality for managing configuration options
// for the server and the console using command-line flags, an optional JSON
// config file, a .env file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddress = "127.0.0.1:3000"
	defaultBaseURL       = "http://localhost:3000"
	defaultLogLevel      = "info"
	defaultEnvFile       = ".env"
)

// ServerOptions holds the configuration values for the API server.
type ServerOptions struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"server_address"`

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string `json:"database_dsn"`

	// TokenSecret signs and verifies session tokens.
	TokenSecret string `json:"token_secret"`

	LogLevel string `json:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// ClientOptions holds the configuration values for the admin console.
type ClientOptions struct {
	// BaseURL is the API root every request path is appended to.
	BaseURL string `json:"url"`

	// CAFile optionally pins the CA used to verify an HTTPS server.
	CAFile string `json:"ca_file"`

	// Timeout bounds a single request. Zero means no limit.
	Timeout time.Duration `json:"-"`

	Upload   UploadOptions `json:"upload"`
	LogLevel string        `json:"log_level"`

	// ShowVersion prints build metadata and exits.
	ShowVersion bool `json:"-"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// UploadOptions describes the Cloudinary account firmware files are
// uploaded to. The field set mirrors api.UploadConfig.
type UploadOptions struct {
	// Endpoint is the API origin, without a trailing slash.
	Endpoint string `json:"endpoint"`
	Account  string `json:"account"`
	Preset   string `json:"preset"`
	APIKey   string `json:"api_key"`
	Source   string `json:"source"`
}

func defaultUploadOptions() UploadOptions {
	return UploadOptions{
		Endpoint: "https://api.cloudinary.com",
		Account:  "xiaolong",
		Preset:   "**",
		Source:   "ml",
	}
}

// ParseServer parses args (without the program name), then applies the
// config file and environment variables on top.
func ParseServer(args []string) (*ServerOptions, error) {
	opts := &ServerOptions{}
	var envFile string

	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.StringVar(&opts.Addr, "a", defaultServerAddress, "run on ip:port server")
	flags.StringVar(&opts.DatabaseDSN, "d", "", "db address")
	flags.StringVar(&opts.TokenSecret, "s", "", "token signing secret")
	flags.StringVar(&opts.LogLevel, "l", defaultLogLevel, "log level")
	flags.StringVar(&opts.Config, "config", "", "path to config file")
	flags.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	flags.StringVar(&envFile, "env", defaultEnvFile, "path to .env file")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	if err := readConfigFile(&opts.Config, opts); err != nil {
		return nil, err
	}

	overrideFromEnv(&opts.Addr, "SERVER_ADDRESS")
	overrideFromEnv(&opts.DatabaseDSN, "DATABASE_DSN")
	overrideFromEnv(&opts.TokenSecret, "TOKEN_SECRET")
	overrideFromEnv(&opts.LogLevel, "LOG_LEVEL")

	if opts.TokenSecret == "" {
		return nil, errors.New("token secret is required (-s or TOKEN_SECRET)")
	}
	return opts, nil
}

// ParseClient parses the console flags in the same way as ParseServer.
func ParseClient(args []string) (*ClientOptions, error) {
	opts := &ClientOptions{Upload: defaultUploadOptions()}
	var envFile string

	flags := flag.NewFlagSet("client", flag.ContinueOnError)
	flags.StringVar(&opts.BaseURL, "url", defaultBaseURL, "server base URL")
	flags.StringVar(&opts.CAFile, "ca", "", "path to CA cert")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "request timeout (0 means none)")
	flags.StringVar(&opts.Upload.Endpoint, "upload-url", opts.Upload.Endpoint, "file upload endpoint")
	flags.StringVar(&opts.Upload.Account, "upload-account", opts.Upload.Account, "file upload account")
	flags.StringVar(&opts.LogLevel, "l", "warn", "log level")
	flags.BoolVar(&opts.ShowVersion, "version", false, "show build version and date")
	flags.StringVar(&opts.Config, "config", "", "path to config file")
	flags.StringVar(&opts.Config, "c", "", "path to config file (shorthand)")
	flags.StringVar(&envFile, "env", defaultEnvFile, "path to .env file")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	if err := readConfigFile(&opts.Config, opts); err != nil {
		return nil, err
	}

	overrideFromEnv(&opts.BaseURL, "FIRM_API_URL")
	overrideFromEnv(&opts.Upload.Preset, "CLOUDINARY_PRESET")
	overrideFromEnv(&opts.Upload.Account, "CLOUDINARY_ACCOUNT")
	overrideFromEnv(&opts.LogLevel, "LOG_LEVEL")
	return opts, nil
}

// loadEnvFile exports the variables of a .env file. Variables that are
// already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error while reading %s: %w", path, err)
	}
	return nil
}

// readConfigFile decodes the JSON file named by *path (or env CONFIG) into
// dst. A missing file is skipped.
func readConfigFile(path *string, dst any) error {
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		*path = configPath
	}
	if *path == "" {
		return nil
	}

	data, err := os.ReadFile(*path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

func overrideFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
