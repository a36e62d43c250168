package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// OCR providers accepted by OCR_PROVIDER
const (
	OCRProviderNone        = "none"
	OCRProviderTesseract   = "tesseract"
	OCRProviderRekognition = "rekognition"
	OCRProviderGemini      = "gemini"
)

type Config struct {
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	MaxRequestBodySize int64         `mapstructure:"max_request_body_size"`
	MaxFiles           int           `mapstructure:"max_files"`
	MaxFileSize        int64         `mapstructure:"max_file_size"`
	LogLevel           string        `mapstructure:"log_level"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`

	OCRProvider  string        `mapstructure:"ocr_provider"`
	OCRTimeout   time.Duration `mapstructure:"ocr_timeout"`
	OCRLanguage  string        `mapstructure:"ocr_language"`
	AWSRegion    string        `mapstructure:"aws_region"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("request_timeout", 30*time.Second)
	// ten 10MB images plus multipart overhead
	v.SetDefault("max_request_body_size", 101*1024*1024)
	v.SetDefault("max_files", 10)
	v.SetDefault("max_file_size", 10*1024*1024)
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", []string{"*"})

	v.SetDefault("ocr_provider", OCRProviderNone)
	v.SetDefault("ocr_timeout", 10*time.Second)
	v.SetDefault("ocr_language", "eng")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-1.5-flash")
}

// LoadFromEnv reads defaults, then an optional file named by CONFIG_FILE, then
// environment variables (HOST, PORT, OCR_PROVIDER, ...), and validates the result.
func LoadFromEnv() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file := strings.TrimSpace(os.Getenv("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.OCRProvider = strings.ToLower(strings.TrimSpace(cfg.OCRProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and provider specific settings
func (c *Config) Validate() error {
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("MAX_FILES must be > 0 (got %d)", c.MaxFiles)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be > 0 (got %d)", c.MaxFileSize)
	}
	if c.RequestTimeout <= 0 || c.OCRTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, ocr=%s)", c.RequestTimeout, c.OCRTimeout)
	}

	switch c.OCRProvider {
	case OCRProviderNone, OCRProviderTesseract:
	case OCRProviderRekognition:
		if strings.TrimSpace(c.AWSRegion) == "" {
			return fmt.Errorf("AWS_REGION is required for OCR_PROVIDER=%s", c.OCRProvider)
		}
	case OCRProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for OCR_PROVIDER=%s", c.OCRProvider)
		}
	default:
		return fmt.Errorf("invalid OCR_PROVIDER: %q", c.OCRProvider)
	}
	return nil
}
