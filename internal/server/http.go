package server

import (
	"encoding/json"
	"time"

	"resumecrafter/internal/config"
	crafterErrors "resumecrafter/internal/errors"
)

// OptimizeRequest represents the request body for the optimize endpoint.
// Resume carries the structured resume record as raw JSON.
type OptimizeRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"jobDescription"`
	TargetRole     string          `json:"targetRole"`
	Sections       []string        `json:"sections,omitempty"`
}

// CoverLetterRequest represents the request body for the coverletter endpoint
type CoverLetterRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"jobDescription"`
	Company        string          `json:"company,omitempty"`
}

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	Kind           string `json:"kind"`
	Document       string `json:"document"`
	JobDescription string `json:"jobDescription"`
}

// PrepRequest represents the request body for the prep endpoint
type PrepRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"jobDescription"`
	TargetRole     string          `json:"targetRole"`
}

// CompareRequest represents the request body for the compare endpoint
type CompareRequest struct {
	Original  json.RawMessage `json:"original"`
	Optimized json.RawMessage `json:"optimized"`
}

// RenderRequest represents the request body for the render endpoint.
// Kind selects the document ("resume" or "coverletter"), Format the
// physical backend ("pdf" or "docx"), Variant the style sheet ("full"
// or "plain"). Body and Company only apply to cover letters.
type RenderRequest struct {
	Resume  json.RawMessage `json:"resume"`
	Kind    string          `json:"kind"`
	Format  string          `json:"format"`
	Variant string          `json:"variant,omitempty"`
	Body    string          `json:"body,omitempty"`
	Company string          `json:"company,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *LimiterManager

	// Logger
	Logger *crafterErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *crafterErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *LimiterManager
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
