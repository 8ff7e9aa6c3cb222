package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateTLSMode tests the main TLS mode validation function
func TestValidateTLSMode(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "disabled mode",
			tls: TLSConfig{
				Mode: "disabled",
			},
			expectError: false,
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "server mode missing cert",
			tls: TLSConfig{
				Mode:    "server",
				KeyFile: "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "certificate and key files are required",
		},
		{
			name: "server mode missing key",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
			},
			expectError: true,
			errorMsg:    "certificate and key files are required",
		},
		{
			name: "invalid mode",
			tls: TLSConfig{
				Mode: "invalid",
			},
			expectError: true,
			errorMsg:    "invalid TLS mode: invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSMode(tt.tls)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateTLSVersion tests minimum TLS version validation
func TestValidateTLSVersion(t *testing.T) {
	tests := []struct {
		name        string
		minVersion  string
		expectError bool
	}{
		{"empty defaults to 1.2", "", false},
		{"explicit 1.2", "1.2", false},
		{"explicit 1.3", "1.3", false},
		{"unsupported 1.0", "1.0", true},
		{"garbage", "tls13", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSVersion(TLSConfig{MinVersion: tt.minVersion})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateTLSConfigIntegration exercises the full config-level entry point
func TestValidateTLSConfigIntegration(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			TLS: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.3",
			},
		},
	}
	assert.NoError(t, cfg.ValidateTLSConfig())

	cfg.Server.TLS.MinVersion = "1.1"
	assert.Error(t, cfg.ValidateTLSConfig())
}
