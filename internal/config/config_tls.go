package config

import "fmt"

// ValidateTLSConfig validates the TLS configuration
func (c *Config) ValidateTLSConfig() error {
	tls := c.Server.TLS

	if err := validateTLSMode(tls); err != nil {
		return err
	}

	if err := validateTLSVersion(tls); err != nil {
		return err
	}

	return nil
}

// validateTLSMode validates the TLS mode and associated requirements
func validateTLSMode(tls TLSConfig) error {
	switch tls.Mode {
	case "disabled":
		return nil // No validation needed for disabled mode
	case "server":
		return validateServerModeTLS(tls)
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", tls.Mode)
	}
}

// validateServerModeTLS validates server mode TLS requirements
func validateServerModeTLS(tls TLSConfig) error {
	if tls.CertFile == "" || tls.KeyFile == "" {
		return fmt.Errorf("TLS certificate and key files are required for server mode")
	}
	return nil
}

// validateTLSVersion validates the minimum TLS version setting
func validateTLSVersion(tls TLSConfig) error {
	switch tls.MinVersion {
	case "", "1.2", "1.3":
		return nil // Valid versions (empty defaults to 1.2)
	default:
		return fmt.Errorf("invalid TLS minVersion: %s (must be '1.2' or '1.3')", tls.MinVersion)
	}
}
