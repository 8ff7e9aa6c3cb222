package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"sync"
	"time"

	"resumecrafter/internal/config"
	"resumecrafter/internal/errors"
	"resumecrafter/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CertificateManager manages the server TLS certificate with auto-reload.
// Certificates are always loaded from the configured PEM files.
type CertificateManager struct {
	mu sync.RWMutex

	// Current certificate
	serverCert       *tls.Certificate
	serverCertExpiry time.Time
	lastReloadTime   time.Time

	// Watcher
	fileWatcher *CertWatcher

	// Configuration
	config           *config.TLSConfig
	autoReloadConfig *config.AutoReloadConfig

	// Callbacks and metrics
	reloadCallbacks []ReloadCallback
	logger          *errors.Logger

	// Observability
	observabilityManager *observability.ObservabilityManager

	// Internal metrics tracking
	reloadCount        int64
	reloadSuccessCount int64
	reloadFailureCount int64
	lastReloadSuccess  bool
	lastReloadError    string
}

// ReloadCallback is called when certificates are reloaded
type ReloadCallback func(success bool, err error)

// CertificateMetrics holds metrics about certificate operations
type CertificateMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadSuccess  bool
	LastReloadError    string
}

// NewCertificateManager creates a new certificate manager
func NewCertificateManager(tlsConfig *config.TLSConfig, autoReloadConfig *config.AutoReloadConfig, om *observability.ObservabilityManager, logger *errors.Logger) *CertificateManager {
	return &CertificateManager{
		config:               tlsConfig,
		autoReloadConfig:     autoReloadConfig,
		logger:               logger,
		reloadCallbacks:      make([]ReloadCallback, 0),
		observabilityManager: om,
	}
}

// Start loads the initial certificate and begins watching for changes
func (cm *CertificateManager) Start() error {
	if err := cm.loadCertificates(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	cm.StartExpiryMonitoring()

	return cm.startFileWatcher()
}

// startFileWatcher starts the file watcher if auto-reload is enabled
func (cm *CertificateManager) startFileWatcher() error {
	if cm.autoReloadConfig == nil || !cm.autoReloadConfig.Enabled {
		return nil
	}

	if cm.config.CertFile == "" && cm.config.KeyFile == "" {
		return nil
	}

	watcher, err := NewCertWatcher(
		cm.config.CertFile,
		cm.config.KeyFile,
		cm.autoReloadConfig.DebounceDelay,
		cm.triggerReload,
		cm.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	cm.fileWatcher = watcher
	if err := cm.fileWatcher.Start(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if cm.logger != nil {
		cm.logger.Info("Certificate file watcher started",
			"cert_file", cm.config.CertFile,
			"key_file", cm.config.KeyFile)
	}

	return nil
}

// Stop stops the certificate manager and its watcher
func (cm *CertificateManager) Stop() error {
	if cm.fileWatcher != nil {
		if err := cm.fileWatcher.Stop(); err != nil {
			if cm.logger != nil {
				cm.logger.LogError(err, "Failed to stop file watcher")
			}
			return err
		}
	}
	if cm.logger != nil {
		cm.logger.Info("Certificate manager stopped")
	}
	return nil
}

// GetServerCertificate returns the current server certificate for TLS handshakes
func (cm *CertificateManager) GetServerCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}

	// Check certificate expiry
	if time.Now().After(cm.serverCertExpiry) {
		if cm.logger != nil {
			cm.logger.LogError(fmt.Errorf("server certificate expired"), "Server certificate expired",
				"expiry", cm.serverCertExpiry,
				"server_name", hello.ServerName)
		}
		return nil, fmt.Errorf("server certificate expired")
	}

	return cm.serverCert, nil
}

// ReloadCertificates manually triggers a certificate reload
func (cm *CertificateManager) ReloadCertificates() error {
	return cm.loadCertificates()
}

// AddReloadCallback adds a callback to be called when certificates are reloaded
func (cm *CertificateManager) AddReloadCallback(callback ReloadCallback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.reloadCallbacks = append(cm.reloadCallbacks, callback)
}

// CheckExpiry returns the time until the server certificate expires
func (cm *CertificateManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.serverCertExpiry.IsZero() {
		return 0, fmt.Errorf("no certificates loaded")
	}

	return time.Until(cm.serverCertExpiry), nil
}

// GetMetrics returns certificate management metrics
func (cm *CertificateManager) GetMetrics() *CertificateMetrics {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return &CertificateMetrics{
		ReloadCount:        cm.reloadCount,
		ReloadSuccessCount: cm.reloadSuccessCount,
		ReloadFailureCount: cm.reloadFailureCount,
		LastReloadTime:     cm.lastReloadTime,
		LastReloadSuccess:  cm.lastReloadSuccess,
		LastReloadError:    cm.lastReloadError,
	}
}

// loadCertificates loads the server certificate from the configured files
func (cm *CertificateManager) loadCertificates() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cert, err := tls.LoadX509KeyPair(cm.config.CertFile, cm.config.KeyFile)
	if err != nil {
		return fmt.Errorf("failed to load server cert/key: %w", err)
	}

	if err := cm.parseCertificateExpiry(&cert); err != nil {
		return err
	}

	cm.serverCert = &cert
	cm.lastReloadTime = time.Now()

	// Update metrics and callbacks
	cm.updateReloadMetrics(true, nil)
	cm.callReloadCallbacks(true, nil)

	if cm.logger != nil {
		cm.logger.Info("Certificates reloaded successfully",
			"server_cert_expiry", cm.serverCertExpiry,
			"reload_time", cm.lastReloadTime)
	}

	return nil
}

// parseCertificateExpiry parses the certificate to extract expiry time
func (cm *CertificateManager) parseCertificateExpiry(cert *tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return nil
	}

	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse server certificate: %w", err)
	}
	cm.serverCertExpiry = x509Cert.NotAfter
	return nil
}

// updateReloadMetrics updates the internal metrics for certificate reloads
func (cm *CertificateManager) updateReloadMetrics(success bool, err error) {
	cm.reloadCount++
	if success {
		cm.reloadSuccessCount++
		cm.lastReloadSuccess = true
		cm.lastReloadError = ""
	} else {
		cm.reloadFailureCount++
		cm.lastReloadSuccess = false
		if err != nil {
			cm.lastReloadError = err.Error()
		}
	}

	// Record OpenTelemetry metrics
	cm.recordMetrics(success, err)
}

// callReloadCallbacks calls all registered reload callbacks
func (cm *CertificateManager) callReloadCallbacks(success bool, err error) {
	for _, callback := range cm.reloadCallbacks {
		go callback(success, err)
	}
}

// triggerReload is called by the watcher when certificate files change.
// Failed reloads are retried per the auto-reload configuration; the
// previously loaded certificate keeps serving until a reload succeeds.
func (cm *CertificateManager) triggerReload() {
	if cm.logger != nil {
		cm.logger.Info("Certificate reload triggered by file watcher")
	}

	attempts := 1
	if cm.autoReloadConfig != nil && cm.autoReloadConfig.MaxRetries > 0 {
		attempts += cm.autoReloadConfig.MaxRetries
	}

	var err error
	for attempt := range attempts {
		if attempt > 0 && cm.autoReloadConfig != nil && cm.autoReloadConfig.RetryDelay > 0 {
			time.Sleep(cm.autoReloadConfig.RetryDelay)
		}
		if err = cm.loadCertificates(); err == nil {
			return
		}
		if cm.logger != nil {
			cm.logger.Warn("Certificate reload attempt failed",
				"attempt", attempt+1, "error", err)
		}
	}

	cm.handleReloadError(err)
}

// handleReloadError handles errors that occur during certificate reload
func (cm *CertificateManager) handleReloadError(err error) {
	// Update internal metrics for failure
	cm.mu.Lock()
	cm.reloadCount++
	cm.reloadFailureCount++
	cm.lastReloadSuccess = false
	cm.lastReloadError = err.Error()
	cm.mu.Unlock()

	// Record OpenTelemetry metrics
	cm.recordMetrics(false, err)

	if cm.logger != nil {
		cm.logger.LogError(err, "Failed to reload certificates")
	}

	// Call reload callbacks with error
	cm.mu.RLock()
	callbacks := make([]ReloadCallback, len(cm.reloadCallbacks))
	copy(callbacks, cm.reloadCallbacks)
	cm.mu.RUnlock()

	for _, callback := range callbacks {
		go callback(false, err)
	}
}

// recordMetrics records certificate metrics to OpenTelemetry
func (cm *CertificateManager) recordMetrics(success bool, err error) {
	if cm.observabilityManager == nil {
		return
	}

	metrics := cm.observabilityManager.GetMetrics()
	if metrics == nil {
		return
	}

	ctx := context.Background()

	attrs := []attribute.KeyValue{
		attribute.String("cert_type", "server"),
	}
	if success {
		attrs = append(attrs, attribute.String("status", "success"))
	} else {
		errorMsg := ""
		if err != nil {
			errorMsg = err.Error()
		}
		attrs = append(attrs,
			attribute.String("status", "failure"),
			attribute.String("error", errorMsg))
	}
	metrics.CertReloadCount.Add(ctx, 1, metric.WithAttributes(attrs...))

	// Update certificate expiry time gauge
	cm.updateExpiryMetrics()
}

// updateExpiryMetrics updates the certificate expiry time metrics
func (cm *CertificateManager) updateExpiryMetrics() {
	if cm.observabilityManager == nil {
		return
	}

	metrics := cm.observabilityManager.GetMetrics()
	if metrics == nil {
		return
	}

	if cm.serverCertExpiry.IsZero() {
		return
	}

	secondsToExpiry := time.Until(cm.serverCertExpiry).Seconds()
	metrics.CertExpiryTime.Record(context.Background(), secondsToExpiry,
		metric.WithAttributes(attribute.String("cert_type", "server")))
}

// StartExpiryMonitoring starts a goroutine to periodically update certificate expiry metrics
func (cm *CertificateManager) StartExpiryMonitoring() {
	if cm.observabilityManager == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(1 * time.Minute) // Update every minute
		defer ticker.Stop()

		for range ticker.C {
			cm.mu.RLock()
			cm.updateExpiryMetrics()
			cm.mu.RUnlock()
		}
	}()

	if cm.logger != nil {
		cm.logger.Info("Certificate expiry monitoring started")
	}
}
