package network

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"time"
)

type meshSettings struct {
	timeout   time.Duration
	queueSize int
	tlsConfig *tls.Config
	logger    *slog.Logger
}

// MeshOption configures a Mesh.
type MeshOption func(meshSettings) meshSettings

func defaultMeshSettings() meshSettings {
	return meshSettings{
		timeout:   5 * time.Second,
		queueSize: 256,
		logger:    slog.Default(),
	}
}

// WithTimeout bounds handshakes and the shutdown of the mesh.
func WithTimeout(timeout time.Duration) MeshOption {
	return func(s meshSettings) meshSettings {
		s.timeout = timeout
		return s
	}
}

// WithQueueSize sets how many outgoing messages may wait for a slow peer
// before its link is dropped.
func WithQueueSize(n int) MeshOption {
	return func(s meshSettings) meshSettings {
		s.queueSize = n
		return s
	}
}

func WithLogger(logger *slog.Logger) MeshOption {
	return func(s meshSettings) meshSettings {
		s.logger = logger
		return s
	}
}

// WithCertificate serves the mesh over TLS with cert.
func WithCertificate(cert tls.Certificate) MeshOption {
	return func(s meshSettings) meshSettings {
		s.tlsConfig = withTLS(s.tlsConfig)
		s.tlsConfig.Certificates = append(s.tlsConfig.Certificates, cert)
		return s
	}
}

// WithLimitedCAs only trusts peers whose certificate is signed by one of
// certPool, in both directions.
func WithLimitedCAs(certPool *x509.CertPool) MeshOption {
	return func(s meshSettings) meshSettings {
		s.tlsConfig = withTLS(s.tlsConfig)
		s.tlsConfig.RootCAs = certPool
		s.tlsConfig.ClientCAs = certPool
		s.tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		return s
	}
}

func withTLS(c *tls.Config) *tls.Config {
	if c == nil {
		return &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return c.Clone()
}
