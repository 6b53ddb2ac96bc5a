// Package tlsutil loads the TLS material served by the risk engine's gRPC
// and HTTP listeners.
package tlsutil

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Config names the certificate and key files. TLS is disabled when both are empty.
type Config struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether certificate files were configured.
func (c Config) Enabled() bool {
	return c.CertFile != "" || c.KeyFile != ""
}

// ServerTLSConfig loads the key pair into a TLS 1.2+ server config.
// It returns nil, nil when TLS is disabled.
func ServerTLSConfig(cfg Config) (*tls.Config, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// ServerCredentials returns gRPC transport credentials for cfg, falling back
// to insecure credentials when TLS is disabled.
func ServerCredentials(cfg Config) (credentials.TransportCredentials, error) {
	tlsCfg, err := ServerTLSConfig(cfg)
	if err != nil {
		return nil, err
	}
	if tlsCfg == nil {
		return insecure.NewCredentials(), nil
	}
	return credentials.NewTLS(tlsCfg), nil
}
