package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/storefront/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener serves HTTPS from a certificate and key pair on disk. The pair
// is read on every Listen, so a restarted server picks up a renewed
// certificate.
type TLSListener struct {
	certFile string
	keyFile  string
}

func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{certFile: certFile, keyFile: keyFile}
}

func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS key pair: %w", err)
	}

	ln, err := tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener serves unencrypted HTTP.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// NewSecurityLayer picks the TLS listener when HTTPS is enabled and the plain
// one otherwise.
func NewSecurityLayer(enableHTTPS bool, certFile, keyFile string) model.SecurityLayer {
	if enableHTTPS {
		return NewTLSListener(certFile, keyFile)
	}
	return NewPlainListener()
}
