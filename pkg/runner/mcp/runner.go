package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/logger"
	"tableflip.dev/annals/pkg/store"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// ParseTransport validates a transport flag value.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(s)); t {
	case TransportHTTP, TransportStdio:
		return t, nil
	}
	return "", fmt.Errorf("unknown MCP transport %q (want http or stdio)", s)
}

// Runner coordinates MCP server startup.
type Runner struct {
	Session *app.Session
	Name    string
	Version string
	Log     *logger.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("mcp runner requires a session")
	}
	log := r.Log
	if log == nil {
		log = logger.Discard()
	}

	svc := NewService(r.Session)
	srv := newServer(r.Name, r.Version, svc)

	if changes, err := r.Session.Watch(ctx); err != nil {
		log.Warn("not watching store for outside changes", "error", err)
	} else {
		go reloadOnChange(ctx, svc, changes, log)
	}

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func newServer(name, version string, svc *Service) *server.MCPServer {
	if name == "" {
		name = "annals"
	}
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and edit timeline events and regions, and compute their lane layout, via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// reloadOnChange picks up edits made by other processes sharing the store.
func reloadOnChange(ctx context.Context, svc *Service, changes <-chan store.Change, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if err := svc.Reload(ctx); err != nil {
				log.Error("reload after store change failed", "change", c.Type.String(), "error", err)
				continue
			}
			log.Debug("reloaded after store change", "change", c.Type.String())
		}
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *logger.Logger) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	log.Info("serving MCP", "addr", ln.Addr().String(), "path", path)

	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
