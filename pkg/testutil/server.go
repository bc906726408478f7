package testutil

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/solana-instruction-api/pkg/netutil"
)

// Server runs an http.Handler on a free localhost port so tests can exercise
// a real TCP listener.
type Server struct {
	closeFunc sync.Once

	listener   net.Listener
	httpServer *http.Server
	baseURL    string
}

// NewServer binds a listener for handler but does not start serving.
func NewServer(handler http.Handler) (*Server, error) {
	port, err := netutil.GetAvailablePortForAddress("localhost")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find free port")
	}

	address := fmt.Sprintf("localhost:%d", port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start listener")
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		baseURL: "http://" + address,
	}, nil
}

// URL returns the base URL the server is reachable at.
func (s *Server) URL() string {
	return s.baseURL
}

// Serve asynchronously starts the server and blocks until it accepts
// connections. Callers should use stopFunc to release the listener.
func (s *Server) Serve() (stopFunc func(), err error) {
	stopFunc = func() {
		s.closeFunc.Do(func() {
			s.httpServer.Close()
		})
	}

	go func() {
		err := s.httpServer.Serve(s.listener)
		logrus.
			StandardLogger().
			WithField("type", "testutil/server").
			WithError(err).
			Debug("stopped")
	}()

	err = WaitFor(5*time.Second, 50*time.Millisecond, func() bool {
		conn, err := net.DialTimeout("tcp", s.listener.Addr().String(), 100*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	})
	if err != nil {
		stopFunc()
		return nil, errors.Wrap(err, "server never became reachable")
	}

	return stopFunc, nil
}
