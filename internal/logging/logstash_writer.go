package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	defaultDialTimeout  = 2 * time.Second
	defaultWriteTimeout = time.Second
	defaultBackoff      = 5 * time.Second
)

// Shipper forwards log lines to a Logstash TCP input. Writes never block on a
// dead collector: while the connection is down, lines are dropped and a
// reconnect is attempted only after the backoff window passes. Safe for
// concurrent use, which the standard log package relies on.
type Shipper struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	Backoff      time.Duration

	addr string

	mu       sync.Mutex
	conn     net.Conn
	downTill time.Time
	closed   bool
}

func NewShipper(addr string) (*Shipper, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty logstash address")
	}
	return &Shipper{
		DialTimeout:  defaultDialTimeout,
		WriteTimeout: defaultWriteTimeout,
		Backoff:      defaultBackoff,
		addr:         addr,
	}, nil
}

// Write implements io.Writer. The reported length always matches len(p) so
// log.SetOutput callers never see partial-write errors from a flaky collector.
func (s *Shipper) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := p
	if p[len(p)-1] != '\n' {
		line = append(append(make([]byte, 0, len(p)+1), p...), '\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, io.ErrClosedPipe
	}
	if err := s.dialLocked(); err != nil {
		return len(p), nil
	}

	if s.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}
	if _, err := s.conn.Write(line); err != nil {
		s.dropConnLocked()
	}
	return len(p), nil
}

func (s *Shipper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Shipper) dialLocked() error {
	if s.conn != nil {
		return nil
	}
	if time.Now().Before(s.downTill) {
		return errors.New("logging: collector in backoff")
	}

	conn, err := net.DialTimeout("tcp", s.addr, s.DialTimeout)
	if err != nil {
		s.downTill = time.Now().Add(s.Backoff)
		return err
	}
	s.conn = conn
	s.downTill = time.Time{}
	return nil
}

func (s *Shipper) dropConnLocked() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.downTill = time.Now().Add(s.Backoff)
}
