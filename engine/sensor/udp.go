package sensor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
)

// maxDatagram bounds one JSON event; real ones are well under 200 bytes.
const maxDatagram = 2048

// UDPSource listens for JSON orientation events, one per datagram. Run logs
// through the logger attached to its context with logger.WithLogger.
type UDPSource struct {
	addr string

	mu        sync.Mutex
	local     net.Addr
	ready     chan struct{}
	readyOnce sync.Once
}

var _ Source = &UDPSource{}

// NewUDPSource creates a source listening on addr, such as ":5555" or "127.0.0.1:0".
//
// Parameters:
//   - addr: UDP listen address
//
// Returns:
//   - *UDPSource: the source, not yet listening
func NewUDPSource(addr string) *UDPSource {
	return &UDPSource{
		addr:  addr,
		ready: make(chan struct{}),
	}
}

// Ready is closed once the socket is first bound.
func (s *UDPSource) Ready() <-chan struct{} {
	return s.ready
}

// LocalAddr returns the bound address, nil before Ready.
func (s *UDPSource) LocalAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// Run may be called again after it returns; each call binds a fresh socket.
func (s *UDPSource) Run(ctx context.Context, handler Handler) error {
	log := logger.FromContext(ctx)

	var lc net.ListenConfig
	conn, err := lc.ListenPacket(ctx, "udp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen for sensor events on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.local = conn.LocalAddr()
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
	log.Info("listening for sensor events", logger.F("addr", conn.LocalAddr().String()))

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer func() {
		if stop() {
			conn.Close()
		}
	}()

	buf := make([]byte, maxDatagram)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("sensor socket read failed: %w", err)
		}

		event, err := DecodeEvent(buf[:n])
		if err != nil {
			log.Debug("dropping sensor datagram", logger.F("from", from.String()), logger.Err(err))
			continue
		}
		handler(event)
	}
}
