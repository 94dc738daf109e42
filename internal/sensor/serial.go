package sensor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// DefaultBaudRate matches the ADC board firmware.
const DefaultBaudRate = 9600

// SerialSource keeps the latest reading received from a line-oriented ADC
// board. A goroutine owns the port; Latest never blocks on I/O.
type SerialSource struct {
	conn       io.ReadCloser
	resolution int
	maxAge     time.Duration
	now        func() time.Time

	mu     sync.Mutex
	latest Reading
	have   bool
	closed bool

	done chan struct{}
}

// OpenSerial opens the named port and starts reading. Readings older than
// maxAge are reported as unavailable; zero disables the check.
func OpenSerial(name string, baud, resolution int, maxAge time.Duration) (*SerialSource, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	log.Info().Str("port", name).Int("baud", baud).Msg("serial ADC source opened")
	return NewSerialSource(port, resolution, maxAge, time.Now), nil
}

// NewSerialSource starts reading lines from conn.
func NewSerialSource(conn io.ReadCloser, resolution int, maxAge time.Duration, now func() time.Time) *SerialSource {
	s := &SerialSource{
		conn:       conn,
		resolution: resolution,
		maxAge:     maxAge,
		now:        now,
		done:       make(chan struct{}),
	}
	go s.readLines()
	return s
}

// Latest returns the newest reading.
func (s *SerialSource) Latest() (Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.have {
		return Reading{}, false
	}
	if s.maxAge > 0 && s.now().Sub(s.latest.Time) > s.maxAge {
		return s.latest, false
	}
	return s.latest, true
}

// Close stops the reader and closes the port.
func (s *SerialSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.conn.Close()
	<-s.done
	if err != nil {
		return fmt.Errorf("close serial port: %w", err)
	}
	return nil
}

// Done is closed when the reader goroutine exits. It lets tests wait for
// end-of-stream; the daemon only reads Latest.
func (s *SerialSource) Done() <-chan struct{} {
	return s.done
}

func (s *SerialSource) readLines() {
	defer close(s.done)

	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		raw, err := ParseLine(line, s.resolution)
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("skipping malformed ADC line")
			continue
		}

		s.mu.Lock()
		s.latest = Reading{Raw: raw, Time: s.now()}
		s.have = true
		s.mu.Unlock()
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if err := scanner.Err(); err != nil && !closed {
		log.Error().Err(err).Msg("serial read failed")
		return
	}
	if !closed {
		log.Warn().Msg("serial ADC source reached end of stream")
	}
}
