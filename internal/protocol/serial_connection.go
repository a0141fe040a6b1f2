// internal/protocol/serial_connection.go
package protocol

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"printer-service/internal/config"
)

// SerialConnection is the byte sink for the printer's half-duplex TTL link.
// The device never talks back, so only the write side is wired up. It
// satisfies io.ByteWriter, which is the capability the driver consumes.
type SerialConnection struct {
	config *config.SerialConfig
	port   serial.Port
	logger *zap.Logger
	mutex  sync.RWMutex
	isOpen bool
	stats  Stats
}

// Stats holds counters for the serial link.
type Stats struct {
	BytesWritten int64
	ErrorCount   int64
	LastActivity time.Time
	IsConnected  bool
}

// NewSerialConnection creates a new serial connection
func NewSerialConnection(cfg *config.SerialConfig, logger *zap.Logger) *SerialConnection {
	return &SerialConnection{
		config: cfg,
		logger: logger.With(
			zap.String("protocol", "serial"),
			zap.String("port", cfg.Device),
		),
	}
}

// Open opens the serial connection
func (sc *SerialConnection) Open() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.isOpen {
		return nil
	}

	sc.logger.Info("Opening serial port",
		zap.String("port", sc.config.Device),
		zap.Int("baud_rate", sc.config.BaudRate),
	)

	mode := &serial.Mode{
		BaudRate: sc.config.BaudRate,
		DataBits: sc.config.DataBits,
		StopBits: serial.StopBits(sc.config.StopBits),
	}

	switch sc.config.Parity {
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}

	port, err := serial.Open(sc.config.Device, mode)
	if err != nil {
		sc.logger.Error("Failed to open serial port", zap.Error(err))
		return fmt.Errorf("failed to open serial port: %w", err)
	}

	sc.port = port
	sc.isOpen = true
	sc.stats.IsConnected = true
	sc.stats.LastActivity = time.Now()

	sc.logger.Info("Serial port opened successfully")
	return nil
}

// Close closes the serial connection
func (sc *SerialConnection) Close() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if !sc.isOpen || sc.port == nil {
		return nil
	}

	if err := sc.port.Close(); err != nil {
		sc.logger.Error("Failed to close serial port", zap.Error(err))
		return fmt.Errorf("failed to close serial port: %w", err)
	}

	sc.port = nil
	sc.isOpen = false
	sc.stats.IsConnected = false

	sc.logger.Info("Serial port closed successfully")
	return nil
}

// IsOpen returns whether the connection is open
func (sc *SerialConnection) IsOpen() bool {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.isOpen && sc.port != nil
}

// WriteByte writes one byte to the serial port. The driver paces its own
// transmissions, so every write is a single byte.
func (sc *SerialConnection) WriteByte(b byte) error {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	if !sc.isOpen || sc.port == nil {
		return fmt.Errorf("serial port not open")
	}

	n, err := sc.port.Write([]byte{b})
	if err != nil {
		sc.stats.ErrorCount++
		sc.logger.Error("Serial write failed", zap.Error(err))
		return fmt.Errorf("failed to write to serial port: %w", err)
	}
	if n != 1 {
		sc.stats.ErrorCount++
		return fmt.Errorf("incomplete write: wrote %d of 1 bytes", n)
	}

	sc.stats.BytesWritten++
	sc.stats.LastActivity = time.Now()
	return nil
}

// GetStats returns a snapshot of the link counters.
func (sc *SerialConnection) GetStats() Stats {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.stats
}
