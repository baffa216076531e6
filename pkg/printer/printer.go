package printer

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS data to a receipt printer.
type Printer interface {
	Print(data []byte) error
	// Connected reports whether the device is reachable right now.
	Connected() bool
	// Kind is the configured type: usb, network or none.
	Kind() string
}

// Config selects and addresses a printer.
type Config struct {
	Type    string // "usb", "network" or "none"
	USBPath string // e.g. /dev/usb/lp0
	Address string // e.g. 192.168.1.100:9100
}

// New builds the Printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: PRINTER_USB_PATH is required for usb printers")
		}
		return &devicePrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: PRINTER_ADDRESS is required for network printers")
		}
		return &tcpPrinter{address: cfg.Address, dialTimeout: 5 * time.Second, writeTimeout: 10 * time.Second}, nil
	case "none", "":
		return &Buffer{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}

// devicePrinter writes each job to a character device and closes it again.
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Connected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *devicePrinter) Kind() string { return "usb" }

// tcpPrinter dials a raw port (usually 9100) per job.
type tcpPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func (p *tcpPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *tcpPrinter) Connected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *tcpPrinter) Kind() string { return "network" }

// Buffer keeps the last job in memory. It stands in for hardware when
// PRINTER_TYPE is none.
type Buffer struct {
	mu   sync.Mutex
	last bytes.Buffer
	jobs int
}

func (b *Buffer) Print(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last.Reset()
	b.last.Write(data)
	b.jobs++
	return nil
}

func (b *Buffer) Connected() bool { return false }

func (b *Buffer) Kind() string { return "none" }

// Last returns a copy of the most recent job.
func (b *Buffer) Last() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.last.Bytes()...)
}

// Jobs returns how many jobs were printed.
func (b *Buffer) Jobs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.jobs
}
