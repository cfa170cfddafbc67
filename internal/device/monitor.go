package device

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"cartkeep/internal/logging"
)

// Monitor listens for udev netlink events and reports cartridge insertions.
// It watches for block-device partitions appearing; when a configured device
// node is set, only events for that node are reported.
type Monitor struct {
	logger  *slog.Logger
	handler func(ctx context.Context, device string)
	device  string

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewMonitor creates a cartridge insertion monitor. device may be empty, in
// which case every block partition insertion is reported.
func NewMonitor(device string, logger *slog.Logger, handler func(ctx context.Context, device string)) *Monitor {
	return &Monitor{
		logger:  logging.NewComponentLogger(logger, "device-monitor"),
		handler: handler,
		device:  strings.TrimSpace(device),
	}
}

// Start begins listening for udev netlink events. A failure to open the
// netlink socket is non-fatal; insertion detection simply stays unavailable.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket, cartridge detection unavailable",
			logging.Error(err))
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("device monitor started", logging.String("device", m.device))
	return nil
}

// Stop shuts the monitor down.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("device monitor stopped")
}

// Running reports whether the monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, blockPartitionMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			m.logger.Warn("device monitor error", logging.Error(err))
		}
	}
}

// blockPartitionMatcher matches block partitions being added, which is what
// a cartridge plugged into a reader produces.
func blockPartitionMatcher() netlink.Matcher {
	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"DEVTYPE":   "partition",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" {
		return
	}
	if m.device != "" && devname != m.device {
		m.logger.Debug("ignoring event for non-configured device",
			logging.String("device", devname),
			logging.String("configured_device", m.device))
		return
	}

	m.logger.Info("cartridge partition detected",
		logging.String("device", devname),
		logging.String("action", string(uevent.Action)))

	if m.handler != nil {
		m.handler(ctx, devname)
	}
}

func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
