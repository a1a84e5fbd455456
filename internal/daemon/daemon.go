package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"periph.io/x/host/v3"

	"github.com/pentahat/pentad/internal/action"
	"github.com/pentahat/pentad/internal/button"
	"github.com/pentahat/pentad/internal/config"
	"github.com/pentahat/pentad/internal/display"
	"github.com/pentahat/pentad/internal/fan"
	"github.com/pentahat/pentad/internal/logging"
	"github.com/pentahat/pentad/internal/sysinfo"
)

// Default pin assignments for the HAT, by periph name.
const (
	DefaultButtonPin = "GPIO17"
	DefaultFanPin    = "GPIO27"
	DefaultResetPin  = "GPIO23"
)

// goodbyeHold is how long the shutdown banner stays on screen.
const goodbyeHold = 2 * time.Second

// Options overrides the default pin assignments, for carrier revisions
// that route the lines differently.
type Options struct {
	ButtonPin string
	FanPin    string
	ResetPin  string
}

func (o *Options) fill() {
	if o.ButtonPin == "" {
		o.ButtonPin = DefaultButtonPin
	}
	if o.FanPin == "" {
		o.FanPin = DefaultFanPin
	}
	if o.ResetPin == "" {
		o.ResetPin = DefaultResetPin
	}
}

// Daemon supervises the fan, button and display loops.
type Daemon struct {
	cfg    *config.Config
	opts   Options
	runner sysinfo.Runner
}

// New builds a Daemon from a loaded configuration.
func New(cfg *config.Config, opts Options) *Daemon {
	opts.fill()
	return &Daemon{
		cfg:    cfg,
		opts:   opts,
		runner: sysinfo.ExecRunner{},
	}
}

// Run starts the loops and blocks until a signal or a reboot/poweroff
// button binding stops them. It returns an error only for startup faults
// the daemon cannot run without.
func (d *Daemon) Run() error {
	bindings, err := action.ParseBindings(d.cfg.Key)
	if err != nil {
		return fmt.Errorf("invalid key bindings: %w", err)
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	// The fan is safety-critical: without it the daemon must not run.
	out, err := fan.NewOutput(d.opts.FanPin)
	if err != nil {
		return fmt.Errorf("failed to open fan pin %s: %w", d.opts.FanPin, err)
	}
	ctrl := fan.New(out, fan.NewCurve(d.cfg.Fan), fan.Options{
		ReadCPU:   sysinfo.CPUTemperature,
		ReadDisks: d.diskTempReader(),
	})

	watcher, err := button.NewWatcher(d.opts.ButtonPin,
		d.cfg.Time.TwiceWindow(), d.cfg.Time.PressWindow())
	if err != nil {
		// Top board absent. Fan control still runs.
		logging.Warn("Button unavailable", zap.Error(err))
		watcher = nil
	}

	screen, err := display.OpenScreen(d.opts.ResetPin, d.cfg.OLED.Rotate)
	if err != nil {
		logging.Warn("Display unavailable", zap.Error(err))
		screen = nil
	}

	var pager *display.Pager
	if screen != nil {
		if err := screen.Welcome(); err != nil {
			logging.Warn("Welcome screen draw failed", zap.Error(err))
		}
		pager = display.NewPager(screen, d.buildPages(ctrl), d.cfg.Slider)
	}

	var advance chan<- struct{}
	if pager != nil {
		advance = pager.Advance()
	}
	terminate := make(chan action.Terminate, 1)
	dispatcher := action.NewDispatcher(bindings, advance, ctrl.Toggle, terminate)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Run(ctx)
	}()
	if watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.Run(ctx)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			dispatcher.Run(watcher.Events())
		}()
	}
	if pager != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pager.Run(ctx)
		}()
	}

	logging.Info("Daemon started",
		zap.String("fan_pin", d.opts.FanPin),
		zap.Bool("button", watcher != nil),
		zap.Bool("display", screen != nil),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var hostAction *action.Terminate
	select {
	case sig := <-sigChan:
		logging.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case t := <-terminate:
		logging.Info("Shutdown requested by button", t.LogField())
		hostAction = &t
	}

	cancel()
	wg.Wait()

	if screen != nil {
		if err := screen.Goodbye(); err == nil {
			time.Sleep(goodbyeHold)
		}
		screen.Clear()
		if err := screen.Close(); err != nil {
			logging.Warn("Failed to close display", zap.Error(err))
		}
	}

	if hostAction != nil {
		name, args := hostAction.HostCommand()
		if _, err := d.runner.Output(name, args...); err != nil {
			logging.Error("Host shutdown command failed", zap.Error(err))
		}
	}

	logging.Info("Daemon stopped")
	return nil
}

// diskTempReader returns the disk temperature average reader, or nil when
// disk temperatures do not feed the fan curve.
func (d *Daemon) diskTempReader() func() (float64, error) {
	if !d.cfg.Fan.TempDisks {
		return nil
	}
	return func() (float64, error) {
		_, avg, err := sysinfo.DiskTemperatures(d.runner)
		return avg, err
	}
}

// buildPages assembles the display cycle and primes the rate counters so
// the first I/O page shows a rate instead of a startup spike.
func (d *Daemon) buildPages(ctrl *fan.Controller) []display.Page {
	interfaces := d.cfg.Network.Interfaces
	if d.cfg.Network.Auto() {
		resolved, err := sysinfo.AutoInterfaces()
		if err != nil {
			logging.Warn("Interface auto-detection failed", zap.Error(err))
			resolved = nil
		}
		interfaces = resolved
	}

	rates := sysinfo.NewRateTracker()
	sysinfo.NetworkRates(rates, interfaces)
	sysinfo.DiskRates(rates, sysinfo.MountDevices(d.cfg.Disk.IOMounts))

	return display.BuildPages(display.Assembly{
		Config:     d.cfg,
		Runner:     d.runner,
		Rates:      rates,
		FanSpeed:   ctrl.Speed,
		Interfaces: interfaces,
	})
}
