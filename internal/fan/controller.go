package fan

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pentahat/pentad/internal/logging"
)

const (
	// defaultTick is the loop cadence; failed hardware writes are retried
	// at this interval.
	defaultTick = time.Second
	// defaultRecompute limits how often the temperature is re-read.
	defaultRecompute = 5 * time.Second
	// defaultDiskPollDelay throttles smartctl, which is slow and wakes
	// sleeping drives.
	defaultDiskPollDelay = 10 * time.Second
)

// Options configures a Controller. ReadCPU is required; ReadDisks is nil
// when disk temperatures do not feed the fan.
type Options struct {
	ReadCPU   func() (float64, error)
	ReadDisks func() (float64, error)

	DiskPollDelay time.Duration
	Recompute     time.Duration
	Tick          time.Duration
}

// Controller owns the fan output and runs the control loop. All interaction
// from other goroutines goes through Toggle and Speed; nothing else is
// shared.
type Controller struct {
	out   Output
	curve Curve
	opts  Options

	toggle chan struct{}

	// Loop-private state.
	enabled      bool
	target       float64
	applied      float64
	lastTemp     float64
	lastCompute  time.Time
	lastDiskPoll time.Time
	diskAvg      float64
	disksBroken  bool

	speedBits atomic.Uint64
}

// New builds a Controller around an opened Output. The fan starts enabled.
func New(out Output, curve Curve, opts Options) *Controller {
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.Recompute <= 0 {
		opts.Recompute = defaultRecompute
	}
	if opts.DiskPollDelay <= 0 {
		opts.DiskPollDelay = defaultDiskPollDelay
	}
	return &Controller{
		out:     out,
		curve:   curve,
		opts:    opts,
		toggle:  make(chan struct{}, 1),
		enabled: true,
		applied: -1, // force the first write
	}
}

// Toggle requests an enable/disable flip. Never blocks: a toggle already
// pending is sufficient.
func (c *Controller) Toggle() {
	select {
	case c.toggle <- struct{}{}:
	default:
	}
}

// Speed returns the duty percentage most recently applied, for display.
func (c *Controller) Speed() float64 {
	return math.Float64frombits(c.speedBits.Load())
}

// Run executes the control loop until ctx is cancelled, then leaves the fan
// at full power so an unattended shutdown never cooks the drives.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.opts.Tick)
	defer ticker.Stop()

	c.step(time.Now())
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return
		case <-c.toggle:
			c.enabled = !c.enabled
			logging.Info("Fan switch toggled", zap.Bool("enabled", c.enabled))
			c.lastCompute = time.Time{} // recompute immediately
			c.step(time.Now())
		case <-ticker.C:
			c.step(time.Now())
		}
	}
}

// step recomputes the target duty if due and pushes it to the hardware when
// it differs from what was last applied successfully.
func (c *Controller) step(now time.Time) {
	if now.Sub(c.lastCompute) >= c.opts.Recompute {
		c.lastCompute = now
		c.target = c.computeTarget(now)
	}

	if c.target == c.applied {
		return
	}
	if err := c.out.Set(c.target); err != nil {
		logging.Warn("Fan write failed, will retry",
			zap.Float64("duty_percent", c.target), zap.Error(err))
		c.applied = -1
		return
	}
	c.applied = c.target
	c.speedBits.Store(math.Float64bits(c.target))
	logging.LogFanUpdate(c.lastTemp, c.target)
}

func (c *Controller) computeTarget(now time.Time) float64 {
	c.lastTemp = c.inputTemp(now)
	if !c.enabled {
		return 0
	}
	return c.curve.Level(c.lastTemp)
}

// inputTemp is the CPU temperature, or the hotter of CPU and disk average
// when disk temperatures feed the fan.
func (c *Controller) inputTemp(now time.Time) float64 {
	cpu, err := c.opts.ReadCPU()
	if err != nil {
		logging.Warn("CPU temperature read failed", zap.Error(err))
		cpu = 0
	}

	if c.opts.ReadDisks == nil || c.disksBroken {
		return cpu
	}
	if now.Sub(c.lastDiskPoll) >= c.opts.DiskPollDelay {
		c.lastDiskPoll = now
		avg, err := c.opts.ReadDisks()
		if err != nil {
			// smartctl missing or failing: disable for the process lifetime.
			logging.Warn("Disk temperatures unavailable, fan uses CPU only", zap.Error(err))
			c.disksBroken = true
			return cpu
		}
		c.diskAvg = avg
	}
	return math.Max(cpu, c.diskAvg)
}

// shutdown applies the safe exit duty and releases the pin.
func (c *Controller) shutdown() {
	if err := c.out.Set(100); err != nil {
		logging.Warn("Failed to set fan to full power on exit", zap.Error(err))
	}
	if err := c.out.Close(); err != nil {
		logging.Warn("Failed to release fan pin", zap.Error(err))
	}
}
