package display

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pentahat/pentad/internal/config"
	"github.com/pentahat/pentad/internal/logging"
)

// pagerTick is the loop cadence; advance and refresh deadlines are checked
// at this resolution.
const pagerTick = 100 * time.Millisecond

// PagerState is the pure scheduling core of the pager: which page is
// current and when to move or redraw. It is driven by an external clock so
// it can be tested without sleeping.
type PagerState struct {
	pageCount int
	auto      bool
	period    time.Duration
	refresh   time.Duration

	current     int
	lastAdvance time.Time
	lastRender  time.Time
}

// NewPagerState starts at the first page with both deadlines anchored at
// now.
func NewPagerState(pageCount int, slider config.Slider, now time.Time) *PagerState {
	return &PagerState{
		pageCount:   pageCount,
		auto:        slider.Auto,
		period:      slider.Period(),
		refresh:     slider.RefreshPeriod(),
		current:     0,
		lastAdvance: now,
		lastRender:  now,
	}
}

// Current returns the index of the page on screen.
func (s *PagerState) Current() int {
	return s.current
}

// Advance moves to the next page, wrapping, and resets both deadlines so a
// button advance holds the page as long as an automatic one would.
func (s *PagerState) Advance(now time.Time) int {
	s.current = (s.current + 1) % s.pageCount
	s.lastAdvance = now
	s.lastRender = now
	return s.current
}

// Tick evaluates the deadlines. It reports whether the current page should
// be drawn, either because auto mode advanced it or because the refresh
// interval elapsed.
func (s *PagerState) Tick(now time.Time) (page int, render bool) {
	if s.auto && now.Sub(s.lastAdvance) >= s.period {
		return s.Advance(now), true
	}
	if s.refresh > 0 && now.Sub(s.lastRender) >= s.refresh {
		s.lastRender = now
		return s.current, true
	}
	return s.current, false
}

// Pager cycles pages on the screen. Advance commands arrive on a buffered
// channel the dispatcher writes to without blocking.
type Pager struct {
	screen  *Screen
	pages   []Page
	slider  config.Slider
	advance chan struct{}
}

// NewPager builds a Pager over an opened screen and an assembled page set.
func NewPager(screen *Screen, pages []Page, slider config.Slider) *Pager {
	return &Pager{
		screen:  screen,
		pages:   pages,
		slider:  slider,
		advance: make(chan struct{}, 1),
	}
}

// Advance returns the command channel the dispatcher feeds.
func (p *Pager) Advance() chan<- struct{} {
	return p.advance
}

// Run shows the first page immediately, then serves advance commands and
// the auto/refresh deadlines until ctx is cancelled.
func (p *Pager) Run(ctx context.Context) {
	if len(p.pages) == 0 {
		<-ctx.Done()
		return
	}

	state := NewPagerState(len(p.pages), p.slider, time.Now())
	p.show(state.Current())

	ticker := time.NewTicker(pagerTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.advance:
			p.show(state.Advance(time.Now()))
		case now := <-ticker.C:
			if page, render := state.Tick(now); render {
				p.show(page)
			}
		}
	}
}

func (p *Pager) show(index int) {
	if err := p.screen.Show(p.pages[index].Lines()); err != nil {
		logging.Warn("Display draw failed", zap.Int("page", index), zap.Error(err))
	}
}
