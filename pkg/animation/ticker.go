package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker invokes a callback with its elapsed time on every frame while
// active.
//
// Ticker is the single integration point between this module and the host
// event loop: the host calls [StepTickers] once per frame (or per timer
// tick), and every active ticker fires. Nothing here spawns goroutines or
// OS timers, which keeps all mutation on the host's UI thread.
type Ticker struct {
	callback func(elapsed time.Duration)
	active   bool
	start    time.Time
}

// NewTicker creates an inactive ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. The elapsed time passed to the callback is
// measured from this call.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is currently registered.
func (t *Ticker) IsActive() bool {
	return t.active
}

// Elapsed returns the time since the ticker started, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.active {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers. The host loop calls this once
// per frame.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Snapshot so callbacks can start or stop tickers.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	for _, ticker := range tickers {
		if ticker.active && ticker.callback != nil {
			ticker.callback(Now().Sub(ticker.start))
		}
	}
}

// HasActiveTickers reports whether any tickers are registered. Hosts can
// use this to skip frame scheduling when nothing is animating.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
