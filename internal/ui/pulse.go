package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	pulsePeak     = 1.1
	pulseHalf     = 50 * time.Millisecond
	pulseFrame    = 16 * time.Millisecond
	pulseHandles  = 512
	pulseRestBase = 1.0
)

// pulse is the selection animation of one row: scale rises from 1.0 to 1.1
// over 50ms and returns to 1.0 over the next 50ms. A handle lives as long as
// its row key stays in the pulseSet and is restarted on every selection.
type pulse struct {
	started time.Time
	scale   float64
	active  bool
	seq     int // bumped on restart so frames of an older run are ignored
}

// Start restarts the animation at now and returns the run's sequence number.
func (p *pulse) Start(now time.Time) int {
	p.seq++
	p.started = now
	p.active = true
	p.scale = pulseRestBase
	return p.seq
}

// Advance moves the animation to now and reports whether it is still running.
func (p *pulse) Advance(now time.Time) bool {
	if !p.active {
		return false
	}
	p.scale = pulseScale(now.Sub(p.started))
	if now.Sub(p.started) >= 2*pulseHalf {
		p.active = false
		p.scale = pulseRestBase
	}
	return p.active
}

// Scale is the current scale factor.
func (p *pulse) Scale() float64 {
	if p == nil || p.scale == 0 {
		return pulseRestBase
	}
	return p.scale
}

// Expanded reports whether the row is currently drawn above rest size.
func (p *pulse) Expanded() bool {
	return p.Scale() > pulseRestBase
}

func pulseScale(elapsed time.Duration) float64 {
	switch {
	case elapsed <= 0:
		return pulseRestBase
	case elapsed < pulseHalf:
		return pulseRestBase + (pulsePeak-pulseRestBase)*float64(elapsed)/float64(pulseHalf)
	case elapsed < 2*pulseHalf:
		return pulsePeak - (pulsePeak-pulseRestBase)*float64(elapsed-pulseHalf)/float64(pulseHalf)
	default:
		return pulseRestBase
	}
}

// pulseSet holds the per-row handles keyed by state.RowKey.
type pulseSet struct {
	cache *lru.Cache[string, *pulse]
}

func newPulseSet(size int) *pulseSet {
	cache, err := lru.New[string, *pulse](size)
	if err != nil {
		// only returned for a non-positive size
		cache, _ = lru.New[string, *pulse](pulseHandles)
	}
	return &pulseSet{cache: cache}
}

// handle returns the row's pulse, creating it on first use.
func (s *pulseSet) handle(key string) *pulse {
	if p, ok := s.cache.Get(key); ok {
		return p
	}
	p := &pulse{}
	s.cache.Add(key, p)
	return p
}

// peek returns the row's pulse without creating it or touching recency.
func (s *pulseSet) peek(key string) *pulse {
	p, _ := s.cache.Peek(key)
	return p
}

type pulseFrameMsg struct {
	key string
	seq int
	at  time.Time
}

func pulseFrameCmd(key string, seq int) tea.Cmd {
	return tea.Tick(pulseFrame, func(t time.Time) tea.Msg {
		return pulseFrameMsg{key: key, seq: seq, at: t}
	})
}
