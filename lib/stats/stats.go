package stats

import (
	"sync"
	"time"
)

// Snapshot is the JSON view of the render statistics.
type Snapshot struct {
	Variant   string  `json:"variant"`
	Frames    uint64  `json:"frames"`
	Uptime    float64 `json:"uptime"`
	FPS       uint64  `json:"fps"`
	WsClients int     `json:"ws_clients"`
}

type Stats struct {
	cur Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	mu           sync.Mutex
}

func New(variant string) *Stats {
	s := &Stats{}
	s.cur.Variant = variant
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

// Update is called once per presented frame.
func (s *Stats) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur.Frames++
	s.frameCounter++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.cur.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.WsClients = n
}

// Snapshot returns a copy that is safe to encode while the render loop
// keeps updating s.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.cur
	snap.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
	return snap
}
