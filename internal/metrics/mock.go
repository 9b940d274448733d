package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	uploadRuns           int
	tournamentsProcessed int
	scoringDurations     []float64
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		scoringDurations: make([]float64, 0),
	}
}

func (m *Mock) IncUploadRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadRuns++
}

func (m *Mock) IncTournamentsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsProcessed++
}

func (m *Mock) ObserveScoringDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringDurations = append(m.scoringDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// UploadRuns returns the number of times IncUploadRuns was called.
func (m *Mock) UploadRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadRuns
}

// TournamentsProcessed returns the number of times IncTournamentsProcessed was called.
func (m *Mock) TournamentsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsProcessed
}

// ScoringDurations returns every observed scoring duration.
func (m *Mock) ScoringDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.scoringDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
