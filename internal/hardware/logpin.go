package hardware

import (
	"sync"

	"wellbeing_station/internal/logger"
)

// LogPin is an output pin that only records and logs level changes.
type LogPin struct {
	name string
	log  *logger.Logger

	mu   sync.Mutex
	high bool
}

// NewLogPin returns a low pin named name.
func NewLogPin(name string, log *logger.Logger) *LogPin {
	return &LogPin{name: name, log: log}
}

// Set records the level and logs transitions at debug.
func (p *LogPin) Set(high bool) error {
	p.mu.Lock()
	changed := p.high != high
	p.high = high
	p.mu.Unlock()

	if changed && p.log != nil {
		p.log.Debugw("pin_level", "pin", p.name, "high", high)
	}
	return nil
}

// High returns the last level set.
func (p *LogPin) High() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}
