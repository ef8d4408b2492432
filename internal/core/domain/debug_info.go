package domain

import "time"

// DebugInfo records how long one step of a request took.
type DebugInfo struct {
	Event     string            `json:"event"`
	TimingMs  int64             `json:"timingMs"`
	StartedAt time.Time         `json:"-"`
	Options   map[string]string `json:"options,omitempty"`
}

func StartDebugInfo(event string) DebugInfo {
	return DebugInfo{Event: event, StartedAt: time.Now()}
}

func (d *DebugInfo) Elapse() {
	d.TimingMs = time.Since(d.StartedAt).Milliseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
