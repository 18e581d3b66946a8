package driver

import "time"

// Stage describes a high-level extraction phase.
type Stage string

const (
	StageParse   Stage = "parse"
	StageExtract Stage = "extract"
	StageWrite   Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is
// empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe
// for concurrent use; the parallel extractor calls OnEvent from worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// ChannelSink forwards events to a channel, typically consumed by the
// terminal UI. The channel must be drained or buffered generously.
type ChannelSink struct {
	Ch chan Event
}

func (c ChannelSink) OnEvent(ev Event) { c.Ch <- ev }
