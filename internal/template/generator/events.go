package generator

// Stage is one step of the materialization pipeline.
type Stage string

const (
	StageResolveTarget Stage = "resolve-target"
	StagePreHooks      Stage = "pre-hooks"
	StageTraverse      Stage = "traverse"
	StageDirectories   Stage = "directories"
	StageFiles         Stage = "files"
	StageNotes         Stage = "notes"
	StagePostHooks     Stage = "post-hooks"
)

// EventKind identifies a progress event.
type EventKind int

const (
	// EventStageStarted is emitted when a stage with work to do begins.
	EventStageStarted EventKind = iota
	// EventDirectoryCreated is emitted per created target directory.
	EventDirectoryCreated
	// EventFileWritten is emitted per written target file.
	EventFileWritten
	// EventFileSkipped is emitted per file kept because of the append policy.
	EventFileSkipped
	// EventHookStarted is emitted before a hook command runs.
	EventHookStarted
)

// Event reports progress of a run.
type Event struct {
	Kind  EventKind
	Stage Stage
	// Path is target-relative for entry events and absolute for the
	// resolve-target stage.
	Path string
	// Command is the rendered hook command line.
	Command string
}

// Observer receives progress events. It is called synchronously.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }
