package hook

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Lifecycle statuses reported by downloaders.
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	StatusError       = "error"
)

// Event is a progress notification emitted by a downloader.
type Event struct {
	Status   string
	Filename string
}

// Recorder observes downloader progress events and holds the final output path.
// Each job gets its own recorder; a later finished event overwrites an earlier
// one (last writer wins).
type Recorder struct {
	mu   sync.Mutex
	path string
	set  bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleEvent records the reported filename on a finished event. Other
// statuses are ignored at this layer.
func (r *Recorder) HandleEvent(event Event) {
	if event.Status != StatusFinished {
		return
	}
	r.mu.Lock()
	r.path = event.Filename
	r.set = true
	r.mu.Unlock()
	log.Info().Str("op", "hook/recorder").Msgf("Download finished, output captured: %s", event.Filename)
}

// Path returns the recorded output path without blocking. ok is false until a
// finished event has been observed.
func (r *Recorder) Path() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path, r.set
}
