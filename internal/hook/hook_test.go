package hook

import "testing"

func TestRecorderEmptyBeforeFinished(t *testing.T) {
	r := NewRecorder()
	if path, ok := r.Path(); ok || path != "" {
		t.Errorf("Path() = (%q, %v); want empty before any finished event", path, ok)
	}
}

func TestRecorderCapturesFinished(t *testing.T) {
	r := NewRecorder()
	r.HandleEvent(Event{Status: StatusFinished, Filename: "out.mp4"})
	path, ok := r.Path()
	if !ok || path != "out.mp4" {
		t.Errorf("Path() = (%q, %v); want (out.mp4, true)", path, ok)
	}
}

func TestRecorderIgnoresOtherStatuses(t *testing.T) {
	r := NewRecorder()
	r.HandleEvent(Event{Status: StatusDownloading, Filename: "partial.mp4"})
	r.HandleEvent(Event{Status: StatusError, Filename: "broken.mp4"})
	if _, ok := r.Path(); ok {
		t.Error("Path() set after non-finished events")
	}
}

func TestRecorderLastWriterWins(t *testing.T) {
	r := NewRecorder()
	r.HandleEvent(Event{Status: StatusFinished, Filename: "first.mp4"})
	r.HandleEvent(Event{Status: StatusFinished, Filename: "second.mp4"})
	path, _ := r.Path()
	if path != "second.mp4" {
		t.Errorf("Path() = %q; want second.mp4", path)
	}
}
