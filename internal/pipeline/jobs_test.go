package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/heatsheet/internal/convert"
	"github.com/dgallion1/heatsheet/internal/meet"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("program.pdf", "SV Musterstadt", []byte("data"))
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %q", job.ID)
	}
	if job.ContentHash != ContentHashHex([]byte("data")) {
		t.Errorf("unexpected content hash %q", job.ContentHash)
	}
	if string(job.FileData()) != "data" {
		t.Errorf("expected file data to be kept, got %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusAssembling, "assembling"},
		{StatusWriting, "writing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Done(t *testing.T) {
	done := map[JobStatus]bool{
		StatusQueued:     false,
		StatusExtracting: false,
		StatusAssembling: false,
		StatusWriting:    false,
		StatusCompleted:  true,
		StatusFailed:     true,
		StatusPartial:    true,
	}
	for s, want := range done {
		if s.Done() != want {
			t.Errorf("%s: expected Done()=%v", s, want)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("source unavailable")
	job.AddError("record count mismatch")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "source unavailable" {
		t.Errorf("expected first error %q, got %q", "source unavailable", snap.Progress.Errors[0])
	}
}

func TestJob_SetResult(t *testing.T) {
	res := &convert.Result{
		Competitions: []meet.Competition{
			{Label: "50 m Freistil", Heats: []meet.Heat{{Number: "1"}, {Number: "2"}}},
			{Label: "100 m Brust", Heats: []meet.Heat{{Number: "1"}}},
		},
		Rows:    make([]meet.Row, 4),
		Roster:  map[string]meet.Participant{"A": {}, "B": {}},
		Starts:  5,
		Scanned: 9,
	}
	job := &Job{ID: "result-test", UpdatedAt: time.Now()}
	job.SetResult(res, []byte("csv"))

	snap := job.Snapshot()
	want := Progress{Competitions: 2, Heats: 3, Scanned: 9, Starts: 5, Rows: 4, Swimmers: 2, Errors: []string{}}
	if snap.Progress.Competitions != want.Competitions || snap.Progress.Heats != want.Heats ||
		snap.Progress.Scanned != want.Scanned || snap.Progress.Starts != want.Starts ||
		snap.Progress.Rows != want.Rows || snap.Progress.Swimmers != want.Swimmers {
		t.Errorf("expected %+v, got %+v", want, snap.Progress)
	}
	if job.Result() != res || string(job.CSV()) != "csv" {
		t.Error("expected result and csv to be stored")
	}
}

func TestJob_FileDataReleased(t *testing.T) {
	job := &Job{ID: "data-test"}
	job.SetFileData([]byte("file content here"))
	job.releaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGetDelete(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	if got := store.Get("store-1"); got == nil || got.ID != "store-1" {
		t.Fatalf("expected to get job back, got %v", got)
	}
	if !store.Delete("store-1") {
		t.Error("expected delete to report existing job")
	}
	if store.Get("store-1") != nil {
		t.Error("expected job to be gone")
	}
	if store.Delete("store-1") {
		t.Error("expected second delete to report missing job")
	}
}

func TestJobStore_ListOrdersByID(t *testing.T) {
	store := NewJobStore(time.Hour)
	var ids []string
	for range 3 {
		j := NewJob("program.txt", "", nil)
		ids = append(ids, j.ID)
		store.Put(j)
	}
	list := store.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(list))
	}
	for i, snap := range list {
		if snap.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], snap.ID)
		}
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestNewJobID_Monotonic(t *testing.T) {
	prev := NewJobID()
	for range 1000 {
		id := NewJobID()
		if id <= prev {
			t.Fatalf("expected %s > %s", id, prev)
		}
		if strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(crockford, r) }) >= 0 {
			t.Fatalf("unexpected character in %s", id)
		}
		prev = id
	}
}

func TestEncodeULID_KnownValues(t *testing.T) {
	var zero [16]byte
	if got := encodeULID(zero); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %s", got)
	}
	var max [16]byte
	for i := range max {
		max[i] = 0xff
	}
	if got := encodeULID(max); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected 7ZZZ..., got %s", got)
	}
}
