package registry

import (
	"encoding/json"
	"testing"

	"github.com/dejavas-ai/arena/core"
)

func testBrief() core.Brief {
	return core.Brief{
		ProductName: "Widget",
		Features:    []core.Feature{{Title: "Sync", Description: "syncs things"}},
	}
}

func resetSessions() {
	sessionLock.Lock()
	sessions = make(map[string]*Session)
	archive = nil
	sessionLock.Unlock()
}

func TestSessionLifecycle(t *testing.T) {
	resetSessions()

	session := CreateSession(testBrief())
	if session.ID == "" {
		t.Fatal("session must get an ID")
	}
	if session.Config != nil || session.Result != nil {
		t.Error("new session should have no config or result")
	}

	got, ok := GetSession(session.ID)
	if !ok || got.Brief.ProductName != "Widget" {
		t.Fatalf("lookup failed for session %s", session.ID)
	}

	cfg := core.AgentConfig{CustomerPercentage: 100}
	if !SaveConfig(session.ID, cfg) {
		t.Fatal("SaveConfig failed for existing session")
	}
	got, _ = GetSession(session.ID)
	if got.Config == nil || got.Config.CustomerPercentage != 100 {
		t.Error("config was not attached")
	}

	report := &core.Report{AdoptionScore: 72}
	if !SaveResult(session.ID, report) {
		t.Fatal("SaveResult failed for existing session")
	}
	got, _ = GetSession(session.ID)
	if got.Result == nil || got.Result.AdoptionScore != 72 {
		t.Error("report was not attached")
	}

	if Count() != 1 {
		t.Errorf("count = %d, want 1", Count())
	}
}

func TestUnknownSession(t *testing.T) {
	resetSessions()

	if _, ok := GetSession("nope"); ok {
		t.Error("lookup of unknown session should fail")
	}
	if SaveConfig("nope", core.AgentConfig{}) {
		t.Error("SaveConfig on unknown session should fail")
	}
	if SaveResult("nope", &core.Report{}) {
		t.Error("SaveResult on unknown session should fail")
	}
}

// fakeArchive records write-throughs in memory.
type fakeArchive struct {
	stored map[string][]byte
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{stored: make(map[string][]byte)}
}

func (f *fakeArchive) PutObject(key string, obj interface{}) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	f.stored[key] = data
	return nil
}

func (f *fakeArchive) GetByPrefix(prefix string) (map[string][]byte, error) {
	out := make(map[string][]byte)
	for k, v := range f.stored {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out[k] = v
		}
	}
	return out, nil
}

func TestArchiveWriteThrough(t *testing.T) {
	resetSessions()
	arch := newFakeArchive()
	EnableArchive(arch)

	session := CreateSession(testBrief())
	if _, ok := arch.stored[archivePrefix+session.ID]; !ok {
		t.Fatal("session was not written through to the archive")
	}

	SaveResult(session.ID, &core.Report{AdoptionScore: 55})
	var restored Session
	if err := json.Unmarshal(arch.stored[archivePrefix+session.ID], &restored); err != nil {
		t.Fatalf("archived session does not decode: %v", err)
	}
	if restored.Result == nil || restored.Result.AdoptionScore != 55 {
		t.Error("archived session is missing the saved result")
	}
}

func TestArchiveRestore(t *testing.T) {
	resetSessions()
	arch := newFakeArchive()
	arch.PutObject(archivePrefix+"old-id", &Session{
		ID:    "old-id",
		Brief: testBrief(),
	})

	EnableArchive(arch)

	got, ok := GetSession("old-id")
	if !ok {
		t.Fatal("archived session was not restored")
	}
	if got.Brief.ProductName != "Widget" {
		t.Errorf("restored brief product = %q", got.Brief.ProductName)
	}
}
