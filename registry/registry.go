// Package registry keeps the session store: a brief is uploaded, agents
// are configured, the simulation result lands next to them. Sessions live
// in memory; when an archive is attached they are also written through to
// disk and restored on startup.
package registry

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dejavas-ai/arena/core"
)

const archivePrefix = "session:"

// Session is one upload-configure-simulate lifecycle.
type Session struct {
	ID        string            `json:"session_id"`
	Brief     core.Brief        `json:"brief"`
	Config    *core.AgentConfig `json:"agent_config,omitempty"`
	Result    *core.Report      `json:"simulation_result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Archive is the optional write-through persistence backend.
type Archive interface {
	PutObject(key string, obj interface{}) error
	GetByPrefix(prefix string) (map[string][]byte, error)
}

var (
	sessions    = make(map[string]*Session)
	sessionLock sync.RWMutex
	archive     Archive
)

// EnableArchive attaches a persistence backend and restores any sessions
// it already holds. Restored sessions never overwrite live ones.
func EnableArchive(a Archive) {
	sessionLock.Lock()
	defer sessionLock.Unlock()
	archive = a

	stored, err := a.GetByPrefix(archivePrefix)
	if err != nil {
		log.Printf("registry: failed to restore sessions: %v", err)
		return
	}
	restored := 0
	for key, data := range stored {
		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			log.Printf("registry: skipping corrupt archived session %s: %v", key, err)
			continue
		}
		if _, exists := sessions[s.ID]; exists {
			continue
		}
		sessions[s.ID] = &s
		restored++
	}
	if restored > 0 {
		log.Printf("registry: restored %d archived session(s)", restored)
	}
}

// persist is called with sessionLock held.
func persist(s *Session) {
	if archive == nil {
		return
	}
	if err := archive.PutObject(archivePrefix+s.ID, s); err != nil {
		log.Printf("registry: failed to archive session %s: %v", s.ID, err)
	}
}

// CreateSession stores a new session for the brief and returns it.
func CreateSession(brief core.Brief) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		Brief:     brief,
		CreatedAt: time.Now(),
	}
	sessionLock.Lock()
	sessions[session.ID] = session
	persist(session)
	sessionLock.Unlock()
	return session
}

// GetSession looks up a session by ID.
func GetSession(id string) (*Session, bool) {
	sessionLock.RLock()
	defer sessionLock.RUnlock()
	s, ok := sessions[id]
	return s, ok
}

// SaveConfig attaches an agent configuration to the session. It reports
// false when the session does not exist.
func SaveConfig(id string, cfg core.AgentConfig) bool {
	sessionLock.Lock()
	defer sessionLock.Unlock()
	s, ok := sessions[id]
	if !ok {
		return false
	}
	s.Config = &cfg
	persist(s)
	return true
}

// SaveResult attaches a finished report to the session.
func SaveResult(id string, report *core.Report) bool {
	sessionLock.Lock()
	defer sessionLock.Unlock()
	s, ok := sessions[id]
	if !ok {
		return false
	}
	s.Result = report
	persist(s)
	return true
}

// Count returns the number of live sessions.
func Count() int {
	sessionLock.RLock()
	defer sessionLock.RUnlock()
	return len(sessions)
}
