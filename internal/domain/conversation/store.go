package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dashboard-server/internal/infrastructure/metrics"
	"dashboard-server/internal/utils/idgen"
	"dashboard-server/internal/utils/platformerrors"
)

// Store holds live sessions in process memory, keyed by session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	log      zerolog.Logger
}

// NewStore constructs the session store.
func NewStore(idleTTL time.Duration, log zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		log:      log.With().Str("component", "session-store").Logger(),
	}
}

// Create registers a new session for the given owner.
func (st *Store) Create(ctx context.Context, ownerID string) (*Session, error) {
	id, err := idgen.GenerateSecureID("sess", 12)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate session id", err, "session-create-id-001")
	}

	session := newSession(id, ownerID)

	st.mu.Lock()
	st.sessions[id] = session
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	st.mu.Unlock()

	st.log.Debug().Str("session_id", id).Msg("session created")
	return session, nil
}

// Get retrieves a session owned by the caller.
func (st *Store) Get(ctx context.Context, ownerID, id string) (*Session, error) {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok || session.OwnerID != ownerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"session not found", nil, "session-get-notfound-001")
	}
	return session, nil
}

// ReapIdle removes sessions inactive for longer than the idle TTL and
// returns how many were removed. Sessions with a turn in flight are spared.
func (st *Store) ReapIdle() int {
	now := time.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, session := range st.sessions {
		if session.IdleSince(now) < st.idleTTL {
			continue
		}
		state := session.State()
		if state == StateSubmitting || state == StateSubmittingEdit {
			continue
		}
		delete(st.sessions, id)
		removed++
	}

	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	if removed > 0 {
		st.log.Info().Int("removed", removed).Msg("reaped idle sessions")
	}
	return removed
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// BuildSummaryContent concatenates the session's cached widget contents into
// the pre-formatted text sent to the summarization completion.
func BuildSummaryContent(contents []WidgetContent) string {
	var b strings.Builder
	for i, c := range contents {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.Title)
		b.WriteString(" (")
		b.WriteString(c.Type)
		b.WriteString("): ")
		b.WriteString(c.Content)
	}
	return b.String()
}
