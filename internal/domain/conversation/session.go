// Package conversation holds the in-memory, per-session chat state. Nothing
// in this package is persisted: a session is the server-side equivalent of
// one page load and disappears when it expires.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"dashboard-server/internal/utils/platformerrors"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the session's message log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the single enumerated session state. Modelling the in-flight flag
// and the edit target as one enum makes "submitting while already submitting"
// unrepresentable instead of guarded ad hoc.
type State string

const (
	StateIdle           State = "idle"
	StateSubmitting     State = "submitting"
	StateEditing        State = "editing"
	StateSubmittingEdit State = "submitting_edit"
)

// WidgetContent is the last-known rendered content of a widget, cached only
// to build the multi-widget summary request.
type WidgetContent struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Session is the per-page-load conversation state: ordered message log,
// turn state, current edit target, and the widget content cache.
type Session struct {
	ID      string
	OwnerID string

	mu         sync.Mutex
	state      State
	editTarget string
	messages   []Message
	contents   map[string]WidgetContent
	order      []string
	lastActive time.Time
}

func newSession(id, ownerID string) *Session {
	return &Session{
		ID:         id,
		OwnerID:    ownerID,
		state:      StateIdle,
		contents:   make(map[string]WidgetContent),
		lastActive: time.Now(),
	}
}

// BeginTurn validates the input and moves the session into a submitting
// state, appending the user message. It is the only concurrency guard in the
// system: a second turn while one is outstanding is rejected, not queued.
func (s *Session) BeginTurn(ctx context.Context, input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message must not be empty", nil, "session-turn-empty-001")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting, StateSubmittingEdit:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"a turn is already in flight", nil, "session-turn-inflight-001")
	case StateEditing:
		s.state = StateSubmittingEdit
	default:
		s.state = StateSubmitting
	}

	s.messages = append(s.messages, Message{Role: RoleUser, Content: trimmed})
	s.lastActive = time.Now()
	return nil
}

// EndTurn appends the assistant message (if any) and returns the session to
// a resting state. completedEdit clears the edit target; a failed edit turn
// leaves the target set so the user can retry or cancel.
func (s *Session) EndTurn(message string, completedEdit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message != "" {
		s.messages = append(s.messages, Message{Role: RoleAssistant, Content: message})
	}

	switch s.state {
	case StateSubmittingEdit:
		if completedEdit {
			s.state = StateIdle
			s.editTarget = ""
		} else {
			s.state = StateEditing
		}
	case StateSubmitting:
		s.state = StateIdle
	}
	s.lastActive = time.Now()
}

// StartEdit sets the edit target. Rejected while a turn is in flight.
func (s *Session) StartEdit(ctx context.Context, widgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting, StateSubmittingEdit:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"cannot change edit target while a turn is in flight", nil, "session-edit-inflight-001")
	}

	s.state = StateEditing
	s.editTarget = widgetID
	s.lastActive = time.Now()
	return nil
}

// CancelEdit clears the edit target. Rejected while a turn is in flight.
func (s *Session) CancelEdit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitting, StateSubmittingEdit:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"cannot cancel edit while a turn is in flight", nil, "session-cancel-inflight-001")
	}

	s.state = StateIdle
	s.editTarget = ""
	s.lastActive = time.Now()
	return nil
}

// EditTarget returns the widget id currently being edited, if any.
func (s *Session) EditTarget() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editTarget == "" {
		return "", false
	}
	return s.editTarget, true
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the message log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// RecordContent stores the last-known rendered content for a widget,
// replacing any prior entry with the same id.
func (s *Session) RecordContent(content WidgetContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contents[content.ID]; !exists {
		s.order = append(s.order, content.ID)
	}
	s.contents[content.ID] = content
	s.lastActive = time.Now()
}

// Contents returns the cached widget contents in recording order.
func (s *Session) Contents() []WidgetContent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WidgetContent, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contents[id])
	}
	return out
}

// IdleSince reports how long the session has been inactive.
func (s *Session) IdleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}
