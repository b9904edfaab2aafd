// Package mediamanager stages local file selections per named media slot and
// commits them as a single multipart partner update.
package mediamanager

import (
	"context"
	"sync"

	"admin-console/internal/backend"
	conerr "admin-console/internal/common/errors"
	"admin-console/internal/common/logger"
	"admin-console/internal/models"
)

// slotState holds one slot's value: a locally staged file path, a committed
// reference URL, or neither.
type slotState struct {
	stagedPath   string
	committedURL string
}

// Manager tracks the media slots of one partner. Commit sends only locally
// staged files; previously committed URLs are never re-sent.
type Manager struct {
	mu        sync.Mutex
	backend   *backend.Client
	log       logger.Logger
	partnerID int64
	slots     map[string]slotState
}

func NewManager(client *backend.Client, log logger.Logger, partnerID int64) *Manager {
	slots := make(map[string]slotState, len(models.MediaSlots))
	for _, slot := range models.MediaSlots {
		slots[slot] = slotState{}
	}
	return &Manager{
		backend:   client,
		log:       log.WithFields(map[string]interface{}{"component": "media-manager", "partnerId": partnerID}),
		partnerID: partnerID,
		slots:     slots,
	}
}

// Seed records the partner's already-committed media references.
func (m *Manager) Seed(partner models.Partner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, slot := range models.MediaSlots {
		if url := partner.MediaURL(slot); url != "" {
			m.slots[slot] = slotState{committedURL: url}
		}
	}
}

// Stage replaces the local selection for one slot.
func (m *Manager) Stage(slot, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.slots[slot]
	if !ok {
		return conerr.NewMediaStageInvalidError(slot)
	}
	state.stagedPath = filePath
	m.slots[slot] = state
	return nil
}

// Clear empties a slot, dropping both the staged selection and any committed
// reference from view.
func (m *Manager) Clear(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slot]; !ok {
		return conerr.NewMediaStageInvalidError(slot)
	}
	m.slots[slot] = slotState{}
	return nil
}

// Staged returns the slots currently holding a local selection.
func (m *Manager) Staged() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	for slot, state := range m.slots {
		if state.stagedPath != "" {
			out[slot] = state.stagedPath
		}
	}
	return out
}

// CommittedURL returns the committed reference for a slot, if any.
func (m *Manager) CommittedURL(slot string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[slot].committedURL
}

// Commit sends one multipart update carrying every staged file. On success
// staged selections are replaced by the URLs the backend returned for the
// updated slots. On failure the staging area is left untouched so the
// operator can retry without re-selecting files. Committing with nothing
// staged is a no-op.
func (m *Manager) Commit(ctx context.Context) error {
	staged := m.Staged()
	if len(staged) == 0 {
		return nil
	}

	urls, err := m.backend.UpdatePartnerMedia(ctx, m.partnerID, staged)
	if err != nil {
		m.log.Error("media commit failed", map[string]interface{}{"slots": len(staged), "error": err.Error()})
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for slot := range staged {
		state := m.slots[slot]
		state.stagedPath = ""
		if url, ok := urls[slot]; ok {
			state.committedURL = url
		}
		m.slots[slot] = state
	}
	m.log.Info("media committed", map[string]interface{}{"slots": len(staged)})
	return nil
}
