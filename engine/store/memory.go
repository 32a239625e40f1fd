// Package store provides Repository implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/paylens/earnings-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	profiles  map[engine.UserID]engine.UserProfile
	positions map[engine.PositionID]engine.Position
	records   map[engine.RecordID]engine.CompensationRecord
}

func NewMemory() *Memory {
	return &Memory{
		profiles:  make(map[engine.UserID]engine.UserProfile),
		positions: make(map[engine.PositionID]engine.Position),
		records:   make(map[engine.RecordID]engine.CompensationRecord),
	}
}

var _ engine.Repository = (*Memory)(nil)

func (m *Memory) SaveProfile(_ context.Context, profile engine.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *Memory) GetProfile(_ context.Context, userID engine.UserID) (*engine.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *Memory) SavePosition(_ context.Context, position engine.Position) error {
	if err := engine.ValidatePosition(position); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[position.ID] = position
	return nil
}

func (m *Memory) GetPosition(_ context.Context, id engine.PositionID) (*engine.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	position, ok := m.positions[id]
	if !ok {
		return nil, engine.ErrPositionNotFound
	}
	return &position, nil
}

func (m *Memory) ListPositions(_ context.Context, userID engine.UserID) ([]engine.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []engine.Position
	for _, p := range m.positions {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

// DeletePosition cascades deletion of the position's records.
func (m *Memory) DeletePosition(_ context.Context, id engine.PositionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.positions[id]; !ok {
		return engine.ErrPositionNotFound
	}
	delete(m.positions, id)
	for recID, rec := range m.records {
		if rec.Position() == id {
			delete(m.records, recID)
		}
	}
	return nil
}

func (m *Memory) SaveRecord(_ context.Context, record engine.CompensationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.positions[record.Position()]; !ok {
		return engine.ErrPositionNotFound
	}
	m.records[record.RecordID()] = record
	return nil
}

func (m *Memory) DeleteRecord(_ context.Context, id engine.RecordID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return engine.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) ListRecordsByPosition(_ context.Context, id engine.PositionID) ([]engine.CompensationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []engine.CompensationRecord
	for _, rec := range m.records {
		if rec.Position() == id {
			result = append(result, rec)
		}
	}
	sortRecords(result)
	return result, nil
}

func (m *Memory) ListRecordsByUser(_ context.Context, userID engine.UserID) ([]engine.CompensationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned := make(map[engine.PositionID]bool)
	for id, p := range m.positions {
		if p.UserID == userID {
			owned[id] = true
		}
	}

	var result []engine.CompensationRecord
	for _, rec := range m.records {
		if owned[rec.Position()] {
			result = append(result, rec)
		}
	}
	sortRecords(result)
	return result, nil
}

// sortRecords orders by record id for deterministic listings; the engine's
// aggregation layer orders by effective date itself.
func sortRecords(records []engine.CompensationRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordID() < records[j].RecordID()
	})
}
