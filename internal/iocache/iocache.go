// Package iocache persists chart view state and run history.
package iocache

import (
	"sync"

	"github.com/huangsam/spendchart/internal/contract"
)

// StoreManager holds the view state store and the run store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	state        contract.StateStore
	runs         contract.RunStore
}

var _ contract.StateManager = &StoreManager{} // Compile-time check

// GetStateStore returns the view state store.
func (mgr *StoreManager) GetStateStore() contract.StateStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.state
}

// GetRunStore returns the run store, or nil when run tracking is disabled.
func (mgr *StoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
