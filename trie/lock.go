package trie

import "sync"

// nodeLock is the per-node upgradeable reader/writer lock described by the
// concurrency protocol: readers take RLock and release it hand-over-hand
// during descent; writers take an upgradeable lock on every node they pass
// through and call TryUpgrade only on the node they must actually mutate.
//
// This realizes the degraded form the protocol allows: an upgradeable lock
// is simply an exclusive lock taken up front, so TryUpgrade always
// succeeds. A future intent-shared realization (a true S/IS/IX/X state
// machine, as in an intention lock) could replace this type without any
// caller needing to change, since the caller only ever observes
// RLock/RLockUpgradeable/Lock/TryUpgrade/Unlock.
type nodeLock struct {
	mu sync.RWMutex
}

// RLock acquires a plain shared lock. Used by pure readers (Find, iterator
// resumption, the serializer).
func (l *nodeLock) RLock() {
	l.mu.RLock()
}

// RUnlock releases a lock taken with RLock.
func (l *nodeLock) RUnlock() {
	l.mu.RUnlock()
}

// RLockUpgradeable acquires a lock that may later be promoted to exclusive
// via TryUpgrade. In the degraded realization this is already exclusive.
func (l *nodeLock) RLockUpgradeable() {
	l.mu.Lock()
}

// TryUpgrade attempts to promote an upgradeable hold into an exclusive
// hold. It reports whether the promotion succeeded. In the degraded
// realization the caller already holds the lock exclusively, so this
// always succeeds; a true intent-shared realization could instead lose the
// race to a concurrent writer, in which case the caller is left holding
// only a plain shared lock and must restart its decision at this node
// rather than rewind to the root.
func (l *nodeLock) TryUpgrade() bool {
	return true
}

// Lock acquires a plain exclusive lock. Used where a writer knows up front
// it will mutate (e.g. during node destruction bookkeeping).
func (l *nodeLock) Lock() {
	l.mu.Lock()
}

// Unlock releases a lock taken with RLockUpgradeable, TryUpgrade, or Lock.
func (l *nodeLock) Unlock() {
	l.mu.Unlock()
}
