package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// InstanceLock prevents two processes from driving the same account at once
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

// NewInstanceLock creates a lock file path derived from the session credential.
// The credential itself never touches the filesystem, only a short hash of it.
func NewInstanceLock(credential string) (*InstanceLock, error) {
	return newInstanceLockInDir(os.TempDir(), credential)
}

func newInstanceLockInDir(baseDir, credential string) (*InstanceLock, error) {
	AssertInvariant(credential != "", "credential cannot be empty")

	lockDir := filepath.Join(baseDir, "selfbot")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create selfbot temp directory: %w", err)
	}

	sum := sha256.Sum256([]byte(credential))
	lockPath := filepath.Join(lockDir, hex.EncodeToString(sum[:6])+".lock")

	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the lock.
// Returns nil if successful, error if the lock is already held or another error occurs
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another selfbot instance is already running for this account")
	}

	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if l.lockFile == nil {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

// GetLockPath returns the path to the lock file
func (l *InstanceLock) GetLockPath() string {
	return l.lockPath
}
