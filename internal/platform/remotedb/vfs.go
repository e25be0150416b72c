// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package remotedb

import (
	"strings"
	"sync"

	"github.com/psanford/sqlite3vfs"
)

// vfsName is the registration name handed to SQLite via the DSN's vfs= URI
// parameter.
const vfsName = "archmap_httprange"

// rangeVFS resolves logical database names to their backing pagers.
//
// sqlite3vfs registration is process-global and cannot be undone, so a single
// VFS instance is registered once and individual stores attach and detach
// their pagers under unique names. This keeps independent Store instances
// (and tests) from colliding.
type rangeVFS struct {
	mu     sync.Mutex
	pagers map[string]*Pager
}

var (
	registry     = &rangeVFS{pagers: make(map[string]*Pager)}
	registerOnce sync.Once
	registerErr  error
)

// registerVFS installs the shared VFS into the SQLite runtime exactly once.
func registerVFS() error {
	registerOnce.Do(func() {
		registerErr = sqlite3vfs.RegisterVFS(vfsName, registry)
	})
	return registerErr
}

func (v *rangeVFS) attach(name string, pager *Pager) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pagers[name] = pager
}

func (v *rangeVFS) detach(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.pagers, name)
}

func (v *rangeVFS) lookup(name string) (*Pager, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	pager, ok := v.pagers[name]
	return pager, ok
}

// Open hands SQLite a read-only file backed by the attached pager.
//
// Journal and WAL side files are refused: the store is opened with
// immutable=1, so SQLite should never ask for them, and there is nothing
// sensible to serve if it does.
func (v *rangeVFS) Open(name string, flags sqlite3vfs.OpenFlag) (sqlite3vfs.File, sqlite3vfs.OpenFlag, error) {
	if strings.HasSuffix(name, "-journal") || strings.HasSuffix(name, "-wal") {
		return nil, flags, sqlite3vfs.CantOpenError
	}

	pager, ok := v.lookup(name)
	if !ok {
		return nil, flags, sqlite3vfs.CantOpenError
	}

	return &remoteFile{pager: pager}, flags, nil
}

func (v *rangeVFS) Delete(name string, dirSync bool) error {
	return sqlite3vfs.ReadOnlyError
}

func (v *rangeVFS) Access(name string, flag sqlite3vfs.AccessFlag) (bool, error) {
	if flag == sqlite3vfs.AccessReadWrite {
		return false, nil
	}
	_, ok := v.lookup(name)
	return ok, nil
}

func (v *rangeVFS) FullPathname(name string) string {
	return name
}

// remoteFile adapts a Pager to the sqlite3vfs.File contract.
//
// All mutating operations report a read-only filesystem. Locking is a no-op:
// the dataset is immutable and the store holds at most one connection.
type remoteFile struct {
	pager *Pager
}

func (f *remoteFile) Close() error {
	return nil
}

func (f *remoteFile) ReadAt(p []byte, off int64) (int, error) {
	return f.pager.ReadAt(p, off)
}

func (f *remoteFile) WriteAt(p []byte, off int64) (int, error) {
	return 0, sqlite3vfs.ReadOnlyError
}

func (f *remoteFile) Truncate(size int64) error {
	return sqlite3vfs.ReadOnlyError
}

func (f *remoteFile) Sync(flag sqlite3vfs.SyncType) error {
	return nil
}

func (f *remoteFile) FileSize() (int64, error) {
	return f.pager.Size(), nil
}

func (f *remoteFile) Lock(elock sqlite3vfs.LockType) error {
	return nil
}

func (f *remoteFile) Unlock(elock sqlite3vfs.LockType) error {
	return nil
}

func (f *remoteFile) CheckReservedLock() (bool, error) {
	return false, nil
}

func (f *remoteFile) SectorSize() int64 {
	return 0
}

func (f *remoteFile) DeviceCharacteristics() sqlite3vfs.DeviceCharacteristic {
	return sqlite3vfs.IocapImmutable
}
