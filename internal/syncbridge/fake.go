package syncbridge

import (
	"context"
	"sync"

	"github.com/velobg/rental-backend/state"
)

// Fake is a test implementation of Client.
type Fake struct {
	mu sync.Mutex

	Remote    state.AppState
	Uploads   map[string]string // localPath -> remote URL
	PushCount int

	FailPull   bool
	FailPush   bool
	FailUpload bool
}

func NewFake() *Fake {
	return &Fake{Uploads: make(map[string]string)}
}

func (f *Fake) Pull(ctx context.Context) (state.AppState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailPull {
		return state.AppState{}, ErrSyncFailed
	}
	return f.Remote, nil
}

func (f *Fake) Push(ctx context.Context, st state.AppState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailPush {
		return ErrSyncFailed
	}
	f.Remote = st
	f.PushCount++
	return nil
}

// Pushes returns the number of successful pushes.
func (f *Fake) Pushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PushCount
}

func (f *Fake) UploadPhoto(ctx context.Context, localPath, kind string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailUpload {
		return "", ErrSyncFailed
	}
	url := "http://remote.test/uploads/" + kind + "/" + localPath
	f.Uploads[localPath] = url
	return url, nil
}
