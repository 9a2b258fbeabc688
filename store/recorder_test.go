package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/viewfinder-go/domain/camera"
)

type blockingSink struct {
	mu      sync.Mutex
	gate    chan struct{}
	ids     []string
	failIDs map[string]bool
}

func (s *blockingSink) Record(_ context.Context, art *camera.Artifact) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[art.ID] {
		return errors.New("disk full")
	}
	s.ids = append(s.ids, art.ID)
	return nil
}

func TestRecorder_FlushesOnClose(t *testing.T) {
	j := openTemp(t)
	r := NewRecorder(nil, j, 4)
	for _, id := range []string{"a", "b", "c"} {
		require.True(t, r.Submit(&camera.Artifact{ID: id, URI: "file:///" + id, CapturedAt: time.Now()}))
	}
	r.Close()
	n, err := j.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	sink := &blockingSink{gate: make(chan struct{})}
	r := NewRecorder(nil, sink, 1)
	// first entry is taken by the writer and blocks on the gate
	require.True(t, r.Submit(&camera.Artifact{ID: "1"}))
	require.Eventually(t, func() bool { return len(r.ch) == 0 }, time.Second, time.Millisecond)
	require.True(t, r.Submit(&camera.Artifact{ID: "2"}))
	assert.False(t, r.Submit(&camera.Artifact{ID: "3"}), "queue full")
	close(sink.gate)
	r.Close()
	assert.Equal(t, []string{"1", "2"}, sink.ids)
}

func TestRecorder_ContinuesAfterSinkError(t *testing.T) {
	sink := &blockingSink{failIDs: map[string]bool{"bad": true}}
	r := NewRecorder(nil, sink, 4)
	r.Submit(&camera.Artifact{ID: "bad"})
	r.Submit(&camera.Artifact{ID: "good"})
	r.Close()
	assert.Equal(t, []string{"good"}, sink.ids)
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.False(t, r.Submit(&camera.Artifact{ID: "x"}))
	r.Close()
	r2 := NewRecorder(nil, &blockingSink{}, 1)
	assert.False(t, r2.Submit(nil))
	r2.Close()
	r2.Close()
}
