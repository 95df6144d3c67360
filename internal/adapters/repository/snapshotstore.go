package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/benchcoach/internal/domain/model"
	"github.com/okian/benchcoach/internal/domain/types"
	"github.com/okian/benchcoach/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// SnapshotStore keeps the latest snapshot behind an atomic pointer. Readers
// never block the writer and never see a partially built state.
type SnapshotStore struct {
	snapshot atomic.Pointer[Snapshot]

	metricsUpdateInterval time.Duration

	mu       sync.Mutex // serializes Publish version checks
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewSnapshotStore constructs a store and starts its metrics updater.
func NewSnapshotStore(ctx context.Context, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Publish stores s as the current snapshot.
func (s *SnapshotStore) Publish(_ context.Context, snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.snapshot.Load(); cur != nil && snap.Version < cur.Version {
		return fmt.Errorf("%w: have %d, got %d", ErrStaleSnapshot, cur.Version, snap.Version)
	}
	s.snapshot.Store(snap)

	metrics.RecordSnapshotPublish(snap.Version)
	updateGameMetrics(snap)
	return nil
}

// Current returns the latest snapshot.
func (s *SnapshotStore) Current(_ context.Context) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Version returns the latest published version.
func (s *SnapshotStore) Version(_ context.Context) uint64 {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.Version
	}
	return 0
}

// Close stops the metrics updater.
func (s *SnapshotStore) Close() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
}

func (s *SnapshotStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if snap := s.snapshot.Load(); snap != nil {
					updateGameMetrics(snap)
				}
			}
		}
	}()
}

func updateGameMetrics(snap *Snapshot) {
	for status, n := range StatusCounts(snap.Game) {
		metrics.UpdatePlayers(status, n)
	}
	metrics.UpdateScore(snap.Game.Score.Us, snap.Game.Score.Them)
	metrics.UpdateClocks(snap.Game.GameClock.Seconds, snap.Game.ShotClock.Seconds)
}

// StatusCounts counts the players of a view by status. Every status is
// present.
func StatusCounts(v types.GameView) map[string]int {
	counts := map[string]int{
		model.StatusBench.String():      0,
		model.StatusPendingIn.String():  0,
		model.StatusOnCourt.String():    0,
		model.StatusPendingOut.String(): 0,
	}
	for _, list := range [][]types.PlayerView{v.OnCourt, v.PendingIn, v.Bench} {
		for _, p := range list {
			counts[p.Status]++
		}
	}
	return counts
}
