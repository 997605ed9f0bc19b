package session

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"calendar-assistant/internal/model"
	pkgLog "calendar-assistant/pkg/log"
)

// MemoryStore is a sharded in-memory Store.
type MemoryStore struct {
	l            pkgLog.Logger
	shards       []*shard
	historyLimit int
	now          func() time.Time
}

var _ Store = (*MemoryStore)(nil)

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	session *model.ConversationSession
	lock    chan struct{}
	refs    int // holders plus waiters, guarded by shard.mu
}

// NewMemoryStore creates a MemoryStore.
func NewMemoryStore(l pkgLog.Logger, cfg Config) *MemoryStore {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultShards
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	shards := make([]*shard, cfg.Shards)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]*entry)}
	}

	return &MemoryStore{
		l:            l,
		shards:       shards,
		historyLimit: cfg.HistoryLimit,
		now:          cfg.Now,
	}
}

// HistoryLimit returns the per-session turn cap.
func (s *MemoryStore) HistoryLimit() int {
	return s.historyLimit
}

func (s *MemoryStore) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *MemoryStore) Acquire(ctx context.Context, userID string) (*model.ConversationSession, func(), error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil, ErrInvalidUserID
	}

	sh := s.shardFor(userID)

	sh.mu.Lock()
	e, ok := sh.entries[userID]
	if !ok {
		now := s.now()
		e = &entry{
			session: &model.ConversationSession{UserID: userID, CreatedAt: now, LastActivity: now},
			lock:    make(chan struct{}, 1),
		}
		sh.entries[userID] = e
	}
	e.refs++
	sh.mu.Unlock()

	select {
	case e.lock <- struct{}{}:
	case <-ctx.Done():
		sh.mu.Lock()
		e.refs--
		sh.mu.Unlock()
		return nil, nil, fmt.Errorf("acquire session %s: %w", userID, ctx.Err())
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-e.lock
			sh.mu.Lock()
			e.refs--
			sh.mu.Unlock()
		})
	}

	return e.session, release, nil
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, userID string) (model.ConversationSession, error) {
	sess, release, err := s.Acquire(ctx, userID)
	if err != nil {
		return model.ConversationSession{}, err
	}
	defer release()

	return sess.Clone(), nil
}

func (s *MemoryStore) AppendTurn(ctx context.Context, userID string, role model.Role, text string) error {
	sess, release, err := s.Acquire(ctx, userID)
	if err != nil {
		return err
	}
	defer release()

	sess.AppendTurn(model.Turn{Role: role, Text: text, Timestamp: s.now()}, s.historyLimit)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	sess, release, err := s.Acquire(ctx, userID)
	if err != nil {
		return err
	}
	defer release()

	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e := sh.entries[userID]
	if e != nil && e.refs == 1 {
		delete(sh.entries, userID)
		return nil
	}

	// Someone is waiting on this entry; reset it in place so they see a
	// fresh session instead of an orphaned one.
	now := s.now()
	*sess = model.ConversationSession{UserID: userID, CreatedAt: now, LastActivity: now}
	return nil
}

func (s *MemoryStore) Sweep(now time.Time, maxAge time.Duration) int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for userID, e := range sh.entries {
			if e.refs > 0 {
				continue
			}
			if now.Sub(e.session.LastActivity) > maxAge {
				delete(sh.entries, userID)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}
