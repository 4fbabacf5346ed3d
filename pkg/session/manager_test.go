package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehive/autostream/pkg/adapters/memory"
	"github.com/servicehive/autostream/pkg/domain"
	"github.com/servicehive/autostream/pkg/session"
)

// slowStore adds latency to provoke races if locking is missing.
type slowStore struct {
	data map[string]*domain.State
	mu   sync.Mutex
}

func (s *slowStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	time.Sleep(10 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.State)
	}
	s.data[sessionID] = state
	return nil
}

func (s *slowStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	time.Sleep(10 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.data[sessionID]; ok {
		return state, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *slowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *slowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_SerializesConcurrentSaves(t *testing.T) {
	manager := session.NewManager(&slowStore{})
	ctx := context.Background()
	id := "race-test"

	require.NoError(t, manager.Save(ctx, id, domain.NewState()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, manager.Save(ctx, id, domain.NewState()))
		}()
	}
	wg.Wait()
}

func TestManager_LoadOrStartIsAtomic(t *testing.T) {
	manager := session.NewManager(&slowStore{})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, state)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, state.SessionID)
	assert.Equal(t, domain.NodeGreeting, state.Step)
}

func TestManager_LoadOrStartReturnsExisting(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	first, err := manager.LoadOrStart(ctx, "existing")
	require.NoError(t, err)
	first.Intent = domain.IntentInquiry
	require.NoError(t, manager.Save(ctx, "existing", first))

	second, err := manager.LoadOrStart(ctx, "existing")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentInquiry, second.Intent)
}

func TestManager_LoadMissingSession(t *testing.T) {
	manager := session.NewManager(memory.NewStore())

	_, err := manager.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
