package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/calvinlm/Arco-Prototype/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testRegistry(t *testing.T, ttl time.Duration) (*SessionRegistry, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)}
	r := NewSessionRegistry(ttl, SessionDefaults{
		Settings: DefaultSettings(),
		Profile:  models.Profile{Name: "Juan Dela Cruz", Email: "juan.delacruz@email.com"},
		Catalog:  testCatalog(t),
	}, zaptest.NewLogger(t))
	r.now = clock.Now
	return r, clock
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := testRegistry(t, time.Hour)

	sess := r.Create()
	assert.Equal(t, 1, r.Len())
	assert.Zero(t, sess.Cart.ItemCount())
	assert.Equal(t, "1", sess.Room.State().Plan.ID)
	assert.NotEmpty(t, sess.Profile().AvatarURL)

	got, ok := r.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	assert.True(t, r.End(sess.ID))
	assert.False(t, r.End(sess.ID))
	_, ok = r.Get(sess.ID)
	assert.False(t, ok)

	select {
	case <-sess.Done():
	default:
		t.Fatal("ended session should be done")
	}
}

func TestSessionsHaveIndependentCarts(t *testing.T) {
	r, _ := testRegistry(t, time.Hour)
	a, b := r.Create(), r.Create()

	a.Cart.AddItem(product("f1", 899))
	assert.Equal(t, 1, a.Cart.ItemCount())
	assert.Zero(t, b.Cart.ItemCount())
}

func TestSweepEndsIdleSessions(t *testing.T) {
	r, clock := testRegistry(t, time.Hour)
	idle := r.Create()
	active := r.Create()

	clock.Advance(40 * time.Minute)
	_, ok := r.Get(active.ID)
	require.True(t, ok)

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(active.ID)
	assert.True(t, ok)
}

func TestRunStopsWithContext(t *testing.T) {
	r, _ := testRegistry(t, time.Hour)
	sess := r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Zero(t, r.Len())
	<-sess.Done()
}

func TestSessionSettingsAndProfile(t *testing.T) {
	r, _ := testRegistry(t, time.Hour)
	sess := r.Create()
	avatar := sess.Profile().AvatarURL

	updated, err := sess.UpdateSettings(models.SettingsPatch{
		Preferences: &models.PreferencesPatch{Theme: ptr("system")},
	})
	require.NoError(t, err)
	assert.Equal(t, "system", updated.Preferences.Theme)
	assert.Equal(t, updated, sess.Settings())

	_, err = sess.UpdateSettings(models.SettingsPatch{
		Preferences: &models.PreferencesPatch{Theme: ptr("neon")},
	})
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.Equal(t, "system", sess.Settings().Preferences.Theme)

	p, err := sess.UpdateProfile(models.Profile{Name: "Juan Dela Cruz", Email: "juan@email.com", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, avatar, p.AvatarURL)

	p, err = sess.UpdateProfile(models.Profile{Name: "Maria Santos", Email: "maria@email.com"})
	require.NoError(t, err)
	assert.Contains(t, p.AvatarURL, "seed=MS")

	_, err = sess.UpdateProfile(models.Profile{Name: "", Email: "x@y"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Equal(t, "Maria Santos", sess.Profile().Name)
}

func TestGetUnknownSession(t *testing.T) {
	r, _ := testRegistry(t, time.Hour)
	_, ok := r.Get(uuid.New())
	assert.False(t, ok)
}
