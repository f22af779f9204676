package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestPing(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	mr.Close()
	assert.Error(t, c.Ping(ctx))
}

func TestIncrMatchCount(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	n, err := c.IncrMatchCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.IncrMatchCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// counters are per user
	n, err = c.IncrMatchCount(ctx, 8, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, time.Hour, mr.TTL("match:count:7"))
}

func TestIncrMatchCountDoesNotRefreshTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.IncrMatchCount(ctx, 7, time.Hour)
	require.NoError(t, err)

	mr.FastForward(30 * time.Minute)

	_, err = c.IncrMatchCount(ctx, 7, time.Hour)
	require.NoError(t, err)

	// the window stays anchored to the first attempt
	assert.Equal(t, 30*time.Minute, mr.TTL("match:count:7"))
}

func TestIncrMatchCountResetsAfterExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.IncrMatchCount(ctx, 7, time.Hour)
		require.NoError(t, err)
	}

	mr.FastForward(time.Hour + time.Second)

	n, err := c.IncrMatchCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListPageKeyDeterminism(t *testing.T) {
	a := ListPageKey(1, "male", "Jo", "", 12.5, "asc", 10, 0)
	b := ListPageKey(1, "male", "Jo", "", 12.5, "asc", 10, 0)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, ListPageKey(2, "male", "Jo", "", 12.5, "asc", 10, 0))
	assert.NotEqual(t, a, ListPageKey(1, "male", "Jo", "", 12.5, "asc", 10, 10))
	assert.NotEqual(t, a, ListPageKey(1, "male", "Jo", "", 13.0, "asc", 10, 0))
}

func TestListPageRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type page struct {
		Total int      `json:"total"`
		Names []string `json:"names"`
	}

	key := ListPageKey(1, "", "", "", 0, "", 10, 0)
	in := page{Total: 3, Names: []string{"Alice", "Bob", "Carol"}}
	require.NoError(t, c.SetListPage(ctx, key, &in, time.Minute))

	var out page
	hit, err := c.GetListPage(ctx, key, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestGetListPageMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var out map[string]interface{}
	hit, err := c.GetListPage(context.Background(), "users:list:absent", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key := "users:list:tmp"
	require.NoError(t, c.SetListPage(ctx, key, map[string]int{"total": 1}, time.Minute))
	require.NoError(t, c.Delete(ctx, key))

	var out map[string]int
	hit, err := c.GetListPage(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
