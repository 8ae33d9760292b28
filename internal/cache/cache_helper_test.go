package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T, prefix string) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, prefix), mr
}

type cachedClass struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCacheHelperSetGet(t *testing.T) {
	helper, _ := newTestHelper(t, "class:")
	ctx := context.Background()

	want := cachedClass{ID: 5, Name: "10A1"}
	if err := helper.Set(ctx, "5", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got cachedClass
	if err := helper.Get(ctx, "5", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheHelperGetMissing(t *testing.T) {
	helper, _ := newTestHelper(t, "class:")

	var got cachedClass
	err := helper.Get(context.Background(), "missing", &got)
	if err != ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelperKeyPrefix(t *testing.T) {
	helper, mr := newTestHelper(t, "subject:")
	ctx := context.Background()

	if err := helper.Set(ctx, "7", cachedClass{ID: 7}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists("subject:7") {
		t.Error("expected key subject:7 in redis")
	}
}

func TestCacheHelperDelete(t *testing.T) {
	helper, mr := newTestHelper(t, "class:")
	ctx := context.Background()

	for _, key := range []string{"1", "2", "3"} {
		if err := helper.Set(ctx, key, cachedClass{}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.Delete(ctx, "1", "2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mr.Exists("class:1") || mr.Exists("class:2") {
		t.Error("deleted keys still present")
	}
	if !mr.Exists("class:3") {
		t.Error("untouched key was removed")
	}
}

func TestCacheHelperInvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t, "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "overview:admin", cachedClass{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "overview:teacher:GV001", cachedClass{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Set(ctx, "counts", cachedClass{}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "overview:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}
	if mr.Exists("stats:overview:admin") || mr.Exists("stats:overview:teacher:GV001") {
		t.Error("pattern keys still present")
	}
	if !mr.Exists("stats:counts") {
		t.Error("non-matching key was removed")
	}
}

func TestCacheHelperNilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "class:")
	ctx := context.Background()

	if err := helper.Set(ctx, "5", cachedClass{}, time.Minute); err != nil {
		t.Errorf("Set with nil client should degrade silently, got %v", err)
	}
	var got cachedClass
	if err := helper.Get(ctx, "5", &got); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}
	if err := helper.Delete(ctx, "5"); err != nil {
		t.Errorf("Delete with nil client should be a no-op, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t, "class:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedClass{ID: 9, Name: "11B2"}, nil
	}

	var first cachedClass
	if err := helper.CacheOrExecute(ctx, "9", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if first.Name != "11B2" {
		t.Errorf("got %+v from fetch", first)
	}
	if calls != 1 {
		t.Errorf("expected one fetch call, got %d", calls)
	}

	// The write-back is asynchronous; wait for the key to land before
	// asserting the second read skips the fetch.
	deadline := time.Now().Add(time.Second)
	for {
		ok, err := helper.Exists(ctx, "9")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("cached value never written")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var second cachedClass
	if err := helper.CacheOrExecute(ctx, "9", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cached read, fetch called %d times", calls)
	}
	if second != first {
		t.Errorf("cached value %+v differs from fetched %+v", second, first)
	}
}
