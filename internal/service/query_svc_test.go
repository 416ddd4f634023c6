package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/model"
)

// fakeListCache serves one canned payload and records invalidations.
type fakeListCache struct {
	data        []byte
	err         error
	invalidated []string
}

func (f *fakeListCache) GetList(ctx context.Context, key string) ([]byte, error) {
	return f.data, f.err
}

func (f *fakeListCache) Invalidate(ctx context.Context, keys ...string) {
	f.invalidated = append(f.invalidated, keys...)
}

func TestGetCached_Hit(t *testing.T) {
	cache := &fakeListCache{data: []byte(`[{"channel_id":"UC1","title":"A","char_tags":["x"]}]`)}

	got, ok := getCached[[]model.ChannelEntry](context.Background(), cache, ChannelsCacheKey, zerolog.Nop())
	if !ok {
		t.Fatal("expected a cache hit")
	}
	want := []model.ChannelEntry{{ChannelID: "UC1", Title: "A", CharTags: []string{"x"}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %+v, want %+v", got, want)
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("invalidated %v on a clean hit", cache.invalidated)
	}
}

func TestGetCached_Miss(t *testing.T) {
	cache := &fakeListCache{}

	if _, ok := getCached[[]model.ChannelEntry](context.Background(), cache, ChannelsCacheKey, zerolog.Nop()); ok {
		t.Error("expected a miss when nothing is cached")
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("invalidated %v on a miss", cache.invalidated)
	}
}

func TestGetCached_CorruptEntryDropped(t *testing.T) {
	// An entry that no longer unmarshals must be deleted, not left to fail
	// every read until its TTL expires.
	cache := &fakeListCache{data: []byte(`{"not":"a list"`)}

	if _, ok := getCached[[]model.StatsEntry](context.Background(), cache, StatsCacheKey, zerolog.Nop()); ok {
		t.Fatal("expected a miss for a corrupt entry")
	}
	if !reflect.DeepEqual(cache.invalidated, []string{StatsCacheKey}) {
		t.Errorf("invalidated = %v, want [%s]", cache.invalidated, StatsCacheKey)
	}
}
