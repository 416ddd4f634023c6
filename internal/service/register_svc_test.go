package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/charatrack/charatrack/internal/model"
	"github.com/charatrack/charatrack/internal/youtube"
)

type fakeSource struct {
	channels map[string]youtube.ChannelMetadata
	videos   map[string]youtube.VideoMetadata
	err      error
}

func (f *fakeSource) ChannelMetadata(_ context.Context, id string) (*youtube.ChannelMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	md, ok := f.channels[id]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return &md, nil
}

func (f *fakeSource) VideoMetadata(_ context.Context, id string) (*youtube.VideoMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	md, ok := f.videos[id]
	if !ok {
		return nil, youtube.ErrNotFound
	}
	return &md, nil
}

type fakeChannelStore struct {
	rows map[string]model.Channel
	err  error
}

func (f *fakeChannelStore) Upsert(_ context.Context, ch *model.Channel) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string]model.Channel)
	}
	f.rows[ch.ChannelID] = *ch
	return nil
}

type fakeVideoStore struct {
	rows map[string]model.Video
	err  error
}

func (f *fakeVideoStore) Upsert(_ context.Context, v *model.Video) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string]model.Video)
	}
	f.rows[v.VideoID] = *v
	return nil
}

func newTestRegisterService(source MetadataSource, chs *fakeChannelStore, vids *fakeVideoStore) *RegisterService {
	cache := NewCacheService("", zerolog.Nop())
	return NewRegisterService(source, chs, vids, cache, zerolog.Nop())
}

func TestRegisterChannels_Success(t *testing.T) {
	source := &fakeSource{channels: map[string]youtube.ChannelMetadata{
		"UC123": {ChannelID: "UC123", Title: "Miko Ch."},
	}}
	store := &fakeChannelStore{}
	svc := newTestRegisterService(source, store, &fakeVideoStore{})

	res := svc.RegisterChannels(context.Background(), [][]string{{"UC123", "miko, vtuber"}})

	if !res.AllSucceeded() || res.Total != 1 {
		t.Fatalf("result = %+v, want 1/1", res)
	}
	got := store.rows["UC123"]
	if got.Title != "Miko Ch." {
		t.Errorf("title = %q, want %q", got.Title, "Miko Ch.")
	}
	if !reflect.DeepEqual(got.CharTags, []string{"miko", "vtuber"}) {
		t.Errorf("tags = %v, want [miko vtuber]", got.CharTags)
	}
}

func TestRegisterChannels_URLFormIdentifier(t *testing.T) {
	source := &fakeSource{channels: map[string]youtube.ChannelMetadata{
		"UC123": {ChannelID: "UC123", Title: "Miko Ch."},
	}}
	store := &fakeChannelStore{}
	svc := newTestRegisterService(source, store, &fakeVideoStore{})

	res := svc.RegisterChannels(context.Background(),
		[][]string{{"https://www.youtube.com/channel/UC123", "miko"}})

	if !res.AllSucceeded() {
		t.Fatalf("result = %+v, want success", res)
	}
	if _, ok := store.rows["UC123"]; !ok {
		t.Errorf("channel not stored under extracted ID, rows = %v", store.rows)
	}
}

func TestRegisterChannels_ReplacesTags(t *testing.T) {
	// Re-registration fully replaces the tag set, no merging.
	source := &fakeSource{channels: map[string]youtube.ChannelMetadata{
		"UC123": {ChannelID: "UC123", Title: "Miko Ch."},
	}}
	store := &fakeChannelStore{}
	svc := newTestRegisterService(source, store, &fakeVideoStore{})

	ctx := context.Background()
	svc.RegisterChannels(ctx, [][]string{{"UC123", "old-tag"}})
	svc.RegisterChannels(ctx, [][]string{{"UC123", "new-a, new-b"}})

	got := store.rows["UC123"].CharTags
	if !reflect.DeepEqual(got, []string{"new-a", "new-b"}) {
		t.Errorf("tags = %v, want [new-a new-b]", got)
	}
}

func TestRegisterChannels_NotFoundIsolatedPerItem(t *testing.T) {
	source := &fakeSource{channels: map[string]youtube.ChannelMetadata{
		"UC1": {ChannelID: "UC1", Title: "One"},
		"UC3": {ChannelID: "UC3", Title: "Three"},
	}}
	store := &fakeChannelStore{}
	svc := newTestRegisterService(source, store, &fakeVideoStore{})

	res := svc.RegisterChannels(context.Background(), [][]string{
		{"UC1", "a"},
		{"UC2", "b"}, // unknown to the API
		{"UC3", "c"},
	})

	if res.Succeeded != 2 || res.Total != 3 {
		t.Fatalf("result = %+v, want 2/3", res)
	}
	if res.AllSucceeded() {
		t.Error("AllSucceeded = true, want false")
	}
	if len(store.rows) != 2 {
		t.Errorf("stored rows = %d, want 2 (siblings unaffected)", len(store.rows))
	}
}

func TestRegisterChannels_PersistenceFailureIsolated(t *testing.T) {
	source := &fakeSource{channels: map[string]youtube.ChannelMetadata{
		"UC1": {ChannelID: "UC1", Title: "One"},
	}}
	store := &fakeChannelStore{err: errors.New("connection reset")}
	svc := newTestRegisterService(source, store, &fakeVideoStore{})

	res := svc.RegisterChannels(context.Background(), [][]string{{"UC1", "a"}})
	if res.Succeeded != 0 || res.Total != 1 {
		t.Errorf("result = %+v, want 0/1", res)
	}
}

func TestRegisterChannels_EmptyIdentifierCountsAsFailure(t *testing.T) {
	svc := newTestRegisterService(&fakeSource{}, &fakeChannelStore{}, &fakeVideoStore{})

	res := svc.RegisterChannels(context.Background(), [][]string{{"   "}})
	if res.Succeeded != 0 || res.Total != 1 {
		t.Errorf("result = %+v, want 0/1", res)
	}
}

func TestRegisterVideos_Success(t *testing.T) {
	source := &fakeSource{videos: map[string]youtube.VideoMetadata{
		"vid1": {VideoID: "vid1", ChannelID: "UC123", Title: "Debut Stream"},
	}}
	store := &fakeVideoStore{}
	svc := newTestRegisterService(source, &fakeChannelStore{}, store)

	res := svc.RegisterVideos(context.Background(), [][]string{{"vid1", "debut"}})

	if !res.AllSucceeded() {
		t.Fatalf("result = %+v, want success", res)
	}
	got := store.rows["vid1"]
	if got.ChannelID != "UC123" {
		t.Errorf("channel_id = %q, want UC123 (from resolved metadata)", got.ChannelID)
	}
	if !reflect.DeepEqual(got.CharTags, []string{"debut"}) {
		t.Errorf("tags = %v, want [debut]", got.CharTags)
	}
}

func TestRegisterVideos_TagsOmitted(t *testing.T) {
	source := &fakeSource{videos: map[string]youtube.VideoMetadata{
		"vid1": {VideoID: "vid1", ChannelID: "UC123", Title: "Debut Stream"},
	}}
	store := &fakeVideoStore{}
	svc := newTestRegisterService(source, &fakeChannelStore{}, store)

	res := svc.RegisterVideos(context.Background(), [][]string{{"vid1"}})

	if !res.AllSucceeded() {
		t.Fatalf("result = %+v, want success", res)
	}
	if got := store.rows["vid1"].CharTags; !reflect.DeepEqual(got, []string{}) {
		t.Errorf("tags = %v, want []", got)
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"solo", []string{"solo"}},
	}
	for _, tc := range cases {
		if got := ParseTags(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
