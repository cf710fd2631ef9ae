package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/model"
	"github.com/dsp4life2020-woodz/trippintv/internal/repository"
	"github.com/dsp4life2020-woodz/trippintv/internal/testutil"
)

func TestVideoCreateAndGet(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	created := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})

	if created.ID == "" {
		t.Fatal("Create() did not assign an id")
	}

	got, err := repos.Video().GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != created.Title || !got.IsContestEligible || got.TripCount != 0 {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := repos.Video().GetByID("missing"); !errors.Is(err, dto.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestVideoTripCounter(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 1, time.Time{})

	count, err := repos.Video().IncrementTripCount(v.ID)
	if err != nil || count != 2 {
		t.Fatalf("IncrementTripCount() = %d, %v, want 2", count, err)
	}

	for _, want := range []struct {
		count   int
		floored bool
	}{{1, false}, {0, false}, {0, true}} {
		count, floored, err := repos.Video().DecrementTripCount(v.ID)
		if err != nil {
			t.Fatalf("DecrementTripCount() error = %v", err)
		}
		if count != want.count || floored != want.floored {
			t.Errorf("DecrementTripCount() = %d, %v, want %d, %v", count, floored, want.count, want.floored)
		}
	}

	if _, err := repos.Video().IncrementTripCount("missing"); !errors.Is(err, dto.ErrNotFound) {
		t.Errorf("IncrementTripCount(missing) error = %v, want ErrNotFound", err)
	}
	if err := repos.Video().SetTripCount("missing", 3); !errors.Is(err, dto.ErrNotFound) {
		t.Errorf("SetTripCount(missing) error = %v, want ErrNotFound", err)
	}
}

func TestVideoIncrementViews(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})

	for want := 1; want <= 3; want++ {
		got, err := repos.Video().IncrementViews(v.ID)
		if err != nil || got != want {
			t.Fatalf("IncrementViews() = %d, %v, want %d", got, err, want)
		}
	}
}

func TestVideoFilter(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	older := testutil.CreateVideo(t, repos, "alice", 0, base.Add(-48*time.Hour))
	newer := testutil.CreateVideo(t, repos, "bob", 0, base)
	other, err := repos.Video().Create(model.Video{
		Title:     "family",
		Category:  model.CategoryFamilyDrama,
		VideoURL:  "https://storage.example.com/f.mp4",
		UserID:    "alice",
		CreatedAt: base.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	from := base.Add(-24 * time.Hour)
	to := base.Add(time.Hour)

	tests := []struct {
		name   string
		filter repository.VideoFilter
		want   []string
	}{
		{"all newest first", repository.VideoFilter{}, []string{newer.ID, other.ID, older.ID}},
		{"by category", repository.VideoFilter{Category: model.CategoryFamilyDrama}, []string{other.ID}},
		{"by owner", repository.VideoFilter{UserID: "alice"}, []string{other.ID, older.ID}},
		{"by ids", repository.VideoFilter{IDs: []string{older.ID}}, []string{older.ID}},
		{"empty ids", repository.VideoFilter{IDs: []string{}}, []string{}},
		{"created range", repository.VideoFilter{CreatedFrom: &from, CreatedTo: &to}, []string{newer.ID, other.ID}},
		{"eligible only", repository.VideoFilter{EligibleOnly: true}, []string{newer.ID, older.ID}},
		{"limit", repository.VideoFilter{Limit: 1}, []string{newer.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := repos.Video().Filter(tt.filter)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if len(videos) != len(tt.want) {
				t.Fatalf("Filter() returned %d videos, want %d", len(videos), len(tt.want))
			}
			for i, v := range videos {
				if v.ID != tt.want[i] {
					t.Errorf("Filter()[%d] = %s, want %s", i, v.ID, tt.want[i])
				}
			}
		})
	}
}

func TestFindDriftedTripCounts(t *testing.T) {
	_, repos := testutil.NewTestDB(t)

	consistent := testutil.CreateVideo(t, repos, "owner", 1, time.Time{})
	testutil.CreateTrip(t, repos, consistent.ID, "voter")

	inflated := testutil.CreateVideo(t, repos, "owner", 5, time.Time{})
	testutil.CreateTrip(t, repos, inflated.ID, "voter")

	stray := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})
	testutil.CreateTrip(t, repos, stray.ID, "voter")
	testutil.CreateTrip(t, repos, stray.ID, "other")

	drifts, err := repos.Video().FindDriftedTripCounts()
	if err != nil {
		t.Fatalf("FindDriftedTripCounts() error = %v", err)
	}

	got := map[string]repository.TripCountDrift{}
	for _, d := range drifts {
		got[d.VideoID] = d
	}
	if len(got) != 2 {
		t.Fatalf("FindDriftedTripCounts() = %+v, want 2 entries", drifts)
	}
	if d := got[inflated.ID]; d.TripCount != 5 || d.Actual != 1 {
		t.Errorf("inflated drift = %+v", d)
	}
	if d := got[stray.ID]; d.TripCount != 0 || d.Actual != 2 {
		t.Errorf("stray drift = %+v", d)
	}
}
