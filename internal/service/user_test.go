package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/dsp4life2020-woodz/trippintv/internal/testutil"
)

func TestProfile(t *testing.T) {
	f := newFixture(t)
	me := testutil.CreateUser(t, f.repos, "me")
	testutil.CreateVideo(t, f.repos, me.ID, 4, time.Time{})
	testutil.CreateVideo(t, f.repos, me.ID, 2, time.Time{})
	theirs := testutil.CreateVideo(t, f.repos, "someone", 1, time.Time{})
	testutil.CreateTrip(t, f.repos, theirs.ID, me.ID)

	profile, err := f.services.User().Profile(sessionFor(me))
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	want := dto.ProfileStats{VideosUploaded: 2, TripsReceived: 6, VideosTripped: 1}
	if profile.Stats != want {
		t.Errorf("Stats = %+v, want %+v", profile.Stats, want)
	}
	if len(profile.TrippedVideos) != 1 || profile.TrippedVideos[0].ID != theirs.ID {
		t.Errorf("TrippedVideos = %+v", profile.TrippedVideos)
	}
	if profile.User.ID != me.ID {
		t.Errorf("User = %+v", profile.User)
	}
}

func TestProfileWithoutTrips(t *testing.T) {
	f := newFixture(t)
	me := testutil.CreateUser(t, f.repos, "me")
	testutil.CreateVideo(t, f.repos, "someone", 1, time.Time{})

	profile, err := f.services.User().Profile(sessionFor(me))
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if len(profile.TrippedVideos) != 0 || len(profile.Videos) != 0 {
		t.Errorf("Profile() = %+v, want no videos", profile)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	f := newFixture(t)
	if _, err := f.services.User().Profile(context.Background()); !errors.Is(err, dto.ErrUnauthenticated) {
		t.Errorf("Profile() error = %v, want ErrUnauthenticated", err)
	}
	if _, err := f.services.User().Me(context.Background()); !errors.Is(err, dto.ErrUnauthenticated) {
		t.Errorf("Me() error = %v, want ErrUnauthenticated", err)
	}
}
