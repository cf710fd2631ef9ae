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

func TestTripLifecycle(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})

	if _, err := repos.Trip().Find(v.ID, "voter"); !errors.Is(err, dto.ErrNotFound) {
		t.Fatalf("Find() before create error = %v, want ErrNotFound", err)
	}

	trip := testutil.CreateTrip(t, repos, v.ID, "voter")
	found, err := repos.Trip().Find(v.ID, "voter")
	if err != nil || found.ID != trip.ID {
		t.Fatalf("Find() = %+v, %v", found, err)
	}

	if count, _ := repos.Trip().CountByVideo(v.ID); count != 1 {
		t.Errorf("CountByVideo() = %d, want 1", count)
	}

	if _, err := repos.Trip().Create(model.Trip{VideoID: v.ID, UserID: "voter"}); err == nil {
		t.Error("second Create() for the same pair succeeded")
	}

	if err := repos.Trip().Delete(trip); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if count, _ := repos.Trip().CountByVideo(v.ID); count != 0 {
		t.Errorf("CountByVideo() after delete = %d, want 0", count)
	}
}

func TestTripDeleteTwice(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 1, time.Time{})
	trip := testutil.CreateTrip(t, repos, v.ID, "voter")

	err := repos.Transaction(func(tx repository.Repositories) error {
		if err := tx.Trip().Delete(trip); err != nil {
			return err
		}
		return tx.Trip().Delete(trip)
	})
	if !errors.Is(err, dto.ErrConflict) {
		t.Fatalf("second Delete() error = %v, want ErrConflict", err)
	}
	if count, _ := repos.Trip().CountByVideo(v.ID); count != 1 {
		t.Errorf("trips after rollback = %d, want 1", count)
	}
}

func TestTripDuplicateIsConflict(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})
	testutil.CreateTrip(t, repos, v.ID, "voter")

	if _, err := repos.Trip().Create(model.Trip{VideoID: v.ID, UserID: "voter"}); !errors.Is(err, dto.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}
	if count, _ := repos.Trip().CountByVideo(v.ID); count != 1 {
		t.Errorf("trips = %d, want 1", count)
	}
}

func TestTripReferencesVideo(t *testing.T) {
	db, repos := testutil.NewTestDB(t)

	if _, err := repos.Trip().Create(model.Trip{VideoID: "missing", UserID: "voter"}); err == nil {
		t.Error("Create() for a missing video succeeded")
	}

	v := testutil.CreateVideo(t, repos, "owner", 1, time.Time{})
	testutil.CreateTrip(t, repos, v.ID, "voter")
	if err := db.Exec("DELETE FROM videos WHERE id = ?", v.ID).Error; err != nil {
		t.Fatal(err)
	}
	if count, _ := repos.Trip().CountByVideo(v.ID); count != 0 {
		t.Errorf("trips of deleted video = %d, want 0", count)
	}
}

func TestListVideoIDsByUser(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	a := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})
	b := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})
	testutil.CreateTrip(t, repos, a.ID, "voter")
	testutil.CreateTrip(t, repos, b.ID, "voter")
	testutil.CreateTrip(t, repos, b.ID, "someone-else")

	ids, err := repos.Trip().ListVideoIDsByUser("voter")
	if err != nil {
		t.Fatalf("ListVideoIDsByUser() error = %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListVideoIDsByUser() = %v, want 2 ids", ids)
	}

	ids, err = repos.Trip().ListVideoIDsByUser("nobody")
	if err != nil || len(ids) != 0 {
		t.Errorf("ListVideoIDsByUser(nobody) = %v, %v", ids, err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	_, repos := testutil.NewTestDB(t)
	v := testutil.CreateVideo(t, repos, "owner", 0, time.Time{})
	boom := errors.New("boom")

	err := repos.Transaction(func(tx repository.Repositories) error {
		if _, err := tx.Trip().Create(model.Trip{VideoID: v.ID, UserID: "voter"}); err != nil {
			return err
		}
		if _, err := tx.Video().IncrementTripCount(v.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}

	got, _ := repos.Video().GetByID(v.ID)
	if got.TripCount != 0 {
		t.Errorf("trip_count after rollback = %d, want 0", got.TripCount)
	}
	if count, _ := repos.Trip().CountByVideo(v.ID); count != 0 {
		t.Errorf("trips after rollback = %d, want 0", count)
	}
}

func TestContestFindByWeek(t *testing.T) {
	_, repos := testutil.NewTestDB(t)

	if _, err := repos.Contest().FindByWeek(2, 2024); !errors.Is(err, dto.ErrNotFound) {
		t.Fatalf("FindByWeek() error = %v, want ErrNotFound", err)
	}

	winner := "video-1"
	created, err := repos.Contest().Create(model.Contest{WeekNumber: 2, Year: 2024, WinnerVideoID: &winner})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repos.Contest().FindByWeek(2, 2024)
	if err != nil {
		t.Fatalf("FindByWeek() error = %v", err)
	}
	if got.ID != created.ID || got.WinnerVideoID == nil || *got.WinnerVideoID != winner {
		t.Errorf("FindByWeek() = %+v", got)
	}

	if _, err := repos.Contest().Create(model.Contest{WeekNumber: 2, Year: 2024}); err == nil {
		t.Error("duplicate Create() succeeded")
	}
}
