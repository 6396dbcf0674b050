package syncengine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"salonsync-backend/services/salonboard"

	"github.com/stretchr/testify/require"
)

func TestPushReservation(t *testing.T) {
	portal := &fakePortal{
		pushResult: salonboard.BookingResult{PortalID: "RSV-9001"},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	record, err := service.PushReservation(ctx, "owner-1", PushRequest{
		LocalRef: "local-42",
		Booking: salonboard.Booking{
			StaffName:    "山田 太郎",
			Start:        start,
			End:          start.Add(time.Hour),
			CustomerName: "佐藤 花子",
		},
	})
	require.NoError(t, err)
	require.Equal(t, PushSynced, record.Status)
	require.Equal(t, "RSV-9001", record.PortalID)
	require.Len(t, portal.pushed, 1)
	require.Equal(t, 1, portal.closeCount())

	status, err := service.PushStatus(ctx, "owner-1", "local-42")
	require.NoError(t, err)
	require.Equal(t, PushSynced, status.Status)
	require.Equal(t, "RSV-9001", status.PortalID)
}

func TestPushReservationFailureRecorded(t *testing.T) {
	portal := &fakePortal{
		pushErr: salonboard.StaffNotFound{Name: "山本 太郎", Closest: "山田 太郎", Similarity: 0.9},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	_, err := service.PushReservation(ctx, "owner-1", PushRequest{
		LocalRef: "local-43",
		Booking: salonboard.Booking{
			StaffName: "山本 太郎",
			Start:     start,
			End:       start.Add(time.Hour),
		},
	})
	var notFound salonboard.StaffNotFound
	require.ErrorAs(t, err, &notFound)

	// the failed attempt is still visible to operators
	status, err := service.PushStatus(ctx, "owner-1", "local-43")
	require.NoError(t, err)
	require.Equal(t, PushFailed, status.Status)
	require.Contains(t, status.Error, "山田 太郎")
}

func TestPushStatusUnknown(t *testing.T) {
	service := setup(t, &fakePortal{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := service.PushStatus(ctx, "owner-1", "never-pushed")
	require.ErrorIs(t, err, PushNotFound)
}

func TestPushReservationRetryOverwrites(t *testing.T) {
	portal := &fakePortal{pushErr: fmt.Errorf("portal session expired")}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	req := PushRequest{
		LocalRef: "local-44",
		Booking: salonboard.Booking{
			StaffName: "山田 太郎",
			Start:     start,
			End:       start.Add(time.Hour),
		},
	}

	_, err := service.PushReservation(ctx, "owner-1", req)
	require.Error(t, err)

	portal.pushErr = nil
	portal.pushResult = salonboard.BookingResult{PortalID: "RSV-9002"}
	record, err := service.PushReservation(ctx, "owner-1", req)
	require.NoError(t, err)
	require.Equal(t, PushSynced, record.Status)

	// the retry replaces the failed record instead of duplicating it
	status, err := service.PushStatus(ctx, "owner-1", "local-44")
	require.NoError(t, err)
	require.Equal(t, PushSynced, status.Status)
	require.Equal(t, "", status.Error)
}
