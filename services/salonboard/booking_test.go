package salonboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const scheduleScreen = `<html><body>
<select name="stylistId">
<option value="">選択してください</option>
<option value="ST001">○ 山田　太郎</option>
<option value="ST002">田中 美咲</option>
</select>
</body></html>`

func TestResolveStaffID(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleHTML = scheduleScreen
	client := portal.newClient(t, func(o *ClientOptions) {
		o.Owner = "owner-resolve"
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	// the roster decorates the name and uses a full-width space; the
	// plain form must still resolve
	id, err := client.ResolveStaffID(ctx, "山田 太郎")
	require.NoError(t, err)
	require.Equal(t, "ST001", id)

	id, err = client.ResolveStaffID(ctx, "田中 美咲")
	require.NoError(t, err)
	require.Equal(t, "ST002", id)
}

func TestResolveStaffIDNotFound(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleHTML = scheduleScreen
	client := portal.newClient(t, func(o *ClientOptions) {
		o.Owner = "owner-miss"
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, err := client.ResolveStaffID(ctx, "山本 太郎")
	var notFound StaffNotFound
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "山本 太郎", notFound.Name)
	// the error carries the nearest roster entry so the operator can
	// spot a typo
	require.Equal(t, "○ 山田　太郎", notFound.Closest)
	require.Greater(t, notFound.Similarity, 0.5)
}

func TestPushReservation(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleHTML = scheduleScreen
	client := portal.newClient(t, func(o *ClientOptions) {
		o.Owner = "owner-push"
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	result, err := client.PushReservation(ctx, Booking{
		StaffName:    "山田 太郎",
		Start:        start,
		End:          start.Add(time.Minute * 90),
		CustomerName: "佐藤 花子",
		CustomerKana: "サトウ ハナコ",
		Phone:        "090-1234-5678",
		Memo:         "指名",
	})
	require.NoError(t, err)
	require.Equal(t, "RSV-9001", result.PortalID)

	form := portal.bookingForm()
	require.Equal(t, "ST001", form.Get("stylistId"))
	require.Equal(t, "20260820", form.Get("date"))
	require.Equal(t, "10", form.Get("startHour"))
	require.Equal(t, "00", form.Get("startMinute"))
	require.Equal(t, "1", form.Get("durationHour"))
	require.Equal(t, "30", form.Get("durationMinute"))
	require.Equal(t, "佐藤", form.Get("lastName"))
	require.Equal(t, "花子", form.Get("firstName"))
	require.Equal(t, "サトウ", form.Get("lastNameKana"))
	require.Equal(t, "ハナコ", form.Get("firstNameKana"))
	require.Equal(t, "090-1234-5678", form.Get("phone"))
}

func TestPushReservationRejectsEmptySlot(t *testing.T) {
	portal := newFakePortal(t)
	portal.scheduleHTML = scheduleScreen
	client := portal.newClient(t, func(o *ClientOptions) {
		o.Owner = "owner-empty"
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	_, err := client.PushReservation(ctx, Booking{
		StaffName:    "山田 太郎",
		Start:        start,
		End:          start,
		CustomerName: "佐藤 花子",
	})
	require.Error(t, err)
}
