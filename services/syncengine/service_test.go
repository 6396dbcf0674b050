package syncengine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"salonsync-backend/lib/testutil"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/salonboard"
	"salonsync-backend/services/syncengine/db"
	"sync"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakePortal satisfies Portal without a live session.
type fakePortal struct {
	menus        []salonboard.MenuItem
	staff        []salonboard.StaffMember
	coupons      []salonboard.Coupon
	reservations []salonboard.Reservation

	fetchErr error
	// when non-nil, FetchMenus blocks until the channel closes
	menuGate chan struct{}

	lastSeenID string
	pushResult salonboard.BookingResult
	pushErr    error
	pushed     []salonboard.Booking

	mu     sync.Mutex
	closed int
}

func (p *fakePortal) FetchMenus(ctx context.Context) ([]salonboard.MenuItem, error) {
	if p.menuGate != nil {
		<-p.menuGate
	}
	return p.menus, p.fetchErr
}

func (p *fakePortal) FetchStaff(ctx context.Context) ([]salonboard.StaffMember, error) {
	return p.staff, p.fetchErr
}

func (p *fakePortal) FetchCoupons(ctx context.Context) ([]salonboard.Coupon, error) {
	return p.coupons, p.fetchErr
}

func (p *fakePortal) FetchReservations(ctx context.Context, start, end time.Time, lastSeenID string) ([]salonboard.Reservation, error) {
	p.lastSeenID = lastSeenID
	return p.reservations, p.fetchErr
}

func (p *fakePortal) PushReservation(ctx context.Context, b salonboard.Booking) (salonboard.BookingResult, error) {
	p.pushed = append(p.pushed, b)
	return p.pushResult, p.pushErr
}

func (p *fakePortal) Close() {
	p.mu.Lock()
	p.closed++
	p.mu.Unlock()
}

func (p *fakePortal) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func setup(t *testing.T, portal *fakePortal) *Service {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/syncengine",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	service, err := NewService(result.DB, Options{
		Sessions: func(ctx context.Context, owner string, salonType salonboard.SalonType) (Portal, error) {
			return portal, nil
		},
	})
	require.NoError(t, err)
	return service
}

func TestSyncMenusLifecycle(t *testing.T) {
	portal := &fakePortal{
		menus: []salonboard.MenuItem{menu("カット", 5500), menu("パーマ", 12100)},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	out, err := service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)
	require.Equal(t, 2, out.Inserted)
	require.Equal(t, 0, out.Updated)
	require.Equal(t, 0, out.Deactivated)
	require.False(t, out.Unchanged)
	require.Equal(t, 1, portal.closeCount())

	// the portal now shows a changed カット and a new カラー, パーマ is gone
	portal.menus = []salonboard.MenuItem{menu("カット", 6050), menu("カラー", 8800)}
	out, err = service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)
	require.Equal(t, 1, out.Inserted)
	require.Equal(t, 1, out.Updated)
	require.Equal(t, 1, out.Deactivated)

	rows, err := db.New(service.db).ListMenuItems(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	byName := map[string]db.MenuItem{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	require.True(t, byName["カット"].Active)
	require.Equal(t, int64(6050), byName["カット"].Price)
	require.True(t, byName["カラー"].Active)
	// the vanished item stays in the store, only deactivated
	require.False(t, byName["パーマ"].Active)

	// an identical snapshot hashes the same but still refreshes every
	// listed row
	out, err = service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)
	require.True(t, out.Unchanged)
	require.Equal(t, 0, out.Inserted)
	require.Equal(t, 2, out.Updated)
	require.Equal(t, 0, out.Deactivated)

	logs, err := service.SyncLog(ctx, "owner-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for _, entry := range logs {
		require.Equal(t, "ok", entry.Status)
		require.Equal(t, string(KindMenus), entry.Kind)
	}
	// newest first; the last run's audit row carries its hash and count
	require.Equal(t, out.Hash, logs[0].ContentHash)
	require.Equal(t, int64(2), logs[0].Fetched)
	require.Equal(t, int64(2), logs[0].Updated)
}

func TestSyncMenusReactivates(t *testing.T) {
	portal := &fakePortal{menus: []salonboard.MenuItem{menu("カット", 5500)}}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, err := service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)

	portal.menus = nil
	out, err := service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)
	require.Equal(t, 1, out.Deactivated)

	// the item coming back revives the existing row
	portal.menus = []salonboard.MenuItem{menu("カット", 5500)}
	out, err = service.Sync(ctx, "owner-1", KindMenus)
	require.NoError(t, err)
	require.Equal(t, 1, out.Inserted)

	rows, err := db.New(service.db).ListMenuItems(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Active)
}

func TestSyncStaffKeepsUnstatedExperience(t *testing.T) {
	twelve := 12
	portal := &fakePortal{
		staff: []salonboard.StaffMember{
			{Name: "山田 太郎", Role: "スタイリスト", YearsExperience: &twelve, Published: true},
			{Name: "田中 美咲", Role: "アシスタント"},
		},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	out, err := service.Sync(ctx, "owner-1", KindStaff)
	require.NoError(t, err)
	require.Equal(t, 2, out.Inserted)

	rows, err := db.New(service.db).ListStaffMembers(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byName := map[string]db.StaffMember{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	require.True(t, byName["山田 太郎"].YearsExperience.Valid)
	require.Equal(t, int64(12), byName["山田 太郎"].YearsExperience.Int64)
	require.False(t, byName["田中 美咲"].YearsExperience.Valid)

	// an unchanged roster re-syncs as updates, nil years included
	out, err = service.Sync(ctx, "owner-1", KindStaff)
	require.NoError(t, err)
	require.Equal(t, 0, out.Inserted)
	require.Equal(t, 2, out.Updated)
	require.Equal(t, 0, out.Deactivated)

	rows, err = db.New(service.db).ListStaffMembers(ctx, "owner-1")
	require.NoError(t, err)
	for _, r := range rows {
		if r.Name == "田中 美咲" {
			require.False(t, r.YearsExperience.Valid)
		}
	}
}

func TestSyncCoupons(t *testing.T) {
	portal := &fakePortal{
		coupons: []salonboard.Coupon{
			{PortalID: "CP-001", Name: "初回限定", Price: 11000, Reservable: true, Published: true},
		},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	out, err := service.Sync(ctx, "owner-1", KindCoupons)
	require.NoError(t, err)
	require.Equal(t, 1, out.Inserted)

	rows, err := db.New(service.db).ListCoupons(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "CP-001", rows[0].PortalID)
	require.True(t, rows[0].Reservable)
}

func reservationAt(id string, at time.Time) salonboard.Reservation {
	local := at.In(timezone.Location)
	return salonboard.Reservation{
		PortalID:     id,
		Date:         local.Format("2006/01/02"),
		Time:         local.Format("15:04"),
		Status:       "受付中",
		CustomerName: "佐藤 花子",
		StaffName:    "山田 太郎",
		Menu:         "カット",
		Amount:       5500,
	}
}

func TestSyncReservationsCursor(t *testing.T) {
	anchor := time.Date(2026, 8, 20, 10, 0, 0, 0, timezone.Location)
	portal := &fakePortal{
		reservations: []salonboard.Reservation{reservationAt("R-100", anchor)},
	}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	out, err := service.Sync(ctx, "owner-1", KindReservations)
	require.NoError(t, err)
	require.Equal(t, 1, out.Inserted)
	require.Equal(t, "", portal.lastSeenID)

	// next run the portal lists one reservation older than the cursor
	// and one newer; only the newer one lands
	portal.reservations = []salonboard.Reservation{
		reservationAt("R-099", anchor.Add(-time.Hour)),
		reservationAt("R-101", anchor.Add(time.Hour)),
	}
	out, err = service.Sync(ctx, "owner-1", KindReservations)
	require.NoError(t, err)
	require.Equal(t, 2, out.Fetched)
	require.Equal(t, 1, out.Inserted)
	// pagination was armed with the newest id from the first run
	require.Equal(t, "R-100", portal.lastSeenID)

	stored, err := service.Reservations(ctx, "owner-1", anchor.Add(-time.Hour*24))
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, "R-100", stored[0].PortalID)
	require.Equal(t, "R-101", stored[1].PortalID)

	// running again with the same listing adds nothing
	out, err = service.Sync(ctx, "owner-1", KindReservations)
	require.NoError(t, err)
	require.Equal(t, 0, out.Inserted)
}

func TestSyncFailureIsLogged(t *testing.T) {
	portal := &fakePortal{fetchErr: fmt.Errorf("portal returned a maintenance page")}
	service := setup(t, portal)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, err := service.Sync(ctx, "owner-1", KindMenus)
	require.Error(t, err)

	logs, err := service.SyncLog(ctx, "owner-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "error", logs[0].Status)
	require.Contains(t, logs[0].Error, "maintenance page")
	require.Equal(t, 1, portal.closeCount())
}
