package salonboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestParseMonthHeader(t *testing.T) {
	year, month, err := parseMonthHeader("2026年8月")
	require.NoError(t, err)
	require.Equal(t, 2026, year)
	require.Equal(t, time.August, month)

	_, _, err = parseMonthHeader("August 2026")
	require.Error(t, err)
}

func TestFetchReservationsPaginated(t *testing.T) {
	portal := newFakePortal(t)
	portal.reservationPages = []string{
		reservationTable(
			reservationRow("R-001", "2026/08/20", "10:00", "来店済", "佐藤 花子", "山田 太郎", "カット", "¥5,500"),
			reservationRow("R-002", "2026/08/20", "11:30", "来店済", "鈴木 一郎", "山田 太郎", "カラー", "¥8,800"),
		),
		reservationTable(
			reservationRow("R-003", "2026/08/21", "14:00", "受付中", "高橋 結衣", "田中 美咲", "パーマ", "¥12,100"),
		),
	}
	client := portal.newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	reservations, err := client.FetchReservations(ctx, start, end, "")
	require.NoError(t, err)
	require.Len(t, reservations, 3)

	require.Equal(t, "R-001", reservations[0].PortalID)
	require.Equal(t, "佐藤 花子", reservations[0].CustomerName)
	require.Equal(t, 5500, reservations[0].Amount)
	require.Equal(t, "R-003", reservations[2].PortalID)
	require.Equal(t, "受付中", reservations[2].Status)

	at, ok := reservations[0].StartsAt()
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, at.Location()), at)
}

func TestFetchReservationsSentinelStopsPagination(t *testing.T) {
	portal := newFakePortal(t)
	portal.reservationPages = []string{
		reservationTable(
			reservationRow("R-010", "2026/08/20", "10:00", "受付中", "客A", "山田 太郎", "カット", "¥5,500"),
			reservationRow("R-009", "2026/08/20", "09:00", "受付中", "客B", "山田 太郎", "カット", "¥5,500"),
		),
		reservationTable(
			reservationRow("R-008", "2026/08/19", "18:00", "来店済", "客C", "山田 太郎", "カット", "¥5,500"),
		),
	}
	client := portal.newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	start := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	// everything at and past R-009 was already synced; the second page
	// must never be collected
	reservations, err := client.FetchReservations(ctx, start, end, "R-009")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	require.Equal(t, "R-010", reservations[0].PortalID)
}

func TestFetchReservationsSkipsBadRow(t *testing.T) {
	portal := newFakePortal(t)
	portal.reservationPages = []string{
		reservationTable(
			// no id cell at all, the row is unusable
			reservationRow("", "2026/08/20", "10:00", "受付中", "客A", "山田 太郎", "カット", "¥5,500"),
			// missing cells degrade to zero values, the row survives
			reservationRow("R-020", "2026/08/20", "", "", "客B", "", "カット", ""),
		),
	}
	client := portal.newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	reservations, err := client.FetchReservations(ctx, start, start, "")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	require.Equal(t, "R-020", reservations[0].PortalID)
	require.Equal(t, "", reservations[0].Time)
	require.Equal(t, 0, reservations[0].Amount)
	require.Equal(t, "客B", reservations[0].CustomerName)
}

func TestSelectDateRangeHopsMonths(t *testing.T) {
	portal := newFakePortal(t)
	portal.reservationPages = []string{reservationTable()}
	client := portal.newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	// two next-month hops away from the widget's initial month
	target := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	err := client.SelectDateRange(ctx, target, target)
	require.NoError(t, err)
}

func TestSelectDateRangeGivesUpEventually(t *testing.T) {
	portal := newFakePortal(t)
	client := portal.newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	require.NoError(t, client.Login(ctx, portal.username, portal.password))

	// far enough back that the forward-only widget can never reach it
	target := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	err := client.SelectDateRange(ctx, target, target)

	var timeout NavigationTimeout
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, calendarPath, timeout.Screen)
	require.True(t, IsRetryable(err))
}

func TestExtractReservationRelaxSkin(t *testing.T) {
	portal := newFakePortal(t)
	client := portal.newClient(t, func(o *ClientOptions) {
		o.SalonType = SalonTypeRelax
	})

	page := `<table id="reservationList">
<tr class="dataRow">
<td class="rsvNo"><a href="/reserve/detail/?id=RX-100">RX-100</a></td>
<td class="rsvDate">2026/08/22</td>
<td class="rsvTime">13:00</td>
<td class="rsvStatus">受付中</td>
<td class="visitorName">伊藤 直樹</td>
<td class="staffName">小林 愛</td>
<td class="rsvRoute">電話</td>
<td class="courseName">全身60分</td>
<td class="usePoint">500</td>
<td class="settlement">現地払い</td>
<td class="total">¥6,600</td>
</tr></table>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	row := doc.Find(client.resSel.Row)
	require.Equal(t, 1, row.Length())

	r, err := client.extractReservation(context.Background(), row)
	require.NoError(t, err)
	require.Equal(t, "RX-100", r.PortalID)
	require.Equal(t, "伊藤 直樹", r.CustomerName)
	require.Equal(t, "全身60分", r.Menu)
	require.Equal(t, 500, r.PointsUsed)
	require.Equal(t, 6600, r.Amount)
}
