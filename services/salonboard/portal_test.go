package salonboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakePortal is a minimal stand-in for the salon management portal:
// cookie-based login, a month calendar, paginated reservation lists
// and the menu/staff/coupon/booking screens.
type fakePortal struct {
	t *testing.T

	username string
	password string
	// expected captcha answer; empty disables the captcha
	captcha string

	reservationPages []string
	menusHTML        string
	staffHTML        string
	couponsHTML      string
	scheduleHTML     string
	// serve this many "still loading" menu pages before the real one
	menuFailures int

	mu              sync.Mutex
	loginCount      int
	lastBookingForm url.Values

	server *httptest.Server
}

const sessionCookie = "SALONSESSION"

func newFakePortal(t *testing.T) *fakePortal {
	p := &fakePortal{
		t:        t,
		username: "owner@example.com",
		password: "pass1234",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login/", p.handleLoginPage)
	mux.HandleFunc("/login/doLogin/", p.handleDoLogin)
	mux.HandleFunc("/top/", p.handleDashboard)
	mux.HandleFunc("/reserve/calendar/", p.handleCalendar)
	mux.HandleFunc("/reserve/list/", p.handleReserveList)
	mux.HandleFunc("/menu/list/", p.handleMenuList)
	mux.HandleFunc("/staff/list/", p.handleStatic(func() string { return p.staffHTML }))
	mux.HandleFunc("/coupon/list/", p.handleStatic(func() string { return p.couponsHTML }))
	mux.HandleFunc("/schedule/", p.handleStatic(func() string { return p.scheduleHTML }))
	mux.HandleFunc("/reserve/input/", p.handleReserveInput)
	mux.HandleFunc("/reserve/input/complete/", p.handleReserveComplete)

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakePortal) authenticated(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	return err == nil && c.Value == "ok"
}

func (p *fakePortal) loginForm() string {
	captchaBlock := ""
	if p.captcha != "" {
		captchaBlock = `<img id="captchaImage" src="/captcha.png"><input name="captchaCode">`
	}
	return fmt.Sprintf(`<html><body>
<form id="idPasswordInputForm" action="/login/doLogin/" method="post">
<input name="userId"><input name="password">%s
</form></body></html>`, captchaBlock)
}

func (p *fakePortal) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, p.loginForm())
}

func (p *fakePortal) logins() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loginCount
}

func (p *fakePortal) bookingForm() url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastBookingForm
}

func (p *fakePortal) handleDoLogin(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.loginCount++
	p.mu.Unlock()
	if r.FormValue("userId") != p.username || r.FormValue("password") != p.password {
		fmt.Fprint(w, p.loginForm())
		return
	}
	if p.captcha != "" && r.FormValue("captchaCode") != p.captcha {
		fmt.Fprint(w, p.loginForm())
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
	fmt.Fprint(w, `<html><body>ログインしました</body></html>`)
}

func (p *fakePortal) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !p.authenticated(r) {
		fmt.Fprint(w, p.loginForm())
		return
	}
	fmt.Fprint(w, `<html><body><div id="globalNavi">サロンボード</div></body></html>`)
}

// renders one month of the calendar widget; ym query controls which
func (p *fakePortal) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ym := r.URL.Query().Get("ym")
	if ym == "" {
		ym = "202608"
	}
	year, _ := strconv.Atoi(ym[:4])
	month, _ := strconv.Atoi(ym[4:])

	next := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	days := ""
	for d := 1; d <= 28; d++ {
		days += fmt.Sprintf(`<a href="/reserve/list/?date=%04d%02d%02d">%d</a>`, year, month, d, d)
	}
	fmt.Fprintf(w, `<html><body><div id="calendarArea">
<span class="calendarMonth">%d年%d月</span>
<a id="nextMonth" href="/reserve/calendar/?ym=%04d%02d">次月</a>
%s
</div></body></html>`, year, month, next.Year(), int(next.Month()), days)
}

func (p *fakePortal) handleReserveList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		page, _ = strconv.Atoi(v)
	}
	if page < 1 || page > len(p.reservationPages) {
		fmt.Fprint(w, `<html><body><table class="reserveListTable"></table></body></html>`)
		return
	}

	nextLink := ""
	if page < len(p.reservationPages) {
		nextLink = fmt.Sprintf(`<a class="pagingNext" href="/reserve/list/?page=%d">次へ</a>`, page+1)
	}
	fmt.Fprintf(w, `<html><body>%s%s</body></html>`, p.reservationPages[page-1], nextLink)
}

func (p *fakePortal) handleStatic(html func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html())
	}
}

func (p *fakePortal) handleMenuList(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	loading := p.menuFailures > 0
	if loading {
		p.menuFailures--
	}
	p.mu.Unlock()

	if loading {
		fmt.Fprint(w, `<html><body><div id="loading">読み込み中</div></body></html>`)
		return
	}
	fmt.Fprint(w, p.menusHTML)
}

func (p *fakePortal) handleReserveInput(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `<html><body><form id="reserveInputForm" action="/reserve/input/complete/" method="post"></form></body></html>`)
}

func (p *fakePortal) handleReserveComplete(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	p.mu.Lock()
	p.lastBookingForm = r.PostForm
	p.mu.Unlock()
	fmt.Fprint(w, `<html><body>予約を受け付けました <span id="reserveId">RSV-9001</span></body></html>`)
}

// reservationRow renders a hair-skin table row. Pass "" to omit a
// cell entirely (for field-tolerance tests).
func reservationRow(id, date, timeStr, status, customer, staff, menu, amount string) string {
	cell := func(class, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(`<td class="%s">%s</td>`, class, value)
	}
	idCell := ""
	if id != "" {
		idCell = fmt.Sprintf(`<td class="reserveId"><a href="/reserve/detail/?id=%s">%s</a></td>`, id, id)
	}
	return `<tr class="reserveListRow">` +
		idCell +
		cell("reserveDate", date) +
		cell("reserveTime", timeStr) +
		cell("status", status) +
		cell("customerName", customer) +
		cell("stylistName", staff) +
		cell("route", "ネット予約") +
		cell("menuName", menu) +
		cell("point", "0") +
		cell("payMethod", "現地払い") +
		cell("amount", amount) +
		`</tr>`
}

func reservationTable(rows ...string) string {
	table := `<table class="reserveListTable">`
	for _, r := range rows {
		table += r
	}
	return table + `</table>`
}

func (p *fakePortal) newClient(t *testing.T, opts ...func(*ClientOptions)) *Client {
	o := ClientOptions{
		BaseUrl:    p.server.URL,
		Owner:      "owner-1",
		SalonType:  SalonTypeHair,
		SettleWait: time.Millisecond,
	}
	for _, fn := range opts {
		fn(&o)
	}
	client, err := NewClient(context.Background(), o)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	return client
}
