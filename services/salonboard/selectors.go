package salonboard

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Every screen the client touches is bound to one known layout
// through the selector maps below. A layout change on the portal
// should fail loudly at startup or extraction time, not silently
// default every field, so the maps are validated by NewClient.

type loginSelectors struct {
	Form         string
	UserField    string
	PassField    string
	CaptchaImage string
	CaptchaField string
	Dashboard    string
}

var loginSkin = loginSelectors{
	Form:         "form#idPasswordInputForm",
	UserField:    "input[name=userId]",
	PassField:    "input[name=password]",
	CaptchaImage: "img#captchaImage",
	CaptchaField: "input[name=captchaCode]",
	Dashboard:    "div#globalNavi",
}

type calendarSelectors struct {
	MonthHeader string
	NextMonth   string
}

var calendarSkin = calendarSelectors{
	MonthHeader: "span.calendarMonth",
	NextMonth:   "a#nextMonth",
}

type reservationSelectors struct {
	Row      string
	ID       string
	Date     string
	Time     string
	Status   string
	Customer string
	Staff    string
	Channel  string
	Menu     string
	Points   string
	Payment  string
	Amount   string
	NextPage string
}

var reservationSkins = map[SalonType]reservationSelectors{
	SalonTypeHair: {
		Row:      "table.reserveListTable tr.reserveListRow",
		ID:       "td.reserveId a",
		Date:     "td.reserveDate",
		Time:     "td.reserveTime",
		Status:   "td.status",
		Customer: "td.customerName",
		Staff:    "td.stylistName",
		Channel:  "td.route",
		Menu:     "td.menuName",
		Points:   "td.point",
		Payment:  "td.payMethod",
		Amount:   "td.amount",
		NextPage: "a.pagingNext",
	},
	SalonTypeRelax: {
		Row:      "table#reservationList tr.dataRow",
		ID:       "td.rsvNo a",
		Date:     "td.rsvDate",
		Time:     "td.rsvTime",
		Status:   "td.rsvStatus",
		Customer: "td.visitorName",
		Staff:    "td.staffName",
		Channel:  "td.rsvRoute",
		Menu:     "td.courseName",
		Points:   "td.usePoint",
		Payment:  "td.settlement",
		Amount:   "td.total",
		NextPage: "li.next a",
	},
}

type menuSelectors struct {
	Row            string
	Name           string
	Category       string
	Description    string
	Price          string
	Duration       string
	Reservable     string
	Published      string
	SearchCategory string
}

var menuSkin = menuSelectors{
	Row:            "table.menuListTable tr.menuRow",
	Name:           "td.menuName",
	Category:       "td.menuCategory",
	Description:    "td.menuDescription",
	Price:          "td.menuPrice",
	Duration:       "td.menuTime",
	Reservable:     "td.reserveStatus",
	Published:      "td.publishStatus",
	SearchCategory: "td.searchCategory",
}

type staffSelectors struct {
	Row         string
	Name        string
	Role        string
	Experience  string
	Published   string
	Photo       string
	Description string
}

var staffSkin = staffSelectors{
	Row:         "table.staffListTable tr.staffRow",
	Name:        "td.staffName",
	Role:        "td.staffRole",
	Experience:  "td.experience",
	Published:   "td.publishStatus",
	Photo:       "td.photo img",
	Description: "td.introduction",
}

type couponSelectors struct {
	Row         string
	Name        string
	Description string
	Price       string
	Reservable  string
	Published   string
}

var couponSkin = couponSelectors{
	Row:         "table.couponListTable tr.couponRow",
	Name:        "td.couponName",
	Description: "td.couponDescription",
	Price:       "td.couponPrice",
	Reservable:  "td.reserveStatus",
	Published:   "td.publishStatus",
}

type bookingSelectors struct {
	StaffOptions string
	Form         string
	ReserveID    string
}

var bookingSkin = bookingSelectors{
	StaffOptions: "select[name=stylistId] option",
	Form:         "form#reserveInputForm",
	ReserveID:    "span#reserveId",
}

// formFieldName resolves a selector to the name attribute of the
// input it matches, so the submitted form keys come from the selector
// map rather than a second hard-coded copy. A field the page no
// longer renders is a layout change and fatal.
func formFieldName(doc *goquery.Document, sel string) (string, error) {
	name, ok := doc.Find(sel).Attr("name")
	if !ok {
		return "", fmt.Errorf("no form field matches %q", sel)
	}
	return name, nil
}

// checkSelector compiles a selector against an empty document.
// goquery panics on malformed selectors, so the panic is converted
// into a startup error.
func checkSelector(sel string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid selector %q: %v", sel, r)
		}
	}()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	if err != nil {
		return err
	}
	doc.Find(sel)
	return nil
}

func validateSelectors(set any) error {
	v := reflect.ValueOf(set)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sel := v.Field(i).String()
		if sel == "" {
			return fmt.Errorf("%s.%s: selector is empty", t.Name(), t.Field(i).Name)
		}
		if err := checkSelector(sel); err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name(), t.Field(i).Name, err)
		}
	}
	return nil
}

func validateAllSelectors(salonType SalonType) error {
	resSel, ok := reservationSkins[salonType]
	if !ok {
		return fmt.Errorf("no reservation selector skin for salon type %q", salonType)
	}
	sets := []any{loginSkin, calendarSkin, resSel, menuSkin, staffSkin, couponSkin, bookingSkin}
	for _, set := range sets {
		if err := validateSelectors(set); err != nil {
			return err
		}
	}
	return nil
}
