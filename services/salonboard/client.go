package salonboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"salonsync-backend/lib/telemetry"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/salonboard")

const loginPath = "/login/"
const doLoginPath = "/login/doLogin/"
const dashboardPath = "/top/"
const reserveListPath = "/reserve/list/"
const calendarPath = "/reserve/calendar/"
const menuListPath = "/menu/list/"
const staffListPath = "/staff/list/"
const couponListPath = "/coupon/list/"
const schedulePath = "/schedule/"
const reserveInputPath = "/reserve/input/"
const reserveCompletePath = "/reserve/input/complete/"

// CaptchaSolver supplies the captcha answer during login. The portal
// presents one intermittently, so this usually blocks on an operator
// (or an out-of-band channel) until the code arrives or ctx expires.
type CaptchaSolver interface {
	Solve(ctx context.Context, imageURL string) (string, error)
}

type ClientOptions struct {
	BaseUrl   string
	Owner     string
	SalonType SalonType
	Captcha   CaptchaSolver
	// how long to let the portal's own confirmation flow settle after
	// submitting a booking; it exposes no programmatic signal.
	SettleWait time.Duration
}

// Client drives one authenticated portal session. It is not safe for
// concurrent use; a sync run owns exactly one client and closes it
// on the way out.
type Client struct {
	BaseUrl    *url.URL
	Http       *resty.Client
	owner      string
	salonType  SalonType
	captcha    CaptchaSolver
	settleWait time.Duration
	resSel     reservationSelectors
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if err := validateAllSelectors(opts.SalonType); err != nil {
		return nil, err
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "salonboard/http")

	settle := opts.SettleWait
	if settle == 0 {
		settle = time.Second * 15
	}

	c := &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		owner:      opts.Owner,
		salonType:  opts.SalonType,
		captcha:    opts.Captcha,
		settleWait: settle,
		resSel:     reservationSkins[opts.SalonType],
	}
	return c, nil
}

func (c *Client) Owner() string { return c.owner }

// Close releases the session's transport resources. Safe to call on
// every exit path.
func (c *Client) Close() {
	c.Http.GetClient().CloseIdleConnections()
}

// fetchDocument GETs a portal screen (absolute path or a relative
// href lifted off the page) and parses it.
func (c *Client) fetchDocument(ctx context.Context, href string) (*goquery.Document, error) {
	link, err := url.Parse(href)
	if err != nil {
		return nil, err
	}
	resolved := c.BaseUrl.ResolveReference(link).String()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(resolved)
	if err != nil {
		return nil, wrapFetchError(href, err)
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

type serializedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path"`
	Domain  string    `json:"domain"`
	Expires time.Time `json:"expires"`
}

// ExportCookies serializes the session's cookie jar as JSON for
// encrypted persistence.
func (c *Client) ExportCookies() ([]byte, error) {
	cookies := c.Http.GetClient().Jar.Cookies(c.BaseUrl)
	out := make([]serializedCookie, len(cookies))
	for i, cookie := range cookies {
		out[i] = serializedCookie{
			Name:    cookie.Name,
			Value:   cookie.Value,
			Path:    cookie.Path,
			Domain:  cookie.Domain,
			Expires: cookie.Expires,
		}
	}
	return json.Marshal(out)
}

// ImportCookies injects a previously exported jar into this session.
func (c *Client) ImportCookies(blob []byte) error {
	var cookies []serializedCookie
	err := json.Unmarshal(blob, &cookies)
	if err != nil {
		return err
	}
	restored := make([]*http.Cookie, len(cookies))
	for i, cookie := range cookies {
		restored[i] = &http.Cookie{
			Name:    cookie.Name,
			Value:   cookie.Value,
			Path:    cookie.Path,
			Domain:  cookie.Domain,
			Expires: cookie.Expires,
		}
	}
	c.Http.GetClient().Jar.SetCookies(c.BaseUrl, restored)
	return nil
}

// ValidateSession checks whether the current cookie jar still buys an
// authenticated view: navigating to the dashboard while logged out
// renders the login form instead.
func (c *Client) ValidateSession(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:ValidateSession")
	defer span.End()

	doc, err := c.fetchDocument(ctx, dashboardPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch dashboard")
		return false, err
	}

	valid := doc.Find(loginSkin.Form).Length() == 0
	span.SetAttributes(attribute.Bool("session_valid", valid))
	return valid, nil
}

// Login performs the interactive credential flow. When the portal
// presents a captcha the configured solver is consulted before the
// form is submitted; success is verified by the presence of the
// post-login dashboard element.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	doc, err := c.fetchDocument(ctx, loginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	if doc.Find(loginSkin.Form).Length() == 0 {
		span.SetStatus(codes.Error, "login form not found")
		return AuthenticationFailed
	}

	userField, err := formFieldName(doc, loginSkin.UserField)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	passField, err := formFieldName(doc, loginSkin.PassField)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	form := map[string]string{
		userField: username,
		passField: password,
	}

	if captchaImg := doc.Find(loginSkin.CaptchaImage); captchaImg.Length() > 0 {
		if c.captcha == nil {
			span.SetStatus(codes.Error, CaptchaRequired.Error())
			return CaptchaRequired
		}
		captchaField, err := formFieldName(doc, loginSkin.CaptchaField)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		src, _ := captchaImg.Attr("src")
		imgLink, err := url.Parse(src)
		if err != nil {
			return err
		}
		code, err := c.captcha.Solve(ctx, c.BaseUrl.ResolveReference(imgLink).String())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "captcha solver failed")
			return err
		}
		form[captchaField] = code
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(doLoginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit login form")
		return wrapFetchError(doLoginPath, err)
	}

	doc, err = c.fetchDocument(ctx, dashboardPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch dashboard after login")
		return err
	}
	if doc.Find(loginSkin.Dashboard).Length() == 0 {
		span.SetStatus(codes.Error, AuthenticationFailed.Error())
		return AuthenticationFailed
	}

	return nil
}
