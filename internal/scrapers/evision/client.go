// client.go contains the logic for navigating e:Vision's login and course pages,
// it does not contain any logic for reading the results themselves.

package evision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"evision-results/internal/components/assert"
	"evision-results/internal/components/telemetry"
	"evision-results/pkg/htmlutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	report_client_login        = "client.login"
	report_client_results_page = "client.results-page"
)

const (
	DefaultBaseUrl = "https://evision.brunel.ac.uk"

	loginPath = "/urd/sits.urd/run/siw_lgn?STU"

	usernameField = "MUA_CODE.DUMMY.MENSYS"
	passwordField = "PASSWORD.DUMMY.MENSYS"

	usernameInputSelector  = "input[id='MUA_CODE.DUMMY.MENSYS']"
	loginButtonSelector    = "input[name='BP101.DUMMY_B.MENSYS']"
	myCourseAnchorSelector = "a[id='STU3']"
	resultsButtonSelector  = "input[name='resultsbutton']"
)

var tracer = otel.Tracer("evision-results/scrapers/evision")

var (
	ErrLoginFailed     = errors.New("failed to login to e:Vision")
	ErrResultsNotFound = errors.New("could not find the results page")
)

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
	// RequestsPerSecond limits how fast the portal is hit, 0 means 2.
	RequestsPerSecond float64
	// Dump receives every http exchange made by the client when set, the
	// password is redacted from the login form.
	Dump telemetry.MessageOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	myCourse *url.URL
	tel      telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("evision_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	// max burst >= 2 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, "evision-results/scrapers/evision/http", tel)
	if opts.Dump != nil {
		telemetry.DumpResty(httpClient, opts.Dump, tel, passwordField)
	}

	return &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

func (c *Client) parse(res *resty.Response) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// pageUrl is the url a response ended up at after redirects, relative links on
// the page resolve against it.
func (c *Client) pageUrl(res *resty.Response) *url.URL {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL
	}
	return c.BaseUrl
}

func (c *Client) submit(ctx context.Context, form htmlutil.Form) (*resty.Response, error) {
	req := c.Http.R().SetContext(ctx)
	if form.Method == "GET" {
		link := *form.Action
		link.RawQuery = form.Values.Encode()
		return req.Get(link.String())
	}
	return req.SetFormDataFromValues(form.Values).Post(form.Action.String())
}

// Login submits the login form, on success the client remembers the link to
// the "My Course" page.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	loginError := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("evision scraper: login: %w", err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login page request: %w", err),
		)
		return loginError(err)
	}
	doc, err := c.parse(res)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("parse login page: %w", err),
		)
		return loginError(err)
	}

	formSel := doc.Find(usernameInputSelector).Closest("form")
	if formSel.Length() == 0 {
		err := fmt.Errorf("could not find login form")
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}
	form, err := htmlutil.ParseForm(c.pageUrl(res), formSel)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("serialize login form: %w", err),
		)
		return loginError(err)
	}
	form.Values.Set(formSel.Find(usernameInputSelector).AttrOr("name", usernameField), username)
	form.Values.Set(passwordField, password)
	form.Press(formSel.Find(loginButtonSelector))
	if form.Method == "GET" {
		// never put credentials in a query string
		form.Method = "POST"
	}

	res, err = c.submit(ctx, form)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login request: %w", err),
		)
		return loginError(err)
	}
	doc, err = c.parse(res)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("parse home page: %w", err),
		)
		return loginError(err)
	}

	anchors := htmlutil.GetAnchors(c.pageUrl(res), doc.Find(myCourseAnchorSelector))
	if len(anchors) == 0 {
		c.tel.ReportWarning(
			report_client_login,
			fmt.Errorf("test login: could not find %s", myCourseAnchorSelector),
			username,
		)
		return loginError(ErrLoginFailed)
	}

	c.myCourse = anchors[0].Url
	return nil
}

// ResultsPage navigates to the "My Course" page, presses the results button
// and returns the html of the page it lands on.
func (c *Client) ResultsPage(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:ResultsPage")
	defer span.End()

	resultsError := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("evision scraper: results page: %w", err)
	}

	if c.myCourse == nil {
		return "", resultsError(ErrLoginFailed)
	}

	endpoint := c.myCourse.String()
	c.tel.ReportDebug(report_client_results_page, endpoint)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(
			report_client_results_page,
			fmt.Errorf("my course request: %w", err),
			endpoint,
		)
		return "", resultsError(err)
	}
	doc, err := c.parse(res)
	if err != nil {
		c.tel.ReportBroken(
			report_client_results_page,
			fmt.Errorf("parse my course page: %w", err),
			endpoint,
		)
		return "", resultsError(err)
	}

	button := doc.Find(resultsButtonSelector).First()
	formSel := button.Closest("form")
	if button.Length() == 0 || formSel.Length() == 0 {
		c.tel.ReportWarning(
			report_client_results_page,
			fmt.Errorf("could not find %s", resultsButtonSelector),
			endpoint,
		)
		return "", resultsError(ErrResultsNotFound)
	}
	form, err := htmlutil.ParseForm(c.pageUrl(res), formSel)
	if err != nil {
		c.tel.ReportBroken(
			report_client_results_page,
			fmt.Errorf("serialize results form: %w", err),
			endpoint,
		)
		return "", resultsError(err)
	}
	if _, ok := formSel.Attr("method"); !ok {
		form.Method = "POST"
	}
	form.Press(button)

	res, err = c.submit(ctx, form)
	if err != nil {
		c.tel.ReportBroken(
			report_client_results_page,
			fmt.Errorf("results request: %w", err),
			form.Action.String(),
		)
		return "", resultsError(err)
	}
	if res.IsError() {
		err := fmt.Errorf("results request: %s", res.Status())
		c.tel.ReportBroken(report_client_results_page, err, form.Action.String())
		return "", resultsError(err)
	}

	return res.String(), nil
}
