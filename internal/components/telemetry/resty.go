package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
)

type exchangeKeyType struct{}

var exchangeKey exchangeKeyType

// exchange is attached to the request context between OnBeforeRequest and the
// response or error hook.
type exchange struct {
	id    uint64
	start time.Time
	span  trace.Span
}

type restyHooks struct {
	tel    API
	tracer trace.Tracer
	nextId atomic.Uint64
}

// InstrumentResty wraps every request of the client in a span of the named
// tracer and reports it to tel. Error statuses are warnings, transport failures
// are reported broken. Neither carries headers or bodies.
func InstrumentResty(client *resty.Client, tracerName string, tel API) {
	h := &restyHooks{
		tel:    tel,
		tracer: otel.Tracer(tracerName),
	}
	client.OnBeforeRequest(h.before)
	client.OnAfterResponse(h.after)
	client.OnError(h.failed)
}

func (h *restyHooks) before(_ *resty.Client, req *resty.Request) error {
	ctx, span := h.tracer.Start(
		req.Context(),
		"http "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.HTTPRequestMethodKey.String(req.Method)),
	)
	ex := exchange{
		id:    h.nextId.Add(1),
		start: time.Now(),
		span:  span,
	}
	h.tel.ReportDebug(report_resty_request, ex.id, req.Method, req.URL)
	req.SetContext(context.WithValue(ctx, exchangeKey, ex))
	return nil
}

func exchangeOf(req *resty.Request) (exchange, bool) {
	ex, ok := req.Context().Value(exchangeKey).(exchange)
	return ex, ok
}

func (h *restyHooks) after(_ *resty.Client, res *resty.Response) error {
	ex, ok := exchangeOf(res.Request)
	if !ok {
		return nil
	}
	defer ex.span.End()
	ex.span.SetAttributes(
		semconv.URLFull(res.Request.URL),
		semconv.HTTPResponseStatusCode(res.StatusCode()),
	)

	h.tel.ReportDebug(report_resty_response, ex.id, time.Since(ex.start).String(), res.Status())
	if res.IsError() {
		ex.span.SetStatus(codes.Error, res.Status())
		h.tel.ReportWarning(
			report_resty_response,
			fmt.Errorf("unexpected status: %s", res.Status()),
			res.Request.Method,
			res.Request.URL,
		)
	}
	return nil
}

func (h *restyHooks) failed(req *resty.Request, err error) {
	var elapsed time.Duration
	ex, ok := exchangeOf(req)
	if ok {
		elapsed = time.Since(ex.start)
		ex.span.RecordError(err)
		ex.span.SetStatus(codes.Error, err.Error())
		ex.span.End()
	}
	h.tel.ReportBroken(report_resty_response, err, req.Method, req.URL, elapsed)
}

func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

const redacted = "<REDACTED>"

// requestBody returns the body of the request, url encoded forms have the
// values of the redact fields replaced.
func requestBody(req *http.Request, redact []string) string {
	if req == nil || req.GetBody == nil {
		return "<NO BODY AVAILABLE>"
	}
	body, err := req.GetBody()
	if err != nil {
		return "failed to get request body: " + err.Error()
	}
	defer body.Close()
	content, err := io.ReadAll(body)
	if err != nil {
		return "failed to read request body: " + err.Error()
	}
	if len(redact) == 0 || !strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return string(content)
	}

	values, err := url.ParseQuery(string(content))
	if err != nil {
		return "<UNPARSEABLE FORM BODY>"
	}
	for _, field := range redact {
		if values.Has(field) {
			values.Set(field, redacted)
		}
	}
	return values.Encode()
}

// formatHttpMessage renders a request and its response roughly the way they
// went over the wire, the response url is the redirect target when there is one.
// Form fields named in redact are masked in the request body.
func formatHttpMessage(res *resty.Response, redact []string) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		writeHeaders(&out, res.Request.RawRequest.Header)
	}
	out.WriteString("\n")
	out.WriteString(requestBody(res.Request.RawRequest, redact))

	responseUrl := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseUrl = redirected.String()
		}
	}
	out.WriteString("\n\n---- RESPONSE ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", strconv.Itoa(res.StatusCode()), responseUrl)
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	out.WriteString(res.String())

	return out.String()
}
