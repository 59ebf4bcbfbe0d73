package telemetry

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InitSlog makes a text handler on stderr the default logger, debug records
// are only written when verbose.
func InitSlog(verbose bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// SlogAPI writes reports to a slog logger, the default logger when Logger is
// nil. Counts are also recorded on the global otel meter provider.
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func paramAttrs(args []any, params []any) []any {
	for i, p := range params {
		args = append(args, slog.Any("param"+strconv.Itoa(i), p))
	}
	return args
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.logger().Error("broken component", paramAttrs([]any{slog.String("id", id)}, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.logger().Warn("warning", paramAttrs([]any{slog.String("id", id)}, params)...)
}

func (s SlogAPI) ReportDebug(msg string, params ...any) {
	s.logger().Debug(msg, paramAttrs(nil, params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger().Info("count", "id", id, "n", count)

	histogram, err := otel.Meter("evision-results/telemetry").Int64Histogram(
		"evision_results.report.count",
		metric.WithDescription("Counts reported by components through the telemetry API."),
	)
	if err != nil {
		s.logger().Warn("create count histogram", "err", err)
		return
	}
	histogram.Record(context.Background(), count, metric.WithAttributes(attribute.String("id", id)))
}
