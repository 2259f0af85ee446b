package instrument

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// setupLogging replaces the default slog logger with a JSON handler that
// masks sensitive attributes and tags every record with the service name and
// the request correlation ID. When lp is non-nil, records are also exported
// through the OTel log bridge.
func setupLogging(serviceName string, lp *sdklog.LoggerProvider, maskFields []string) {
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.SourceKey:
				src, ok := a.Value.Any().(*slog.Source)
				if !ok {
					return a
				}
				if _, rel, found := strings.Cut(src.File, "/internal/"); found {
					return slog.String("file", fmt.Sprintf("internal/%s:%d", rel, src.Line))
				}
				return slog.Attr{}
			}
			return a
		},
	})

	var handler slog.Handler = jsonHandler
	if lp != nil {
		handler = &fanoutHandler{handlers: []slog.Handler{
			jsonHandler,
			otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp)),
		}}
	}

	handler = &maskingHandler{next: handler, fields: normalizeMaskFields(maskFields)}

	slog.SetDefault(slog.New(&taggingHandler{Handler: handler, service: serviceName}))
}

// taggingHandler appends the service name and correlation ID to each record.
type taggingHandler struct {
	slog.Handler
	service string
}

func (h *taggingHandler) Handle(ctx context.Context, r slog.Record) error {
	if cid := GetCorrelationID(ctx); cid != "" {
		r.AddAttrs(slog.String("correlation_id", cid))
	}
	r.AddAttrs(slog.String("service", h.service))
	return h.Handler.Handle(ctx, r)
}

// fanoutHandler duplicates records across handlers.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		next = append(next, h.WithAttrs(attrs))
	}
	return &fanoutHandler{handlers: next}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, 0, len(f.handlers))
	for _, h := range f.handlers {
		next = append(next, h.WithGroup(name))
	}
	return &fanoutHandler{handlers: next}
}

// maskingHandler replaces configured attribute values with ***. Values that
// contain JSON objects are decoded so nested keys get masked too.
type maskingHandler struct {
	next   slog.Handler
	fields map[string]struct{}
}

func (h *maskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *maskingHandler) Handle(ctx context.Context, r slog.Record) error {
	if len(h.fields) == 0 {
		return h.next.Handle(ctx, r)
	}

	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(attr slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(attr))
		return true
	})
	return h.next.Handle(ctx, masked)
}

func (h *maskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &maskingHandler{next: h.next.WithAttrs(attrs), fields: h.fields}
}

func (h *maskingHandler) WithGroup(name string) slog.Handler {
	return &maskingHandler{next: h.next.WithGroup(name), fields: h.fields}
}

func (h *maskingHandler) maskAttr(attr slog.Attr) slog.Attr {
	if _, hide := h.fields[strings.ToLower(attr.Key)]; hide {
		return slog.String(attr.Key, "***")
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		masked := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			masked = append(masked, h.maskAttr(ga))
		}
		attr.Value = slog.GroupValue(masked...)
	case slog.KindString:
		if v, ok := h.maskJSON([]byte(attr.Value.String())); ok {
			attr.Value = slog.StringValue(v)
		}
	case slog.KindAny:
		switch val := attr.Value.Any().(type) {
		case map[string]any:
			attr.Value = slog.AnyValue(h.maskTree(val))
		case map[string]string:
			tree := make(map[string]any, len(val))
			for k, v := range val {
				tree[k] = v
			}
			attr.Value = slog.AnyValue(h.maskTree(tree))
		case []any:
			attr.Value = slog.AnyValue(h.maskTree(val))
		case []byte:
			if v, ok := h.maskJSON(val); ok {
				attr.Value = slog.StringValue(v)
			}
		}
	}
	return attr
}

func (h *maskingHandler) maskJSON(payload []byte) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", false
	}
	out, err := json.Marshal(h.maskTree(decoded))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (h *maskingHandler) maskTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if _, hide := h.fields[strings.ToLower(k)]; hide {
				out[k] = "***"
			} else {
				out[k] = h.maskTree(inner)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = h.maskTree(inner)
		}
		return out
	default:
		return v
	}
}

func normalizeMaskFields(fields []string) map[string]struct{} {
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(strings.ToLower(f))
		if f != "" {
			out[f] = struct{}{}
		}
	}
	return out
}
