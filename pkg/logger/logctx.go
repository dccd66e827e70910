package logger

import "context"

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		RequestID string
		Action    string
		Query     string
	}

	logCtxKeyStruct struct{}
)

var logCtxKey = &logCtxKeyStruct{}

// WithLogCtx returns a new context with newLc merged over any existing LogCtx
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	if lc, ok := ctx.Value(logCtxKey).(LogCtx); ok {
		if newLc.RequestID == "" {
			newLc.RequestID = lc.RequestID
		}
		if newLc.Action == "" {
			newLc.Action = lc.Action
		}
		if newLc.Query == "" {
			newLc.Query = lc.Query
		}
	}
	return context.WithValue(ctx, logCtxKey, newLc)
}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithLogCtx(ctx, LogCtx{RequestID: requestID})
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	return WithLogCtx(ctx, LogCtx{Action: action})
}

// WithQuery adds or updates the aggregation name in the LogCtx within the context
func WithQuery(ctx context.Context, query string) context.Context {
	return WithLogCtx(ctx, LogCtx{Query: query})
}

// FromContext returns the LogCtx stored in ctx, if any
func FromContext(ctx context.Context) LogCtx {
	lc, _ := ctx.Value(logCtxKey).(LogCtx)
	return lc
}
