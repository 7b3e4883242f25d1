package settings

import "context"

type runKey struct{}

// IntoContext attaches the run options to ctx.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run options attached to ctx, if any.
func FromContext(ctx context.Context) (*Run, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// RunFrom is FromContext with one-shot defaults for a bare context.
func RunFrom(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return NewCliParams()
}
