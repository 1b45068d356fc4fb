package llm

import "context"

// PurposeLesson labels daily lesson generation.
const PurposeLesson = "lesson"

type callKey struct{}

// Call describes why a request is made. It travels on the context so
// decorators can label logs and events without widening Request.
type Call struct {
	Purpose  string
	Language string
}

// WithCall attaches c to ctx.
func WithCall(ctx context.Context, c Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFrom returns the call attached to ctx. Purpose is "unknown" when
// none was attached.
func CallFrom(ctx context.Context) Call {
	c, _ := ctx.Value(callKey{}).(Call)
	if c.Purpose == "" {
		c.Purpose = "unknown"
	}
	return c
}

// eventPurpose is the purpose stored with an event, e.g. "lesson" or
// "lesson:French".
func (c Call) eventPurpose() string {
	if c.Language == "" {
		return c.Purpose
	}
	return c.Purpose + ":" + c.Language
}
