package streams

import (
	"context"

	"github.com/wippyai/pollio/resource"
)

type ErrorHost struct {
	table *resource.Table
}

func NewErrorHost(table *resource.Table) *ErrorHost {
	return &ErrorHost{table: table}
}

func (h *ErrorHost) Namespace() string {
	return "wasi:io/error@0.2.8"
}

func (h *ErrorHost) MethodErrorToDebugString(_ context.Context, self uint32) string {
	e, ok := resource.Lookup[*ErrorResource](h.table, resource.Handle(self), resource.KindError)
	if !ok {
		return "unknown error"
	}
	return e.ToDebugString()
}

func (h *ErrorHost) ResourceDropError(_ context.Context, self uint32) {
	_, _ = h.table.Remove(resource.Handle(self))
}

func (h *ErrorHost) Register() map[string]any {
	return map[string]any{
		"[method]error.to-debug-string": h.MethodErrorToDebugString,
		"[resource-drop]error":          h.ResourceDropError,
	}
}
