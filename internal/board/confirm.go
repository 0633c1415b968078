package board

import "context"

// Prompt is what a confirmation dialog shows before a destructive operation.
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Confirmer collects a yes/no decision. A nil Confirmer never confirms.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool {
	return f(ctx, p)
}

// Confirmed returns a Confirmer that always answers v.
func Confirmed(v bool) Confirmer {
	return ConfirmFunc(func(context.Context, Prompt) bool { return v })
}

func confirm(ctx context.Context, c Confirmer, p Prompt) bool {
	if c == nil {
		return false
	}
	return c.Confirm(ctx, p)
}
