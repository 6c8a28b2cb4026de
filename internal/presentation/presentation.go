// Package presentation models optional child state: a slot that is either
// absent or holds a child feature's state. Presence means the child is shown;
// clearing the slot dismisses it. Only the owner's reducer creates or clears
// the slot. The child asks to go away through RequestDismiss.
package presentation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jask/contacts/internal/store"
)

// Action wraps the actions of a presented child. It is either a child action
// (Presented) or a request to dismiss the child (Dismiss).
type Action[A any] struct {
	action    A
	dismissed bool
	// from is the child state that requested the dismissal, nil for a
	// dismissal the owner sends itself.
	from any
}

// Presented wraps a child action.
func Presented[A any](action A) Action[A] {
	return Action[A]{action: action}
}

// Dismiss builds the dismissal action. It clears whatever child is presented.
func Dismiss[A any]() Action[A] {
	return Action[A]{dismissed: true}
}

// dismissFrom builds a dismissal that only applies while child is still the
// presented state.
func dismissFrom[A any](child any) Action[A] {
	return Action[A]{dismissed: true, from: child}
}

// Presented returns the wrapped child action.
func (a Action[A]) Presented() (A, bool) {
	if a.dismissed {
		var zero A
		return zero, false
	}
	return a.action, true
}

// IsDismiss reports whether a is the dismissal action.
func (a Action[A]) IsDismiss() bool { return a.dismissed }

func (a Action[A]) String() string {
	if a.dismissed {
		return "dismiss"
	}
	return fmt.Sprintf("presented(%T)", a.action)
}

type dismissKey struct{}

// DismissFunc removes the presented child from its owner.
type DismissFunc func(ctx context.Context)

// WithDismiss binds fn as the dismiss dependency for effects run with ctx.
func WithDismiss(ctx context.Context, fn DismissFunc) context.Context {
	return context.WithValue(ctx, dismissKey{}, fn)
}

// RequestDismiss asks the owner of the current child to clear it. It returns
// after the owner reduced the dismissal. Outside a presentation it only logs.
func RequestDismiss(ctx context.Context) {
	fn, ok := ctx.Value(dismissKey{}).(DismissFunc)
	if !ok || fn == nil {
		store.LoggerFrom(ctx).WarnContext(ctx, "dismiss requested outside a presented child")
		return
	}
	fn(ctx)
}

// IfLet embeds an optional child feature in a parent reducer.
//
// For a child action that extract recognises:
//   - Presented while the slot holds state: the child reducer runs first, its
//     effect is lifted into the parent with a dismiss dependency bound, then
//     the parent reducer runs.
//   - Presented while the slot is empty: logged and skipped for the child;
//     the parent still runs.
//   - Dismiss: the parent runs, then the slot is cleared. A dismissal a
//     child requested through RequestDismiss names that child's state; once
//     the slot holds other state (or none) it is dropped without reaching
//     the parent.
//
// A nil child (alerts, prompts) has no logic of its own; any presented action
// clears the slot after the parent handled it.
func IfLet[S, A, C, CA any](
	parent store.Reducer[S, A],
	slot func(state *S) **C,
	extract func(action A) (Action[CA], bool),
	embed func(action Action[CA]) A,
	child store.Reducer[C, CA],
	opts ...Option,
) store.Reducer[S, A] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return store.ReducerFunc[S, A](func(state *S, action A) store.Effect[A] {
		pa, ok := extract(action)
		if !ok {
			return parent.Reduce(state, action)
		}
		ptr := slot(state)

		if pa.IsDismiss() && pa.from != nil && pa.from != any(*ptr) {
			o.logger.Debug("stale dismiss dropped", "slot", fmt.Sprintf("%T", *ptr))
			return store.None[A]()
		}

		childEffect := store.None[A]()
		childAction, presented := pa.Presented()
		if presented && child != nil {
			if *ptr == nil {
				o.logger.Warn("child action sent while child state is absent", "action", fmt.Sprintf("%T", childAction))
			} else {
				presentedState := *ptr
				effect := child.Reduce(presentedState, childAction)
				childEffect = store.MapContext(effect,
					func(a CA) A { return embed(Presented(a)) },
					func(ctx context.Context, send store.Send[A]) context.Context {
						return WithDismiss(ctx, func(ctx context.Context) {
							send(ctx, embed(dismissFrom[CA](presentedState)))
						})
					},
				)
			}
		}

		parentEffect := parent.Reduce(state, action)
		if pa.IsDismiss() || (presented && child == nil) {
			*ptr = nil
		}
		return store.Merge(childEffect, parentEffect)
	})
}

// Option configures IfLet.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes IfLet's anomaly logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
