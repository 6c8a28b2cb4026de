package store

import (
	"context"
	"sync"
)

// Send delivers an action to the store that launched the effect. It returns
// only after the action has been reduced, so an operation that sends and then
// does more work observes the post-reduce state ordering.
type Send[A any] func(ctx context.Context, action A)

// Operation is one unit of asynchronous effect work.
type Operation[A any] func(ctx context.Context, send Send[A])

// Effect is a declarative description of asynchronous work returned by a
// reducer. Effects are data; the Store decides when to run them.
type Effect[A any] struct {
	ops []Operation[A]
}

// None is the empty effect.
func None[A any]() Effect[A] { return Effect[A]{} }

// Run wraps a single operation.
func Run[A any](op Operation[A]) Effect[A] {
	if op == nil {
		return Effect[A]{}
	}
	return Effect[A]{ops: []Operation[A]{op}}
}

// Emit sends one action back into the store.
func Emit[A any](action A) Effect[A] {
	return Run(func(ctx context.Context, send Send[A]) {
		send(ctx, action)
	})
}

// Merge runs effects concurrently.
func Merge[A any](effects ...Effect[A]) Effect[A] {
	var ops []Operation[A]
	for _, e := range effects {
		ops = append(ops, e.ops...)
	}
	return Effect[A]{ops: ops}
}

// Concatenate runs effects one after another. Each effect finishes, including
// every action it sent being reduced, before the next begins.
func Concatenate[A any](effects ...Effect[A]) Effect[A] {
	steps := make([]Effect[A], 0, len(effects))
	for _, e := range effects {
		if !e.IsNone() {
			steps = append(steps, e)
		}
	}
	switch len(steps) {
	case 0:
		return Effect[A]{}
	case 1:
		return steps[0]
	}
	return Run(func(ctx context.Context, send Send[A]) {
		for _, step := range steps {
			step.run(ctx, send)
		}
	})
}

// IsNone reports whether the effect does nothing.
func (e Effect[A]) IsNone() bool { return len(e.ops) == 0 }

// MapContext lifts an effect into another action space. decorate, when not
// nil, may wrap the context handed to each operation; it receives the outer
// send so it can bind values that talk to the owner, such as a dismiss
// function.
func MapContext[A, B any](e Effect[A], f func(A) B, decorate func(ctx context.Context, send Send[B]) context.Context) Effect[B] {
	if e.IsNone() {
		return Effect[B]{}
	}
	ops := make([]Operation[B], 0, len(e.ops))
	for _, op := range e.ops {
		op := op
		ops = append(ops, func(ctx context.Context, send Send[B]) {
			if decorate != nil {
				ctx = decorate(ctx, send)
			}
			op(ctx, func(ctx context.Context, action A) {
				send(ctx, f(action))
			})
		})
	}
	return Effect[B]{ops: ops}
}

// run executes every operation and waits for all of them.
func (e Effect[A]) run(ctx context.Context, send Send[A]) {
	switch len(e.ops) {
	case 0:
		return
	case 1:
		e.ops[0](ctx, send)
		return
	}
	var wg sync.WaitGroup
	for _, op := range e.ops {
		wg.Add(1)
		go func(op Operation[A]) {
			defer wg.Done()
			op(ctx, send)
		}(op)
	}
	wg.Wait()
}

// Execute runs the effect synchronously against send. Tests use it to step
// through an effect without a Store.
func (e Effect[A]) Execute(ctx context.Context, send Send[A]) {
	e.run(ctx, send)
}
