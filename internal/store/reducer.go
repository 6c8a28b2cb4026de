package store

// Reducer transforms state in place for one action and returns the effect to
// run afterwards. Reducers must not perform I/O, spawn goroutines or read
// clocks; anything like that belongs in the returned effect.
type Reducer[S, A any] interface {
	Reduce(state *S, action A) Effect[A]
}

// ReducerFunc adapts a function to Reducer.
type ReducerFunc[S, A any] func(state *S, action A) Effect[A]

func (f ReducerFunc[S, A]) Reduce(state *S, action A) Effect[A] { return f(state, action) }
