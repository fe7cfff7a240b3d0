package provider

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter struct{ id int }

func TestResolve_FirstRegisteredWins(t *testing.T) {
	r := New()
	r.Register(Annotations, "first", func() (any, error) { return &greeter{id: 1}, nil })
	r.Register(Annotations, "second", func() (any, error) { return &greeter{id: 2}, nil })

	g, err := Get[*greeter](r, Annotations)
	require.NoError(t, err)
	assert.Equal(t, 1, g.id)
	assert.Equal(t, []string{"first", "second"}, r.Names(Annotations))
}

func TestResolve_Preferred(t *testing.T) {
	r := New()
	r.Register(TypeModel, "syntax", func() (any, error) { return &greeter{id: 1}, nil })
	r.Register(TypeModel, "packages", func() (any, error) { return &greeter{id: 2}, nil })
	r.Prefer(TypeModel, "packages")

	g, err := Get[*greeter](r, TypeModel)
	require.NoError(t, err)
	assert.Equal(t, 2, g.id)
}

func TestResolve_NotFound(t *testing.T) {
	t.Run("No registrations", func(t *testing.T) {
		r := New()
		_, err := r.Resolve(Diagnostics)

		var nf *ServiceNotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, Diagnostics, nf.Capability)
		assert.Contains(t, err.Error(), "diagnostics")
	})

	t.Run("Unknown preference", func(t *testing.T) {
		r := New()
		r.Register(Diagnostics, "slog", func() (any, error) { return &greeter{}, nil })
		r.Prefer(Diagnostics, "nope")
		_, err := r.Resolve(Diagnostics)

		var nf *ServiceNotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "nope", nf.Name)
	})
}

func TestResolve_CachesInstanceAndError(t *testing.T) {
	r := New()
	calls := 0
	r.Register(Annotations, "broken", func() (any, error) {
		calls++
		return nil, errors.New("boom")
	})

	_, err1 := r.Resolve(Annotations)
	_, err2 := r.Resolve(Annotations)
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, calls)
}

func TestResolve_ConcurrentFirstUse(t *testing.T) {
	r := New()
	var calls atomic.Int32
	r.Register(TypeModel, "syntax", func() (any, error) {
		calls.Add(1)
		return &greeter{id: 7}, nil
	})

	const n = 64
	results := make([]*greeter, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			g, err := Get[*greeter](r, TypeModel)
			assert.NoError(t, err)
			results[i] = g
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, g := range results {
		assert.Same(t, results[0], g)
	}
}

func TestGet_WrongType(t *testing.T) {
	r := New()
	r.Register(Annotations, "str", func() (any, error) { return "not a greeter", nil })

	_, err := Get[*greeter](r, Annotations)
	assert.ErrorContains(t, err, "unexpected type string")
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	r.Register(Annotations, "a", func() (any, error) { return nil, nil })
	assert.Panics(t, func() {
		r.Register(Annotations, "a", func() (any, error) { return nil, nil })
	})
}
