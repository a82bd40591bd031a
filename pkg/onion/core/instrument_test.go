package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageCounter struct {
	mu     sync.Mutex
	calls  map[int]int
	stages map[int]Stage
}

func newStageCounter() *stageCounter {
	return &stageCounter{calls: map[int]int{}, stages: map[int]Stage{}}
}

func (c *stageCounter) instrument() Instrument[fields, status] {
	return func(stage Stage, call Handler[fields, status]) Handler[fields, status] {
		c.mu.Lock()
		c.calls[stage.Position]++
		c.stages[stage.Position] = stage
		c.mu.Unlock()
		return call
	}
}

func TestBuild_InstrumentCalledOncePerStagePerInvocation(t *testing.T) {
	t.Parallel()

	tr := &tracer{}
	l1 := &traceLayer{name: "L1", tr: tr}
	l2 := &traceLayer{name: "L2", tr: tr}
	terminus := TerminusFunc[fields, status](func(ctx context.Context, in fields) (status, error) {
		return status{Code: 200}, nil
	})
	comp := Create[fields, status]().Use(l1).Use(l2).End(terminus)

	counter := newStageCounter()
	h := comp.Build(counter.instrument())

	for range 3 {
		out, err := h(context.Background(), fields{})
		require.NoError(t, err)
		assert.Equal(t, 200, out.Code)
	}

	assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3}, counter.calls)
	assert.Same(t, l1, counter.stages[0].Value)
	assert.Same(t, l2, counter.stages[1].Value)
	assert.Equal(t, KindLayer, counter.stages[0].Kind)
	assert.Equal(t, KindTerminus, counter.stages[2].Kind)
	assert.Equal(t, "L1", counter.stages[0].Name())
}

func TestBuild_WithoutInstrumentNeverCallsIt(t *testing.T) {
	t.Parallel()

	comp := Create[fields, status]().
		Use(&traceLayer{name: "L1", tr: &tracer{}}).
		EndFunc(func(ctx context.Context, in fields) (status, error) { return status{Code: 200}, nil })

	counter := newStageCounter()
	_, err := comp.Build(counter.instrument())(context.Background(), fields{})
	require.NoError(t, err)
	require.Equal(t, map[int]int{0: 1, 1: 1}, counter.calls)

	_, err = comp.Build()(context.Background(), fields{})
	require.NoError(t, err)
	_, err = comp.Build(nil)(context.Background(), fields{})
	require.NoError(t, err)
	_, err = comp.Invoke(context.Background(), fields{})
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 1, 1: 1}, counter.calls)
}

func TestBuild_InstrumentWrapsTerminusOfEmptyPipeline(t *testing.T) {
	t.Parallel()

	counter := newStageCounter()
	comp := Create[fields, status]().
		EndFunc(func(ctx context.Context, in fields) (status, error) { return status{Code: 201}, nil })

	out, err := comp.Build(counter.instrument())(context.Background(), fields{})
	require.NoError(t, err)
	assert.Equal(t, 201, out.Code)
	assert.Equal(t, map[int]int{0: 1}, counter.calls)
	assert.Equal(t, KindTerminus, counter.stages[0].Kind)
}

func TestBuild_InstrumentCanRewriteAroundStage(t *testing.T) {
	t.Parallel()

	comp := Create[int, int]().
		UseFunc(func(ctx context.Context, in int, next Handler[int, int]) (int, error) {
			return next(ctx, in+1)
		}).
		EndFunc(func(ctx context.Context, in int) (int, error) { return in, nil })

	// doubles every stage result on the way out
	double := Instrument[int, int](func(stage Stage, call Handler[int, int]) Handler[int, int] {
		return func(ctx context.Context, in int) (int, error) {
			out, err := call(ctx, in)
			return out * 2, err
		}
	})

	out, err := comp.Build(double)(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, out)

	plain, err := comp.Invoke(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, plain)
}

func TestBuild_InstrumentSeesFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var failed []int
	var mu sync.Mutex
	watch := Instrument[fields, status](func(stage Stage, call Handler[fields, status]) Handler[fields, status] {
		return func(ctx context.Context, in fields) (status, error) {
			out, err := call(ctx, in)
			if err != nil {
				mu.Lock()
				failed = append(failed, stage.Position)
				mu.Unlock()
			}
			return out, err
		}
	})

	comp := Create[fields, status]().
		Use(&traceLayer{name: "L1", tr: &tracer{}}).
		EndFunc(func(ctx context.Context, in fields) (status, error) { return status{}, boom })

	_, err := comp.Build(watch)(context.Background(), fields{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 0}, failed)
}

func TestBuild_SharedInvocationID(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	ids := map[uuid.UUID]int{}
	collect := Instrument[fields, status](func(stage Stage, call Handler[fields, status]) Handler[fields, status] {
		return func(ctx context.Context, in fields) (status, error) {
			id, ok := InvocationID(ctx)
			if ok {
				mu.Lock()
				ids[id]++
				mu.Unlock()
			}
			return call(ctx, in)
		}
	})

	comp := Create[fields, status]().
		Use(&traceLayer{name: "L1", tr: &tracer{}}).
		Use(&traceLayer{name: "L2", tr: &tracer{}}).
		EndFunc(func(ctx context.Context, in fields) (status, error) { return status{}, nil })
	h := comp.Build(collect)

	_, err := h(context.Background(), fields{})
	require.NoError(t, err)
	_, err = h(context.Background(), fields{})
	require.NoError(t, err)

	require.Len(t, ids, 2)
	for _, n := range ids {
		assert.Equal(t, 3, n)
	}

	fixed := uuid.New()
	ids = map[uuid.UUID]int{}
	_, err = h(WithInvocationID(context.Background(), fixed), fields{})
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{fixed: 3}, ids)
}

func TestChainInstruments_FirstIsOutermost(t *testing.T) {
	t.Parallel()

	tr := &tracer{}
	named := func(name string) Instrument[int, int] {
		return func(stage Stage, call Handler[int, int]) Handler[int, int] {
			return func(ctx context.Context, in int) (int, error) {
				tr.add(name + ":" + stage.Kind.String())
				return call(ctx, in)
			}
		}
	}

	comp := Create[int, int]().EndFunc(func(ctx context.Context, in int) (int, error) { return in, nil })
	_, err := comp.Build(named("a"), nil, named("b"))(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:terminus", "b:terminus"}, tr.all())

	assert.Nil(t, ChainInstruments[int, int]())
	assert.Nil(t, ChainInstruments[int, int](nil, nil))
}

func TestBuild_NilHandlerFromInstrumentFallsBackToStage(t *testing.T) {
	t.Parallel()

	comp := Create[int, int]().EndFunc(func(ctx context.Context, in int) (int, error) { return in * 3, nil })
	out, err := comp.Build(func(stage Stage, call Handler[int, int]) Handler[int, int] { return nil })(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 6, out)
}

func TestStage_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auth", Stage{Value: &traceLayer{name: "auth"}}.Name())
	assert.Equal(t, "*core.traceLayer", Stage{Value: &traceLayer{}}.Name())
	assert.Equal(t, "core.TerminusFunc[int,int]", Stage{Value: TerminusFunc[int, int](nil)}.Name())
	assert.Equal(t, "layer#2(auth)", Stage{Position: 2, Kind: KindLayer, Value: &traceLayer{name: "auth"}}.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
