package runtime

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// run accumulates the trace of one execution.
type run struct {
	ctx    context.Context
	engine *Engine
	result domain.ProcessResult
}

func (r *run) record(position int, rec domain.TraceRecord) error {
	if r.engine.limits.TraceFull(len(r.result.Trace)) {
		return fmt.Errorf("%w: more than %d records", domain.ErrTraceOverflow, r.engine.limits.MaxTraceRecords)
	}
	r.result.Trace = append(r.result.Trace, rec)

	if r.engine.hooks.OnStep != nil {
		r.engine.hooks.OnStep(r.ctx, &domain.StepEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventStep,
				Automaton: r.engine.name,
			},
			Position: position,
			Record:   rec,
		})
	}
	return nil
}

// ProcessString runs the automaton over input, one rune at a time.
//
// The cursor is reset first, so results never depend on earlier calls. A symbol
// outside the alphabet or a missing transition halts the run with a rejection;
// both are reported in the result, not as errors. Errors are reserved for an
// unbuilt automaton and for trace overflow.
//
// ctx is handed to lifecycle hooks only; a run always terminates in time linear
// in len(input).
func (e *Engine) ProcessString(ctx context.Context, input string) (*domain.ProcessResult, error) {
	if err := e.Reset(); err != nil {
		return nil, err
	}

	started := time.Now()
	inputLen := utf8.RuneCountInString(input)
	r := &run{
		ctx:    ctx,
		engine: e,
		result: domain.ProcessResult{
			Halt:       domain.HaltCompleted,
			FinalState: e.current,
		},
	}

	if err := r.record(-1, domain.StartRecord(e.states.get(e.current))); err != nil {
		return nil, err
	}

	pos := 0
	for _, sym := range input {
		at := e.states.get(e.current)

		if !e.alphabet.contains(sym) {
			r.result.Halt = domain.HaltUnknownSymbol
			if err := r.record(pos, domain.UnknownSymbolRecord(sym, at)); err != nil {
				return nil, err
			}
			return e.finish(r, inputLen, started), nil
		}

		ti, ok := e.transitions.find(e.current, sym)
		if !ok {
			r.result.Halt = domain.HaltNoTransition
			if err := r.record(pos, domain.NoTransitionRecord(sym, at)); err != nil {
				return nil, err
			}
			return e.finish(r, inputLen, started), nil
		}

		e.current = e.transitions.get(ti).To
		r.result.Consumed++
		if err := r.record(pos, domain.ReadRecord(sym, at, e.states.get(e.current))); err != nil {
			return nil, err
		}
		pos++
	}

	final := e.states.get(e.current)
	r.result.Accepted = final.Accepting
	if err := r.record(-1, domain.VerdictRecord(final, final.Accepting)); err != nil {
		return nil, err
	}
	return e.finish(r, inputLen, started), nil
}

func (e *Engine) finish(r *run, inputLen int, started time.Time) *domain.ProcessResult {
	r.result.FinalState = e.current
	res := r.result

	e.logger.Debug("run finished",
		"accepted", res.Accepted,
		"halt", string(res.Halt),
		"consumed", res.Consumed,
		"trace_len", res.Trace.Len(),
	)

	if e.hooks.OnHalt != nil {
		// Hooks get their own copy of the trace; the caller's result stays intact.
		hookRes := res
		hookRes.Trace = append(domain.Trace(nil), res.Trace...)
		e.hooks.OnHalt(r.ctx, &domain.RunEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventHalt,
				Automaton: e.name,
			},
			InputLength: inputLen,
			Result:      hookRes,
			Duration:    time.Since(started),
		})
	}
	return &res
}
