package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks logs every halted run at info level and every trace record at debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "trace",
				"automaton", e.Automaton,
				"position", e.Position,
				"kind", string(e.Record.Kind),
				"message", e.Record.Message,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_halted",
				"automaton", e.Automaton,
				"accepted", e.Result.Accepted,
				"halt", string(e.Result.Halt),
				"input_length", e.InputLength,
				"consumed", e.Result.Consumed,
				"duration", e.Duration,
			)
		},
	}
}

// Chain combines hooks; each callback fires in argument order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var steps []func(context.Context, *domain.StepEvent)
	var halts []func(context.Context, *domain.RunEvent)
	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnHalt != nil {
			halts = append(halts, h.OnHalt)
		}
	}

	var out domain.LifecycleHooks
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(halts) > 0 {
		out.OnHalt = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range halts {
				fn(ctx, e)
			}
		}
	}
	return out
}
