package worker

import (
	"context"

	"smuverify/pkg/logx"
)

// Step — один шаг останова стенда.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
}

// Shutdown — останов в духе defer: шаги регистрируются по мере захвата
// ресурсов и выполняются в обратном порядке. Каждый шаг выполняется
// независимо от исхода остальных, сбои уходят только в лог и наружу
// не поднимаются.
type Shutdown struct {
	steps []Step
}

func (s *Shutdown) Add(name string, do func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{Name: name, Do: do})
}

// Run выполняет все шаги на контексте без отмены: останов обязан
// доработать и после Ctrl+C. Возвращает число непрошедших шагов.
func (s *Shutdown) Run(ctx context.Context) int {
	ctx = context.WithoutCancel(ctx)

	failed := 0

	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]

		if err := step.Do(ctx); err != nil {
			failed++
			logger(ctx).Error("shutdown step failed", logx.FieldStep, step.Name, logx.Error(err))

			continue
		}

		logger(ctx).Debug("shutdown step done", logx.FieldStep, step.Name)
	}

	s.steps = nil

	return failed
}
