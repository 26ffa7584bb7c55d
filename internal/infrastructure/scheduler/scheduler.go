// Package scheduler ejecuta las tareas periódicas del bot: revisión de
// órdenes nuevas por intervalo y reporte semanal en día y hora fijos.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// JobFunc trabajo de una tarea; el contexto expira con el timeout de la tarea.
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	timeout time.Duration
	fn      JobFunc
	// next devuelve el siguiente instante de ejecución posterior a now.
	next func(now time.Time) time.Time
}

// Scheduler cada tarea corre en su propia goroutine y nunca se solapa consigo misma.
type Scheduler struct {
	jobs []job
	log  *logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New crea un scheduler sin tareas.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{log: log, now: time.Now}
}

// Every agrega una tarea por intervalo fijo (la primera corrida es tras un intervalo).
func (s *Scheduler) Every(name string, interval, timeout time.Duration, fn JobFunc) {
	s.jobs = append(s.jobs, job{
		name:    name,
		timeout: timeout,
		fn:      fn,
		next:    func(now time.Time) time.Time { return now.Add(interval) },
	})
}

// Weekly agrega una tarea semanal en el día, hora y minuto dados de loc.
func (s *Scheduler) Weekly(name string, day time.Weekday, hour, minute int, loc *time.Location, timeout time.Duration, fn JobFunc) {
	s.jobs = append(s.jobs, job{
		name:    name,
		timeout: timeout,
		fn:      fn,
		next:    func(now time.Time) time.Time { return NextWeekly(now.In(loc), day, hour, minute) },
	})
}

// NextWeekly primer instante estrictamente posterior a now que cae en day a hour:minute.
func NextWeekly(now time.Time, day time.Weekday, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	offset := (int(day) - int(now.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, offset)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// Start lanza las tareas; llamar dos veces no tiene efecto.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.log.Info().Int("jobs", len(s.jobs)).Msg("scheduler iniciado")
}

// Stop cancela las tareas y espera a que terminen las que estén corriendo.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()
	s.wg.Wait()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	defer s.wg.Done()
	for {
		now := s.now()
		wait := j.next(now).Sub(now)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_ = s.run(ctx, j)
		}
	}
}

// RunOnce ejecuta una tarea por nombre de inmediato (arranque manual y pruebas).
func (s *Scheduler) RunOnce(ctx context.Context, name string) error {
	for _, j := range s.jobs {
		if j.name == name {
			return s.run(ctx, j)
		}
	}
	return fmt.Errorf("scheduler: tarea %q no registrada", name)
}

func (s *Scheduler) run(ctx context.Context, j job) (err error) {
	runID := uuid.New().String()
	start := s.now()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scheduler: panic en %s: %v", j.name, p)
		}
		ev := s.log.Info()
		if err != nil {
			ev = s.log.Error().Err(err)
		}
		ev.Str("job", j.name).Str("run_id", runID).Dur("elapsed", s.now().Sub(start)).Msg("tarea ejecutada")
	}()
	return j.fn(ctx)
}
