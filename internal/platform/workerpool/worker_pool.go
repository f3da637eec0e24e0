// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"sqlihunt/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute runs the task. It should return when ctx is done.
	Execute(ctx context.Context) error

	// Name identifies the task in logs and results.
	Name() string
}

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task     Task
	Error    error
	Duration time.Duration
}

// Config configura el pool detrás de un Group.
type Config struct {
	// Workers caps how many tasks run at once. Zero runs every task at once.
	Workers int
	Logger  logx.Logger
}

// Group ejecuta un conjunto fijo de tareas sobre un pool de ants. Launch
// retorna en cuanto las tareas se entregan al pool; Wait es opcional.
type Group struct {
	logger  logx.Logger
	results []TaskResult
	done    chan struct{}
	wg      sync.WaitGroup
}

// Launch envía las tareas al pool y retorna sin esperarlas.
func Launch(ctx context.Context, tasks []Task, cfg Config) (*Group, error) {
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	g := &Group{
		logger:  cfg.Logger.With("component", "worker-pool"),
		results: make([]TaskResult, len(tasks)),
		done:    make(chan struct{}),
	}
	if len(tasks) == 0 {
		close(g.done)
		return g, nil
	}

	workers := cfg.Workers
	if workers <= 0 || workers > len(tasks) {
		workers = len(tasks)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	g.logger.Info("launching tasks", "total", len(tasks), "workers", workers)

	for i, task := range tasks {
		i, task := i, task
		g.wg.Add(1)
		err := pool.Submit(func() {
			defer g.wg.Done()
			g.results[i] = g.run(ctx, task)
		})
		if err != nil {
			g.results[i] = TaskResult{Task: task, Error: fmt.Errorf("submit %s: %w", task.Name(), err)}
			g.wg.Done()
		}
	}

	go func() {
		g.wg.Wait()
		pool.Release()
		close(g.done)
	}()

	return g, nil
}

func (g *Group) run(ctx context.Context, task Task) TaskResult {
	start := time.Now()
	g.logger.Debug("task started", "task", task.Name())

	err := task.Execute(ctx)
	duration := time.Since(start)

	if err != nil {
		g.logger.Warn("task failed", "task", task.Name(), "duration_ms", duration.Milliseconds(), "error", err.Error())
	} else {
		g.logger.Debug("task completed", "task", task.Name(), "duration_ms", duration.Milliseconds())
	}

	return TaskResult{Task: task, Error: err, Duration: duration}
}

// Len retorna el número de tareas del grupo.
func (g *Group) Len() int {
	return len(g.results)
}

// Done se cierra cuando todas las tareas han terminado.
func (g *Group) Done() <-chan struct{} {
	return g.done
}

// Wait bloquea hasta que todas las tareas terminan y retorna los resultados
// en orden de envío.
func (g *Group) Wait() []TaskResult {
	<-g.done
	out := make([]TaskResult, len(g.results))
	copy(out, g.results)
	return out
}
