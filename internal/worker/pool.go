// Package worker implements a fixed-size tomb-supervised pool, adapted
// from the gateway's connection-handling pool.
package worker

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// Func processes one task, pulled off the pool's task channel. A
// non-nil error is fatal to the tomb the pool was started with.
type Func = func(t *tomb.Tomb, task any) error

// Pool runs up to n instances of Func concurrently over a shared task
// channel, replacing finished workers as long as the tomb is alive.
type Pool struct {
	n     int
	tasks chan any
	work  Func
}

// New builds a pool sized to run up to size tasks concurrently.
func New(size int) Pool {
	return Pool{
		tasks: make(chan any, taskChanSize),
		n:     size,
	}
}

// AddTask enqueues a task for the next free worker.
func (p *Pool) AddTask(task any) {
	p.tasks <- task
}

// Setup keeps the pool topped up at n active workers until t dies.
func (p *Pool) Setup(t *tomb.Tomb, work Func) {
	p.work = work
	log.Info().Int("workers", p.n).Msg("starting worker pool")

	active := 0
	for {
		select {
		case <-t.Dying():
			return
		default:
			if active < p.n {
				t.Go(func() error {
					err := p.worker(t)
					active--
					return err
				})
				active++
			}
		}
	}
}

func (p *Pool) worker(t *tomb.Tomb) error {
	select {
	case <-t.Dying():
		return nil
	case task := <-p.tasks:
		if err := p.work(t, task); err != nil {
			log.Error().Err(err).Msg("worker exiting on error")
			return err
		}
	}
	return nil
}
