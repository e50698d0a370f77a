package submit

import (
	"context"
	"sync"

	"skillbridge/internal/form"
)

// Registry keeps the Workflow of every form instance that has a request
// working on it. Instances are forgotten once no request holds them.
type Registry struct {
	mu        sync.Mutex
	workflows map[string]*entry
}

type entry struct {
	workflow *Workflow
	holders  int
}

func NewRegistry() *Registry {
	return &Registry{workflows: make(map[string]*entry)}
}

// Submit runs the Workflow of the form instance id. An empty id gets a
// workflow of its own and is never guarded against duplicates.
func (r *Registry) Submit(ctx context.Context, id string, validate func() form.Errors, send func(context.Context) error) (Result, error) {
	if id == "" {
		return (&Workflow{}).Submit(ctx, validate, send)
	}

	w := r.acquire(id)
	defer r.release(id)
	return w.Submit(ctx, validate, send)
}

func (r *Registry) acquire(id string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.workflows[id]
	if !ok {
		e = &entry{workflow: &Workflow{}}
		r.workflows[id] = e
	}
	e.holders++
	return e.workflow
}

func (r *Registry) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.workflows[id]
	if !ok {
		return
	}
	e.holders--
	if e.holders == 0 {
		delete(r.workflows, id)
	}
}

// Pending reports how many form instances are being submitted.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workflows)
}
