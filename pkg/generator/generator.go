// Package generator fans one Api out across the rendering engine: every
// model renders through the model template, every method through the rpc
// method template, in parallel. Renders are pure, so workers need no
// coordination beyond the shared tree cache.
package generator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-clientgen/pkg/api"
	"github.com/goliatone/go-clientgen/pkg/engine"
)

const (
	defaultModelTemplate  = "java/model"
	defaultMethodTemplate = "java/rpcmethod"
)

// Artifact is one rendered output, named by convention from the model class
// or method code name. Writing it to disk is the caller's concern.
type Artifact struct {
	// Name identifies the artifact, e.g. "model/Event" or "method/eventsList".
	Name     string
	Template string
	Content  string
}

// Option customises a Generator.
type Option func(*Generator)

// WithEngine injects the rendering engine. Required.
func WithEngine(e *engine.Engine) Option {
	return func(g *Generator) {
		g.engine = e
	}
}

// WithModelTemplate overrides the template rendered once per model.
func WithModelTemplate(name string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(name) != "" {
			g.modelTemplate = name
		}
	}
}

// WithMethodTemplate overrides the template rendered once per method.
func WithMethodTemplate(name string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(name) != "" {
			g.methodTemplate = name
		}
	}
}

// WithWorkers bounds the render worker pool.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// Generator renders every artifact of one Api.
type Generator struct {
	engine         *engine.Engine
	modelTemplate  string
	methodTemplate string
	workers        int
}

// New constructs a Generator applying any provided options.
func New(options ...Option) (*Generator, error) {
	g := &Generator{
		modelTemplate:  defaultModelTemplate,
		methodTemplate: defaultMethodTemplate,
		workers:        runtime.NumCPU(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.engine == nil {
		return nil, fmt.Errorf("generator: engine is required")
	}
	return g, nil
}

type job struct {
	name     string
	template string
	data     map[string]any
}

// Generate renders all models and methods of the Api. A failed render aborts
// only its own artifact: the remaining artifacts are still produced and
// returned alongside the joined errors. Artifact order is deterministic.
func (g *Generator) Generate(ctx context.Context, a *api.Api) ([]Artifact, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a == nil {
		return nil, fmt.Errorf("generator: api is required")
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	var jobs []job
	for _, model := range a.Models {
		jobs = append(jobs, job{
			name:     "model/" + model.ClassName,
			template: g.modelTemplate,
			data:     map[string]any{"api": a, "model": model},
		})
	}
	for _, method := range a.Methods {
		jobs = append(jobs, job{
			name:     "method/" + method.CodeName,
			template: g.methodTemplate,
			data:     map[string]any{"api": a, "method": method},
		})
	}

	var (
		mu        sync.Mutex
		artifacts []Artifact
		failures  []error
	)

	queue := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < g.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				content, err := g.engine.Render(ctx, j.template, j.data)

				mu.Lock()
				if err != nil {
					failures = append(failures, fmt.Errorf("generator: render %s: %w", j.name, err))
				} else {
					artifacts = append(artifacts, Artifact{Name: j.name, Template: j.template, Content: content})
				}
				mu.Unlock()
			}
		}()
	}

	for _, j := range jobs {
		queue <- j
	}
	close(queue)
	wg.Wait()

	sort.Slice(artifacts, func(i, k int) bool { return artifacts[i].Name < artifacts[k].Name })
	sort.Slice(failures, func(i, k int) bool { return failures[i].Error() < failures[k].Error() })

	return artifacts, errors.Join(failures...)
}
