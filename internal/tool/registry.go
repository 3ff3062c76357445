package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/schema"
)

var ErrToolNotFound = errors.New("tool not found")

// Observer receives a record of every invocation. Observers are sinks: their
// errors are logged and never change the result.
type Observer interface {
	Observe(ctx context.Context, inv domain.Invocation) error
}

// Registry holds tools in registration order.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]*Tool
	order     []string
	observers []Observer
	logger    *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger.With("component", "tools"),
	}
}

// Register adds tools. A duplicate ID is an error and nothing is added.
func (r *Registry) Register(tools ...*Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tools {
		if _, exists := r.tools[t.ID]; exists {
			return fmt.Errorf("tool %q already registered", t.ID)
		}
	}
	for _, t := range tools {
		r.tools[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return nil
}

func (r *Registry) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the tools in registration order.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// Describe returns the host-neutral descriptors of every tool.
func (r *Registry) Describe() []domain.Tool {
	tools := r.List()
	out := make([]domain.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, domain.Tool{Name: t.ID, Description: t.Description, InputSchema: t.InputSchema})
	}
	return out
}

// Invoke runs the named tool and reports the call to every observer.
func (r *Registry) Invoke(ctx context.Context, name string, input any) (any, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	start := time.Now()
	result, err := t.Execute(ctx, input)
	inv := domain.Invocation{
		ToolID:    name,
		Arguments: encodeArguments(input),
		Outcome:   domain.OutcomeOK,
		Duration:  time.Since(start),
		CreatedAt: start,
	}

	switch {
	case schema.IsValidationError(err):
		inv.Outcome = domain.OutcomeInvalid
		inv.Error = err.Error()
	case err != nil:
		inv.Outcome = domain.OutcomeError
		inv.Error = err.Error()
	default:
		if text, ferr := FormatResult(result); ferr == nil {
			inv.ResultSize = len(text)
		}
	}

	r.logger.Info("tool invoked", "tool", name, "outcome", inv.Outcome, "duration", inv.Duration, "result_size", inv.ResultSize)
	r.notify(ctx, inv)

	return result, err
}

func (r *Registry) notify(ctx context.Context, inv domain.Invocation) {
	r.mu.RLock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.RUnlock()

	for _, o := range observers {
		if err := o.Observe(ctx, inv); err != nil {
			r.logger.Warn("invocation observer failed", "tool", inv.ToolID, "error", err)
		}
	}
}

func encodeArguments(input any) string {
	switch v := input.(type) {
	case nil:
		return "{}"
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	}
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}
