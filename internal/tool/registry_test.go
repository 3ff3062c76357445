package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	invocations []domain.Invocation
	err         error
}

func (r *recordingObserver) Observe(ctx context.Context, inv domain.Invocation) error {
	r.invocations = append(r.invocations, inv)
	return r.err
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register(
		New("ok", "always works", map[string]any{"type": "object", "properties": map[string]any{"n": map[string]any{"type": "number"}}},
			func(ctx context.Context, args map[string]any) (any, error) { return "done", nil }),
		New("fail", "always fails", nil,
			func(ctx context.Context, args map[string]any) (any, error) { return nil, errors.New("boom") }),
	))
	return reg
}

func TestRegistryOrderAndLookup(t *testing.T) {
	reg := newTestRegistry(t)

	var ids []string
	for _, tl := range reg.List() {
		ids = append(ids, tl.ID)
	}
	assert.Equal(t, []string{"ok", "fail"}, ids)

	_, ok := reg.Get("ok")
	assert.True(t, ok)
	_, ok = reg.Get("missing")
	assert.False(t, ok)

	described := reg.Describe()
	require.Len(t, described, 2)
	assert.Equal(t, "ok", described[0].Name)
	assert.Equal(t, "always works", described[0].Description)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := newTestRegistry(t)
	err := reg.Register(
		New("new", "", nil, nil),
		New("ok", "", nil, nil),
	)
	require.Error(t, err)
	_, ok := reg.Get("new")
	assert.False(t, ok, "nothing is registered when one id clashes")
}

func TestRegistryInvoke(t *testing.T) {
	reg := newTestRegistry(t)
	obs := &recordingObserver{}
	failing := &recordingObserver{err: errors.New("disk full")}
	reg.AddObserver(obs)
	reg.AddObserver(failing)
	ctx := context.Background()

	out, err := reg.Invoke(ctx, "ok", map[string]any{"n": 1})
	require.NoError(t, err, "observer failures do not change the result")
	assert.Equal(t, "done", out)

	_, err = reg.Invoke(ctx, "ok", map[string]any{"n": "one"})
	require.Error(t, err)

	_, err = reg.Invoke(ctx, "fail", nil)
	require.EqualError(t, err, "boom")

	_, err = reg.Invoke(ctx, "missing", nil)
	require.ErrorIs(t, err, ErrToolNotFound)

	require.Len(t, obs.invocations, 3)
	assert.Equal(t, domain.OutcomeOK, obs.invocations[0].Outcome)
	assert.Equal(t, `{"n":1}`, obs.invocations[0].Arguments)
	assert.Equal(t, 4, obs.invocations[0].ResultSize)
	assert.Equal(t, domain.OutcomeInvalid, obs.invocations[1].Outcome)
	assert.Contains(t, obs.invocations[1].Error, "n: expected number, received string")
	assert.Equal(t, domain.OutcomeError, obs.invocations[2].Outcome)
	assert.Equal(t, "fail", obs.invocations[2].ToolID)
	assert.Equal(t, "{}", obs.invocations[2].Arguments)
	assert.Len(t, failing.invocations, 3)
}
