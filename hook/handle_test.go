package hook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hfz-r/piranha.core/hook"
)

func TestHandleForwardsRegistrations(t *testing.T) {
	t.Parallel()
	r := hook.NewRegistry()
	h := hook.For[article](r)
	ctx := context.Background()

	var fired []string
	h.OnLoad(func(_ context.Context, m *article) error { fired = append(fired, "load"); return nil })
	h.OnBeforeSave(func(_ context.Context, m *article) error { fired = append(fired, "before_save"); return nil })
	h.OnAfterSave(func(_ context.Context, m *article) error { fired = append(fired, "after_save"); return nil })
	h.OnBeforeDelete(func(_ context.Context, m *article) error { fired = append(fired, "before_delete"); return nil })
	h.OnAfterDelete(func(_ context.Context, m *article) error { fired = append(fired, "after_delete"); return nil })

	// Registrations through the handle are visible to the registry-level
	// invocation functions and vice versa.
	m := &article{}
	steps := []struct {
		name string
		fn   func() error
	}{
		{"load", func() error { return hook.Load(ctx, r, m) }},
		{"before_save", func() error { return h.BeforeSave(ctx, m) }},
		{"after_save", func() error { return h.AfterSave(ctx, m) }},
		{"before_delete", func() error { return hook.BeforeDelete(ctx, r, m) }},
		{"after_delete", func() error { return h.AfterDelete(ctx, m) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s returned error: %v", s.name, err)
		}
	}

	want := []string{"load", "before_save", "after_save", "before_delete", "after_delete"}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("step %d: fired %q, want %q", i, fired[i], want[i])
		}
	}
}

func TestHandleClear(t *testing.T) {
	t.Parallel()
	r := hook.NewRegistry()
	h := hook.For[article](r)

	calls := 0
	h.OnLoad(func(_ context.Context, m *article) error { calls++; return nil })
	h.Clear()

	if err := h.Load(context.Background(), &article{}); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if calls != 0 {
		t.Errorf("hooks fired %d times after Clear, want 0", calls)
	}
}

func TestHandleIsBoundToOneKind(t *testing.T) {
	t.Parallel()
	r := hook.NewRegistry()
	articles := hook.For[article](r)
	comments := hook.For[comment](r)

	fired := false
	articles.OnBeforeSave(func(_ context.Context, m *article) error { fired = true; return nil })

	if err := comments.BeforeSave(context.Background(), &comment{}); err != nil {
		t.Fatalf("BeforeSave returned error: %v", err)
	}
	if fired {
		t.Error("article hook fired via the comment handle")
	}
}

func TestHandlePropagatesErrors(t *testing.T) {
	t.Parallel()
	r := hook.NewRegistry()
	h := hook.For[article](r)

	errStop := errors.New("stop")
	h.OnBeforeDelete(func(_ context.Context, m *article) error { return errStop })

	if err := h.BeforeDelete(context.Background(), &article{}); !errors.Is(err, errStop) {
		t.Errorf("got error %v, want %v", err, errStop)
	}
}
