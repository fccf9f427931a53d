package memory

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Name  string
	Count int
}

func TestGetMiss(t *testing.T) {
	t.Parallel()
	c := New()

	var dest payload
	ok, err := c.Get(context.Background(), "missing", &dest)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Error("expected miss for absent key")
	}
	if dest != (payload{}) {
		t.Errorf("dest mutated on miss: %+v", dest)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()
	c := New()
	ctx := context.Background()

	in := payload{Name: "tag", Count: 3}
	if err := c.Set(ctx, "k", in, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestCachedValuesAreIsolated(t *testing.T) {
	t.Parallel()
	c := New()
	ctx := context.Background()

	in := &payload{Name: "original"}
	if err := c.Set(ctx, "k", in, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	in.Name = "mutated after set"

	var out payload
	if ok, err := c.Get(ctx, "k", &out); err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.Name != "original" {
		t.Errorf("cache shared memory with caller: %q", out.Name)
	}
}

func TestExpiry(t *testing.T) {
	t.Parallel()
	c := New()
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "short-lived"}, time.Millisecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Error("expected expired entry to miss")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()
	c := New()
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "v"}, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var out payload
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Error("expected miss after delete")
	}

	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of absent key returned error: %v", err)
	}
}
