package daily

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestAddProteinAccumulates(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	total, goal, err := svc.AddProtein(ctx, "device-1", "2025-03-10", 25)
	if err != nil {
		t.Fatal(err)
	}
	if total != 25 || goal != DefaultProteinGoal {
		t.Fatalf("after first meal: total=%v goal=%v", total, goal)
	}

	total, goal, err = svc.AddProtein(ctx, "device-1", "2025-03-10", 30)
	if err != nil {
		t.Fatal(err)
	}
	if total != 55 || goal != DefaultProteinGoal {
		t.Fatalf("after second meal: total=%v goal=%v", total, goal)
	}

	// Other dates and sessions are isolated.
	total, _, _ = svc.AddProtein(ctx, "device-1", "2025-03-11", 10)
	if total != 10 {
		t.Errorf("other date total = %v, want 10", total)
	}
	total, _, _ = svc.AddProtein(ctx, "device-2", "2025-03-10", 10)
	if total != 10 {
		t.Errorf("other session total = %v, want 10", total)
	}

	first, err := svc.Get(ctx, "device-1", "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if first.ProteinTotal != 55 || first.Remaining() != 65 {
		t.Errorf("first day = %+v remaining=%v", first, first.Remaining())
	}
}

func TestGetMissingDayIsZeroedDefault(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	total, err := svc.Get(context.Background(), "device-1", "2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if total.ProteinTotal != 0 || total.ProteinGoal != DefaultProteinGoal {
		t.Errorf("missing day = %+v", total)
	}
	if total.Remaining() != DefaultProteinGoal {
		t.Errorf("remaining = %v, want %v", total.Remaining(), DefaultProteinGoal)
	}
}

func TestGetRequiresSessionAndDate(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	if _, err := svc.Get(context.Background(), "", "2025-01-01"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("missing session error = %v", err)
	}
	if _, err := svc.Get(context.Background(), "device-1", ""); !errors.Is(err, ErrBadRequest) {
		t.Errorf("missing date error = %v", err)
	}
}

func TestSetGoalOverridesDefault(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	ctx := context.Background()

	total, err := svc.SetGoal(ctx, "device-1", "2025-03-10", 150)
	if err != nil {
		t.Fatal(err)
	}
	if total.ProteinGoal != 150 || total.ProteinTotal != 0 {
		t.Fatalf("after goal override: %+v", total)
	}

	// The override survives accumulation.
	newTotal, goal, err := svc.AddProtein(ctx, "device-1", "2025-03-10", 40)
	if err != nil {
		t.Fatal(err)
	}
	if newTotal != 40 || goal != 150 {
		t.Errorf("total=%v goal=%v, want 40/150", newTotal, goal)
	}

	if _, err := svc.SetGoal(ctx, "device-1", "2025-03-10", 0); !errors.Is(err, ErrBadRequest) {
		t.Errorf("non-positive goal error = %v", err)
	}
}

func TestAddProteinConcurrentSubmissionsAllCount(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = svc.AddProtein(context.Background(), "device-1", "2025-03-10", 5)
		}()
	}
	wg.Wait()

	total, err := svc.Get(context.Background(), "device-1", "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if total.ProteinTotal != 100 {
		t.Errorf("concurrent total = %v, want 100 (no lost updates)", total.ProteinTotal)
	}
}
