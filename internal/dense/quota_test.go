package dense

import (
	"sync"
	"testing"
)

func TestQuotaBalanced(t *testing.T) {
	q, err := NewQuota(5, true, Both)
	if err != nil {
		t.Fatalf("new quota: %v", err)
	}
	// Odd total: positive class gets the extra slot.
	for i := 0; i < 3; i++ {
		if !q.Admit(1) {
			t.Fatalf("positive %d rejected", i)
		}
	}
	if q.Admit(1) {
		t.Fatal("fourth positive admitted past quota")
	}
	for i := 0; i < 2; i++ {
		if !q.Admit(0) {
			t.Fatalf("negative %d rejected", i)
		}
	}
	if q.Admit(0) {
		t.Fatal("third negative admitted past quota")
	}
	if !q.Done() {
		t.Fatal("full quota not done")
	}
	pos, neg := q.Counts()
	if pos != 3 || neg != 2 {
		t.Fatalf("counts = (%d, %d), want (3, 2)", pos, neg)
	}
}

func TestQuotaUnbalancedPool(t *testing.T) {
	q, err := NewQuota(3, false, Both)
	if err != nil {
		t.Fatalf("new quota: %v", err)
	}
	if !q.Admit(0) || !q.Admit(0) || !q.Admit(1) {
		t.Fatal("pool rejected items under the cap")
	}
	if q.Admit(1) || q.Admit(0) {
		t.Fatal("pool admitted past the cap")
	}
	if !q.Done() {
		t.Fatal("full pool not done")
	}
}

func TestQuotaOnlyModes(t *testing.T) {
	q, err := NewQuota(2, false, OnlyIntro)
	if err != nil {
		t.Fatalf("new quota: %v", err)
	}
	if q.Admit(0) {
		t.Fatal("only-intro admitted a negative")
	}
	if !q.Admit(1) || !q.Admit(1) {
		t.Fatal("only-intro rejected positives under the cap")
	}
	if q.Admit(1) {
		t.Fatal("only-intro admitted past the cap")
	}
	if !q.Done() {
		t.Fatal("only-intro quota not done")
	}

	q, err = NewQuota(2, false, OnlyNonIntro)
	if err != nil {
		t.Fatalf("new quota: %v", err)
	}
	if q.Admit(1) {
		t.Fatal("only-non-intro admitted a positive")
	}
	if !q.Admit(0) || !q.Admit(0) {
		t.Fatal("only-non-intro rejected negatives under the cap")
	}
	if !q.Done() {
		t.Fatal("only-non-intro quota not done")
	}
}

func TestQuotaRejectsBadConfig(t *testing.T) {
	if _, err := NewQuota(0, false, Both); err == nil {
		t.Fatal("nfeature=0 accepted")
	}
	if _, err := NewQuota(-1, true, OnlyIntro); err == nil {
		t.Fatal("negative nfeature accepted")
	}
}

func TestQuotaConcurrentAdmitIsExact(t *testing.T) {
	q, err := NewQuota(100, true, Both)
	if err != nil {
		t.Fatalf("new quota: %v", err)
	}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Admit(1)
				q.Admit(0)
			}
		}()
	}
	wg.Wait()
	pos, neg := q.Counts()
	if pos != 50 || neg != 50 {
		t.Fatalf("counts = (%d, %d), want (50, 50)", pos, neg)
	}
	if !q.Done() {
		t.Fatal("saturated quota not done")
	}
}
