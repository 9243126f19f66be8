package engine

import (
	"strings"
	"sync"
	"testing"
)

func TestWaitWithTimeoutDeliversResult(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(1)

	ch := make(chan evalResult, 1)
	ch <- evalResult{errors: []EvalError{{Message: "boom"}}}

	specs, evalErrs, err := waitWithTimeout(ch, 1, &mu, &gen)
	if err != nil {
		t.Fatalf("waitWithTimeout() error: %v", err)
	}
	if specs != nil || len(evalErrs) != 1 || evalErrs[0].Message != "boom" {
		t.Errorf("waitWithTimeout() = %v, %v", specs, evalErrs)
	}
}

func TestWaitWithTimeoutDiscardsStaleGeneration(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(5) // a newer evaluation has started

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 3, &mu, &gen)
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Errorf("waitWithTimeout() error = %v, want superseded", err)
	}
}
