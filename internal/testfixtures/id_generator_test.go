package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator(100)

	for i, want := range []int64{101, 102, 103} {
		if got := gen.Next(); got != want {
			t.Fatalf("expected call %d to return %d, got %d", i, want, got)
		}
	}
}

func TestIDGeneratorSetCounter(t *testing.T) {
	gen := NewIDGenerator(0)
	gen.Next()
	gen.SetCounter(500)

	if got := gen.Next(); got != 501 {
		t.Fatalf("expected counter reset, got %d", got)
	}
}

func TestIDGeneratorNextFunc(t *testing.T) {
	gen := NewIDGenerator(0)
	next := gen.NextFunc()

	if got := next(); got != 1 {
		t.Fatalf("expected injected function to draw from the sequence, got %d", got)
	}
	if got := gen.Next(); got != 2 {
		t.Fatalf("expected shared counter, got %d", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != 0 {
		t.Fatalf("expected zero fallback for nil generator, got %d", got)
	}
}
