package engine

import (
	"errors"
	"strings"
	"testing"
)

func buildPathTree(t *testing.T) *Suite {
	t.Helper()
	// root
	// ├── Billing
	// │   ├── Invoices
	// │   │   └── rounding
	// │   └── refund
	// └── smoke
	invoices := NewSuite("Invoices")
	mustAdd(t, invoices, NewCase("rounding", passing))
	billing := NewSuite("Billing")
	mustAdd(t, billing, invoices)
	mustAdd(t, billing, NewCase("refund", passing))
	root := NewSuite("root")
	mustAdd(t, root, billing)
	mustAdd(t, root, NewCase("smoke", passing))
	return root
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Billing", "Billing"},
		{"Billing/Invoices/rounding", "Billing/Invoices/rounding"},
		{"/Billing/Invoices/", "Billing/Invoices"},
		{"Billing//refund", "Billing/refund"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParsePath(tt.input).String(); got != tt.expected {
				t.Errorf("ParsePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPath_Resolve(t *testing.T) {
	root := buildPathTree(t)

	t.Run("empty path yields the root", func(t *testing.T) {
		got, err := ParsePath("").Resolve(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Test(root) {
			t.Errorf("expected the root, got %q", got.Name())
		}
	})

	t.Run("descends to a nested leaf", func(t *testing.T) {
		got, err := ParsePath("Billing/Invoices/rounding").Resolve(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name() != "rounding" || got.CountCases() != 1 {
			t.Errorf("resolved wrong node: %q", got.Name())
		}
	})

	t.Run("resolves a subtree", func(t *testing.T) {
		got, err := ParsePath("Billing").Resolve(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CountCases() != 2 {
			t.Errorf("expected the Billing subtree (2 cases), got %d", got.CountCases())
		}
	})

	t.Run("unmatched segment", func(t *testing.T) {
		_, err := ParsePath("Foo/Bar").Resolve(root)
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("expected ErrPathNotFound, got %v", err)
		}
	})

	t.Run("descent past a leaf", func(t *testing.T) {
		_, err := ParsePath("smoke/deeper").Resolve(root)
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("expected ErrPathNotFound, got %v", err)
		}
		if err == nil || !strings.Contains(err.Error(), "deeper") {
			t.Errorf("error should name the offending segment: %v", err)
		}
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		_, err := ParsePath("billing").Resolve(root)
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("expected ErrPathNotFound for wrong case, got %v", err)
		}
	})
}

func TestPath_ResolvedSubtreeRunIsScoped(t *testing.T) {
	root := buildPathTree(t)
	subtree, err := ParsePath("Billing/Invoices").Resolve(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	controller := NewController()
	listener := &recordingListener{}
	controller.AddListener(listener)

	subtree.Run(controller)

	got := strings.Join(listener.events, " ")
	want := "startSuite(Invoices) startTest(rounding) endTest(rounding) endSuite(Invoices)"
	if got != want {
		t.Errorf("subtree run leaked ancestor events:\n got: %s\nwant: %s", got, want)
	}
}
