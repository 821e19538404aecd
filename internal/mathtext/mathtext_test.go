package mathtext

import "testing"

func TestRenderMarkupResolvesInlineMath(t *testing.T) {
	got := RenderMarkup(Terminal{}, `Find \(m\) if \(y = mx + b\)`)
	want := "Find m if y = mx + b"
	if got != want {
		t.Errorf("RenderMarkup = %q, want %q", got, want)
	}
}

func TestRenderMarkupStripsTags(t *testing.T) {
	got := RenderMarkup(Terminal{}, `<p>Solve for <b>x</b></p>`)
	if got != "Solve for x" {
		t.Errorf("RenderMarkup = %q", got)
	}
}

func TestTerminalRender(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{`2 \times 3`, "2 × 3"},
		{`x^2 + y^2`, "x² + y²"},
		{`\frac{a}{b}`, "a/b"},
		{`x \ne 0`, "x ≠ 0"},
		{`x^{10}`, "x¹⁰"},
		{`plain`, "plain"},
	}
	for _, tt := range tests {
		if got := (Terminal{}).Render(tt.expr); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}
