package clean

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"empty", "", ""},
		{"collapses space runs", "too   many    spaces", "too many spaces"},
		{"keeps paragraph breaks", "first para\n\n\n\nsecond para", "first para\n\nsecond para"},
		{"trims space around newlines", "line one   \n   line two", "line one\nline two"},
		{"unescapes entities", "Terms &amp; Conditions&nbsp;apply", "Terms & Conditions apply"},
		{"strips markup", "<p>Fiscal surety is <b>required</b>.</p>", "Fiscal surety is required."},
		{"space before punctuation", "required , per code ;", "required, per code;"},
		{"spacing inside brackets", "( see LDC 25-8-514 )", "(see LDC 25-8-514)"},
		{"table cells", "col a   |col b|  col c", "col a | col b | col c"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_PlainLessThanSurvives(t *testing.T) {
	// A bare comparison is not markup; the text content must survive.
	in := "value < threshold means compliant"
	if got := Normalize(in); got != in {
		t.Errorf("Normalize(%q) = %q", in, got)
	}
}
