package salesforce

import "testing"

func TestEscapeLiteral(t *testing.T) {
	cases := map[string]string{
		"Acme":         "Acme",
		"O'Brien":      `O\'Brien`,
		`back\slash`:   `back\\slash`,
		`say "hi"`:     `say \"hi\"`,
		"line\nbreak":  `line\nbreak`,
		`x' OR Id!='`:  `x\' OR Id!=\'`,
		"50%_discount": "50%_discount",
	}
	for in, want := range cases {
		if got := EscapeLiteral(in); got != want {
			t.Fatalf("EscapeLiteral(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"50%_discount": `50\%\_discount`,
		"O'Brien":      `O\'Brien`,
		`a\%`:          `a\\\%`,
	}
	for in, want := range cases {
		if got := EscapeLike(in); got != want {
			t.Fatalf("EscapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEscapeSearchTerm(t *testing.T) {
	cases := map[string]string{
		"acme":          "acme",
		"acme}":         `acme\}`,
		"a-b+c":         `a\-b\+c`,
		"x} RETURNING":  `x\} RETURNING`,
		`it's "quoted"`: `it\'s \"quoted\"`,
	}
	for in, want := range cases {
		if got := EscapeSearchTerm(in); got != want {
			t.Fatalf("EscapeSearchTerm(%q) = %q, want %q", in, got, want)
		}
	}
}
