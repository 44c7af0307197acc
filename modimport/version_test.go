package modimport

import "testing"

func TestCheckVersionSameMajor(t *testing.T) {
	if err := CheckVersion("0.1.0"); err != nil {
		t.Fatalf("expected same-major version to pass, got: %s", err)
	}
}

func TestCheckVersionMajorMismatch(t *testing.T) {
	if err := CheckVersion("1.0.0"); err == nil {
		t.Fatalf("expected a major version mismatch against %s", "0.1.0")
	}
}

func TestCheckVersionInvalid(t *testing.T) {
	if err := CheckVersion("not-a-version"); err == nil {
		t.Fatalf("expected an error for an unparseable version string")
	}
}

func TestCanonicalize(t *testing.T) {
	cases := map[string]string{
		"0.1.0":  "v0.1.0",
		"v0.1.0": "v0.1.0",
	}
	for in, want := range cases {
		if got := canonicalize(in); got != want {
			t.Errorf("canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}
