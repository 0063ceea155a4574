package matching_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"personmatch/internal/matching"
)

func TestKeysByMode(t *testing.T) {
	rec := matching.Fields{"email": "john@example.com", "phone": "555-1234", "name": "John"}

	cases := []struct {
		name string
		mode matching.Mode
		want []string
	}{
		{"email", matching.ModeEmail, []string{"john@example.com"}},
		{"phone", matching.ModePhone, []string{"555-1234"}},
		{"either", matching.ModeEmailOrPhone, []string{"john@example.com", "555-1234"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matching.Keys(rec, tc.mode)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeysSkipsEmptyAndMissingFields(t *testing.T) {
	if keys := matching.Keys(matching.Fields{"email": "", "phone": ""}, matching.ModeEmailOrPhone); len(keys) != 0 {
		t.Fatalf("expected no keys for empty fields, got %v", keys)
	}
	if keys := matching.Keys(matching.Fields{"name": "nobody"}, matching.ModeEmailOrPhone); len(keys) != 0 {
		t.Fatalf("expected no keys for missing fields, got %v", keys)
	}
	keys := matching.Keys(matching.Fields{"email": "", "phone": "42"}, matching.ModeEmailOrPhone)
	if len(keys) != 1 || keys[0] != "42" {
		t.Fatalf("expected only the phone key, got %v", keys)
	}
}

func TestKeysAreNotNormalized(t *testing.T) {
	a := matching.Keys(matching.Fields{"email": "John@Example.com"}, matching.ModeEmail)
	b := matching.Keys(matching.Fields{"email": " john@example.com"}, matching.ModeEmail)
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected one key each, got %v and %v", a, b)
	}
	if a[0] == b[0] {
		t.Fatalf("expected case and whitespace to keep keys distinct, both were %v", a[0])
	}
	if a[0] != "John@Example.com" {
		t.Fatalf("expected raw value to be kept, got %q", a[0])
	}
}

func TestKeysShareOneNamespaceAcrossFields(t *testing.T) {
	email := matching.Keys(matching.Fields{"email": "x"}, matching.ModeEmailOrPhone)
	phone := matching.Keys(matching.Fields{"phone": "x"}, matching.ModeEmailOrPhone)
	if diff := cmp.Diff(email, phone); diff != "" {
		t.Fatalf("expected identical text to yield the same key (-email +phone):\n%s", diff)
	}
	both := matching.Keys(matching.Fields{"email": "x", "phone": "x"}, matching.ModeEmailOrPhone)
	if diff := cmp.Diff([]string{"x", "x"}, both); diff != "" {
		t.Fatalf("unexpected keys (-want +got):\n%s", diff)
	}
}

func TestKeysFieldNamesAreCaseSensitive(t *testing.T) {
	if keys := matching.Keys(matching.Fields{"Email": "a@x", "PHONE": "1"}, matching.ModeEmailOrPhone); len(keys) != 0 {
		t.Fatalf("expected no keys for differently cased headers, got %v", keys)
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range matching.Modes() {
		mode, err := matching.ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", name, err)
		}
		if mode.String() != name {
			t.Fatalf("expected round trip of %q, got %q", name, mode.String())
		}
		if !mode.Valid() {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	rejected := []string{
		"", "invalid_type", "email", "SAME_EMAIL", "same_email_and_phone",
		" same_email ", "  same_phone", "same_email_or_phone\n", "\tsame_email",
	}
	for _, bad := range rejected {
		if _, err := matching.ParseMode(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if matching.Mode(0).Valid() {
		t.Fatal("expected zero mode to be invalid")
	}
}
