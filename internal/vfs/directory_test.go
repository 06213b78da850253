package vfs

import "testing"

func TestPackUnpackNameRoundTrip(t *testing.T) {
	cases := []string{"a", "ab", "abc", "abcd"}
	for _, name := range cases {
		packed, err := PackName(name)
		if err != nil {
			t.Fatalf("PackName(%q) error: %v", name, err)
		}
		if got := UnpackName(packed); got != name {
			t.Errorf("UnpackName(PackName(%q)) = %q", name, got)
		}
	}
}

func TestPackNameRejectsBadLength(t *testing.T) {
	for _, name := range []string{"", "abcde"} {
		if _, err := PackName(name); err == nil {
			t.Errorf("PackName(%q) should fail", name)
		}
	}
}

func TestPackNameShorterThanFourPacksLowBytes(t *testing.T) {
	packed, err := PackName("a")
	if err != nil {
		t.Fatal(err)
	}
	if packed != int32('a') {
		t.Fatalf("got %#x, want %#x", packed, int32('a'))
	}
}
