package vars

import (
	"testing"
	"time"
)

func TestFirstNonZero(t *testing.T) {
	if n := FirstNonZero(0, 0, 3, 4); n != 3 {
		t.Fatalf("got %d", n)
	}
	if s := FirstNonZero("", ""); s != "" {
		t.Fatalf("got %q", s)
	}
	if d := FirstNonZero(0, time.Second); d != time.Second {
		t.Fatalf("got %v", d)
	}
}

func TestStrToBool(t *testing.T) {
	for str, want := range map[string]bool{
		"true": true,
		"Y":    true,
		"no":   false,
		"what": false,
	} {
		if got := StrToBool(str); got != want {
			t.Fatalf("%s: got %v", str, got)
		}
	}
}
