package utils

import (
	"strings"
	"testing"
)

func TestShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ShortID()
		if len(id) != 9 {
			t.Fatalf("长度 = %d, want 9", len(id))
		}
		for _, ch := range id {
			if !strings.ContainsRune(base36, ch) {
				t.Fatalf("非法字符 %q in %q", ch, id)
			}
		}
		if seen[id] {
			t.Fatalf("重复 id: %q", id)
		}
		seen[id] = true
	}
}
