package lua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestHelpers(t *testing.T) {
	s := NewScorer()
	defer s.Close()

	tests := []struct {
		name string
		code string
		want lua.LValue
	}{
		{"count_substring", `return count_substring("a-b-c", "-")`, lua.LNumber(2)},
		{"match_regex", `return match_regex("call 555", "\\d+")`, lua.LTrue},
		{"match_regex no match", `return match_regex("call me", "^\\d+$")`, lua.LFalse},
		{"match_regex invalid", `local ok, msg = match_regex("x", "[") return ok`, lua.LFalse},
		{"contains_any table", `local ok, w = contains_any("free prize", {"cash", "prize"}) return w`, lua.LString("prize")},
		{"contains_any args", `return contains_any("hello", "cash", "gift")`, lua.LFalse},
		{"to_lower", `return to_lower("FREE")`, lua.LString("free")},
		{"trim", `return trim("  x  ")`, lua.LString("x")},
		{"split", `local p = split("a,b,c", ",") return p[2]`, lua.LString("b")},
		{"starts_with", `return starts_with("hello", "he")`, lua.LTrue},
		{"ends_with", `return ends_with("hello", "he")`, lua.LFalse},
		{"clean", `return clean("WIN $$$ now http://x.y")`, lua.LString("win now")},
		{"has_url", `return has_url("see https://example.com")`, lua.LTrue},
		{"has_phone", `return has_phone("call 555-123-4567")`, lua.LTrue},
		{"spam_keywords", `return spam_keywords("Claim your FREE prize")`, lua.LNumber(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.mu.Lock()
			defer s.mu.Unlock()
			require.NoError(t, s.vm.DoString(tt.code))
			got := s.vm.Get(-1)
			s.vm.Pop(1)
			assert.Equal(t, tt.want, got)
		})
	}
}
