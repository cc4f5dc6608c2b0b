package lua

import (
	"regexp"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/umputun/spamshield/lib/shield"
)

// registerHelpers exposes text helpers to scripts
func (s *Scorer) registerHelpers() {
	helpers := map[string]lua.LGFunction{
		"count_substring": countSubstring,
		"match_regex":     matchRegex,
		"contains_any":    containsAny,
		"to_lower":        toLowerCase,
		"trim":            trim,
		"split":           split,
		"starts_with":     startsWith,
		"ends_with":       endsWith,
		"clean":           clean,
		"has_url":         hasURL,
		"has_phone":       hasPhone,
		"spam_keywords":   spamKeywords,
	}
	for name, fn := range helpers {
		s.vm.SetGlobal(name, s.vm.NewFunction(fn))
	}
}

func countSubstring(l *lua.LState) int {
	l.Push(lua.LNumber(strings.Count(l.CheckString(1), l.CheckString(2))))
	return 1
}

// matchRegex returns false and the error message for an invalid pattern
func matchRegex(l *lua.LState) int {
	text, pattern := l.CheckString(1), l.CheckString(2)
	re, err := regexp.Compile(pattern)
	if err != nil {
		l.Push(lua.LFalse)
		l.Push(lua.LString("invalid pattern: " + err.Error()))
		return 2
	}
	l.Push(lua.LBool(re.MatchString(text)))
	return 1
}

// containsAny accepts a table of substrings or substrings as the rest of arguments,
// returns true and the first found substring
func containsAny(l *lua.LState) int {
	str := l.CheckString(1)
	var items []string
	if l.GetTop() >= 2 && l.Get(2).Type() == lua.LTTable {
		l.ToTable(2).ForEach(func(_, v lua.LValue) {
			if v.Type() == lua.LTString {
				items = append(items, v.String())
			}
		})
	} else {
		for i := 2; i <= l.GetTop(); i++ {
			items = append(items, l.CheckString(i))
		}
	}

	for _, item := range items {
		if strings.Contains(str, item) {
			l.Push(lua.LTrue)
			l.Push(lua.LString(item))
			return 2
		}
	}
	l.Push(lua.LFalse)
	return 1
}

func toLowerCase(l *lua.LState) int {
	l.Push(lua.LString(strings.ToLower(l.CheckString(1))))
	return 1
}

func trim(l *lua.LState) int {
	l.Push(lua.LString(strings.TrimSpace(l.CheckString(1))))
	return 1
}

func split(l *lua.LState) int {
	res := l.NewTable()
	for i, part := range strings.Split(l.CheckString(1), l.CheckString(2)) {
		res.RawSetInt(i+1, lua.LString(part))
	}
	l.Push(res)
	return 1
}

func startsWith(l *lua.LState) int {
	l.Push(lua.LBool(strings.HasPrefix(l.CheckString(1), l.CheckString(2))))
	return 1
}

func endsWith(l *lua.LState) int {
	l.Push(lua.LBool(strings.HasSuffix(l.CheckString(1), l.CheckString(2))))
	return 1
}

// clean returns the normalized text, the same the models are trained on
func clean(l *lua.LState) int {
	l.Push(lua.LString(shield.Clean(l.CheckString(1))))
	return 1
}

func hasURL(l *lua.LState) int {
	l.Push(lua.LBool(shield.HasURL(l.CheckString(1))))
	return 1
}

func hasPhone(l *lua.LState) int {
	l.Push(lua.LBool(shield.HasPhone(l.CheckString(1))))
	return 1
}

func spamKeywords(l *lua.LState) int {
	l.Push(lua.LNumber(shield.SpamKeywordCount(l.CheckString(1))))
	return 1
}
