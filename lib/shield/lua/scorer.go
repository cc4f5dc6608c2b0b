// Package lua provides Lua scripted scorers for the feature extractor.
// A script defines a "sentiment" function returning a number in [-1, 1] and/or
// a "grammar_errors" function returning a number of errors. Both take the message text.
package lua

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoScript returned if no loaded script provides the requested scorer
var ErrNoScript = errors.New("no lua scorer loaded")

const (
	sentimentFn = "sentiment"
	grammarFn   = "grammar_errors"
)

// Scorer implements shield.SentimentScorer and shield.GrammarScorer with Lua scripts.
// All scripts share one VM, calls are serialized.
type Scorer struct {
	mu      sync.Mutex
	vm      *lua.LState
	scripts map[string]script
}

type script struct {
	sentiment *lua.LFunction
	grammar   *lua.LFunction
}

// NewScorer makes a Scorer with helper functions registered
func NewScorer() *Scorer {
	res := &Scorer{vm: lua.NewState(), scripts: map[string]script{}}
	res.registerHelpers()
	return res
}

// LoadScript loads a Lua script and registers its scorer functions under the file name without extension.
// Loading a script with the same name replaces the previous one.
func (s *Scorer) LoadScript(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// reset globals, otherwise a script without a function inherits the one of the previous script
	s.vm.SetGlobal(sentimentFn, lua.LNil)
	s.vm.SetGlobal(grammarFn, lua.LNil)

	if err := s.vm.DoFile(path); err != nil {
		return fmt.Errorf("failed to load lua script: %w", err)
	}

	var scr script
	if fn, ok := s.vm.GetGlobal(sentimentFn).(*lua.LFunction); ok {
		scr.sentiment = fn
	}
	if fn, ok := s.vm.GetGlobal(grammarFn).(*lua.LFunction); ok {
		scr.grammar = fn
	}
	if scr.sentiment == nil && scr.grammar == nil {
		return fmt.Errorf("script must define %q or %q function", sentimentFn, grammarFn)
	}
	s.scripts[scriptName(path)] = scr
	return nil
}

// ReloadScript loads the script again, the old version kept if the new one fails
func (s *Scorer) ReloadScript(path string) error {
	return s.LoadScript(path)
}

// RemoveScript unregisters the script loaded from path
func (s *Scorer) RemoveScript(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scripts, scriptName(path))
}

// LoadDirectory loads all *.lua scripts from the directory
func (s *Scorer) LoadDirectory(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("failed to list lua scripts in %s: %w", dir, err)
	}
	for _, file := range files {
		if err := s.LoadScript(file); err != nil {
			return fmt.Errorf("failed to load script %s: %w", file, err)
		}
	}
	return nil
}

// Scripts returns sorted names of loaded scripts
func (s *Scorer) Scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]string, 0, len(s.scripts))
	for name := range s.scripts {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Sentiment returns the mean of all script sentiments, clamped to [-1, 1]
func (s *Scorer) Sentiment(ctx context.Context, text string) (float64, error) {
	vals, err := s.call(ctx, text, func(scr script) *lua.LFunction { return scr.sentiment })
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return math.Max(-1, math.Min(1, sum/float64(len(vals)))), nil
}

// GrammarErrors returns the sum of grammar errors reported by all scripts, negative values ignored
func (s *Scorer) GrammarErrors(ctx context.Context, text string) (int, error) {
	vals, err := s.call(ctx, text, func(scr script) *lua.LFunction { return scr.grammar })
	if err != nil {
		return 0, err
	}
	res := 0
	for _, v := range vals {
		if v > 0 {
			res += int(v)
		}
	}
	return res, nil
}

// call runs the selected function of every script in name order and collects numeric results
func (s *Scorer) call(ctx context.Context, text string, pick func(script) *lua.LFunction) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.scripts))
	for name, scr := range s.scripts {
		if pick(scr) != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoScript
	}
	sort.Strings(names)

	s.vm.SetContext(ctx)
	defer s.vm.RemoveContext()

	res := make([]float64, 0, len(names))
	for _, name := range names {
		if err := s.vm.CallByParam(lua.P{Fn: pick(s.scripts[name]), NRet: 1, Protect: true}, lua.LString(text)); err != nil {
			return nil, fmt.Errorf("error executing lua script %s: %w", name, err)
		}
		ret := s.vm.Get(-1)
		s.vm.Pop(1)
		num, ok := ret.(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("lua script %s returned %s, number expected", name, ret.Type())
		}
		res = append(res, float64(num))
	}
	return res, nil
}

// Close releases the VM
func (s *Scorer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vm.Close()
}

func scriptName(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
