package runtime

import (
	"sync"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("money", Float())

		got, ok := registry.Get("money")
		if !ok {
			t.Fatal("type should exist")
		}
		if got.String() != "float" {
			t.Errorf("expected float, got %s", got)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		registry := NewRegistry()

		if _, ok := registry.Get("nope"); ok {
			t.Error("expected lookup to miss")
		}
		if registry.Has("nope") {
			t.Error("Has should report false")
		}
	})

	t.Run("registration overwrites", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("id", Integer())
		registry.Register("id", UUID())

		got, _ := registry.Get("id")
		if got.String() != "uuid" {
			t.Errorf("expected the later registration to win, got %s", got)
		}
	})

	t.Run("lookups are case-sensitive", func(t *testing.T) {
		registry := DefaultRegistry()

		if !registry.Has("Any") || !registry.Has("any") {
			t.Error("both Any spellings should be seeded")
		}
		if registry.Has("Str") {
			t.Error("Str should not resolve; only str does")
		}
	})

	t.Run("default seeds", func(t *testing.T) {
		registry := DefaultRegistry()

		for _, name := range []string{
			"str", "string", "text",
			"int", "integer",
			"float",
			"bool", "boolean",
			"Any", "any",
			"datetime", "timestamp", "uuid",
		} {
			if !registry.Has(name) {
				t.Errorf("default registry missing %s", name)
			}
		}
	})

	t.Run("aliases share one type", func(t *testing.T) {
		registry := DefaultRegistry()

		str, _ := registry.Get("str")
		text, _ := registry.Get("text")
		if str != text {
			t.Error("str and text should resolve to the same type")
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("zebra", Text())
		registry.Register("alpha", Text())

		names := registry.Names()
		if len(names) != 2 || names[0] != "alpha" || names[1] != "zebra" {
			t.Errorf("unexpected names: %v", names)
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		registry := DefaultRegistry()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				registry.Register("score", Float())
			}()
			go func() {
				defer wg.Done()
				registry.Get("str")
				registry.Names()
			}()
		}
		wg.Wait()

		if !registry.Has("score") {
			t.Error("score should be registered")
		}
	})
}
