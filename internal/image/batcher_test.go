package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeGenerator counts calls and can fail on chosen prompts.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    []string
	failFor  map[string]bool
	inactive bool
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) GenerateToFile(ctx context.Context, prompt, path string, width, height int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, prompt)
	f.mu.Unlock()

	if f.failFor[prompt] {
		return "", errors.New("backend refused")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte("fake-image:"+prompt), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeGenerator) IsActive(ctx context.Context) bool { return !f.inactive }

func TestBatcher_NilGeneratorProducesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	b := NewBatcher(nil, 3, 0, 64, 64, nil)

	prompts := []string{"a sunrise", "a harbor"}
	paths, err := b.GenerateAll(context.Background(), prompts, dir, "job1")
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	if len(paths) != len(prompts) {
		t.Fatalf("Expected %d paths, got %d", len(prompts), len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("Expected file at %s: %v", p, err)
		}
	}
}

func TestBatcher_OrderMatchesPrompts(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{}
	b := NewBatcher(gen, 3, 0, 64, 64, nil)

	prompts := []string{"one", "two", "three", "four", "five"}
	paths, err := b.GenerateAll(context.Background(), prompts, dir, "job2")
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	for i, p := range paths {
		want := fmt.Sprintf("job2-illustration-%d.png", i+1)
		if filepath.Base(p) != want {
			t.Errorf("Path %d: expected %s, got %s", i, want, filepath.Base(p))
		}
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("Reading %s: %v", p, err)
		}
		if !strings.HasSuffix(string(data), prompts[i]) {
			t.Errorf("Path %d: content does not match prompt %q", i, prompts[i])
		}
	}
}

func TestBatcher_FailedPromptGetsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{failFor: map[string]bool{"bad": true}}
	b := NewBatcher(gen, 3, 0, 64, 64, nil)

	paths, err := b.GenerateAll(context.Background(), []string{"good", "bad"}, dir, "job3")
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatalf("Reading placeholder: %v", err)
	}
	if strings.HasPrefix(string(data), "fake-image:") {
		t.Error("Expected placeholder bytes for the failing prompt")
	}
}

func TestBatcher_InactiveGeneratorSkipsBackend(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{inactive: true}
	b := NewBatcher(gen, 3, 0, 64, 64, nil)

	if _, err := b.GenerateAll(context.Background(), []string{"a"}, dir, "job4"); err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("Expected no backend calls while inactive, got %d", len(gen.calls))
	}
}

func TestBatcher_EmptyPrompts(t *testing.T) {
	b := NewBatcher(nil, 3, 0, 64, 64, nil)
	paths, err := b.GenerateAll(context.Background(), nil, t.TempDir(), "job5")
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	if paths != nil {
		t.Errorf("Expected nil paths, got %v", paths)
	}
}
