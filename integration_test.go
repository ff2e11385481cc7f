//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
	"github.com/mattsolo1/grove-topics/pkg/service"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	notesDir := filepath.Join(tmpDir, "notes")
	templateDir := filepath.Join(tmpDir, "template")
	argsFile := filepath.Join(tmpDir, "launched")
	script := filepath.Join(tmpDir, "startup.sh")

	for _, dir := range []string{filepath.Join(notesDir, "math", "calculus"), filepath.Join(templateDir, "[topicname]")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	files := map[string]string{
		filepath.Join(templateDir, "[topicname].md"):                 "# notes\n",
		filepath.Join(templateDir, "[topicname]", "[topicname].tex"): "",
		filepath.Join(templateDir, "Makefile"):                       "all:\n",
		script:                                                       "#!/bin/sh\necho \"$1\" >> \"" + argsFile + "\"\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0755); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	newService := func(t *testing.T, sel selector.Selector) *service.Service {
		svc, err := service.New(&service.Config{
			NotesDir:      notesDir,
			TemplateDir:   templateDir,
			StartupScript: script,
		}, service.WithSelector(sel))
		if err != nil {
			t.Fatalf("Failed to create service: %v", err)
		}
		return svc
	}

	waitForLines := func(t *testing.T, n int) []byte {
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			data, _ := os.ReadFile(argsFile)
			if lines := countLines(data); lines >= n {
				return data
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("startup script did not run %d time(s)", n)
		return nil
	}

	// Test 1: Open an existing topic
	t.Run("OpenExisting", func(t *testing.T) {
		sel := selector.NewScripted(selector.Reply("math"), selector.Reply("calculus"))
		res, err := newService(t, sel).Open(context.Background())
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if res.Topic.Created {
			t.Error("Existing topic reported as created")
		}
		data := waitForLines(t, 1)
		if want := filepath.Join(notesDir, "math", "calculus") + "\n"; string(data) != want {
			t.Errorf("Startup script got %q, want %q", data, want)
		}
	})

	// Test 2: Create a subject and a topic
	t.Run("CreateNew", func(t *testing.T) {
		sel := selector.NewScripted(
			selector.Reply("physics"), selector.Reply(selector.AnswerYes),
			selector.Reply("optics"), selector.Reply(selector.AnswerYes),
		)
		res, err := newService(t, sel).Open(context.Background())
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}

		topic := filepath.Join(notesDir, "physics", "optics")
		if res.Topic.Path != topic {
			t.Errorf("Topic path = %s, want %s", res.Topic.Path, topic)
		}
		for _, p := range []string{
			filepath.Join(topic, "optics.md"),
			filepath.Join(topic, "Makefile"),
			filepath.Join(topic, "optics", "[topicname].tex"),
		} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("Expected %s: %v", p, err)
			}
		}
		waitForLines(t, 2)
	})

	// Test 3: Invalid configuration never prompts
	t.Run("InvalidConfig", func(t *testing.T) {
		sel := selector.NewScripted()
		svc, err := service.New(&service.Config{
			NotesDir:      filepath.Join(tmpDir, "missing"),
			TemplateDir:   script,
			StartupScript: notesDir,
		}, service.WithSelector(sel))
		if err != nil {
			t.Fatalf("Failed to create service: %v", err)
		}

		_, err = svc.Open(context.Background())
		if !models.IsKind(err, models.ConfigError) {
			t.Fatalf("Expected config error, got %v", err)
		}
		if len(sel.Calls) != 0 {
			t.Errorf("Expected no prompts, got %d", len(sel.Calls))
		}
	})
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
