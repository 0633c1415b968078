package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"focusboard/internal/storage/sqlite"
)

func runCLI(t *testing.T, stdin string, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// cliEnv runs commands against one sqlite file.
type cliEnv struct {
	t  *testing.T
	db string
}

func newCLIEnv(t *testing.T) *cliEnv {
	return &cliEnv{t: t, db: filepath.Join(t.TempDir(), "focusboard.db")}
}

func (e *cliEnv) run(stdin string, args ...string) ([]byte, []byte, error) {
	e.t.Helper()
	return runCLI(e.t, stdin, append([]string{"--db", e.db, "--backend", "sqlite"}, args...))
}

func (e *cliEnv) mustRun(args ...string) any {
	e.t.Helper()
	stdout, stderr, err := e.run("", args...)
	if err != nil {
		e.t.Fatalf("focusboard %v failed: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		e.t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"]
	if !ok {
		e.t.Fatalf("expected data envelope, got %s", stdout)
	}
	return data
}

func TestBoardsLifecycle(t *testing.T) {
	e := newCLIEnv(t)

	boards := e.mustRun("boards", "list").([]any)
	if len(boards) != 1 {
		t.Fatalf("boards = %v", boards)
	}
	main := boards[0].(map[string]any)
	if main["name"] != "Main Board" || main["active"] != true {
		t.Fatalf("default board = %v", main)
	}
	mainID := main["id"].(string)

	side := e.mustRun("boards", "create", "--name", "Side").(map[string]any)
	sideID := side["id"].(string)
	boards = e.mustRun("boards", "list").([]any)
	if len(boards) != 2 || boards[1].(map[string]any)["active"] != true {
		t.Fatalf("created board should be active: %v", boards)
	}

	renamed := e.mustRun("boards", "rename", sideID, "--name", "Errands").(map[string]any)
	if renamed["name"] != "Errands" {
		t.Fatalf("renamed = %v", renamed)
	}

	if _, _, err := e.run("n\n", "boards", "delete", mainID); err == nil {
		t.Fatalf("declined delete should fail")
	}
	if _, _, err := e.run("y\n", "boards", "delete", mainID); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if _, stderr, err := e.run("", "boards", "delete", sideID, "--yes"); err == nil || !strings.Contains(string(stderr), "last remaining board") {
		t.Fatalf("deleting the last board should fail, got %v %s", err, stderr)
	}
}

func TestTasksAndDrops(t *testing.T) {
	e := newCLIEnv(t)

	if _, _, err := e.run("", "tasks", "add", "--title", "  "); err == nil {
		t.Fatalf("blank title should be rejected")
	}

	parent := e.mustRun("tasks", "add", "--title", "Plan launch", "--impact", "high", "--effort", "high").(map[string]any)
	child := e.mustRun("tasks", "add", "--title", "Book venue").(map[string]any)
	parentID, childID := parent["id"].(string), child["id"].(string)
	if child["status"] != "todo" || child["effort"] != "low" || child["impact"] != "low" {
		t.Fatalf("defaults not applied: %v", child)
	}

	res := e.mustRun("drop", `{"id":"`+childID+`","type":"task","parentId":null}`, "--on", "task", "--target", parentID).(map[string]any)
	if res["applied"] != true {
		t.Fatalf("demote = %v", res)
	}

	items := e.mustRun("tasks", "list").([]any)
	if len(items) != 1 {
		t.Fatalf("items after demote = %v", items)
	}
	item := items[0].(map[string]any)
	if item["subtaskCount"] != float64(1) || item["categoryLabel"] != "Major Project" {
		t.Fatalf("item = %v", item)
	}

	toggled := e.mustRun("subtasks", "toggle", parentID, childID).(map[string]any)
	if toggled["completed"] != true {
		t.Fatalf("toggle = %v", toggled)
	}
	described := e.mustRun("subtasks", "describe", parentID, childID, "--text", "Call on Monday").(map[string]any)
	if described["description"] != "Call on Monday" {
		t.Fatalf("describe = %v", described)
	}

	stdout, stderr, err := e.run(`{"id":"`+childID+`","type":"subtask","parentId":"`+parentID+`"}`,
		"drop", "-", "--on", "column", "--target", "inprogress")
	if err != nil {
		t.Fatalf("promote: %v %s", err, stderr)
	}
	if !strings.Contains(string(stdout), `"applied":true`) {
		t.Fatalf("promote output = %s", stdout)
	}
	promoted := e.mustRun("tasks", "show", childID).(map[string]any)
	if promoted["status"] != "inprogress" || promoted["title"] != "Book venue" {
		t.Fatalf("promoted = %v", promoted)
	}

	if _, _, err := e.run("", "drop", "{broken", "--on", "column", "--target", "done"); err == nil {
		t.Fatalf("malformed payload should fail")
	}

	edited := e.mustRun("tasks", "edit", parentID, "--title", "Plan the launch").(map[string]any)
	if edited["title"] != "Plan the launch" || edited["impact"] != "high" {
		t.Fatalf("edit = %v", edited)
	}
	moved := e.mustRun("tasks", "status", parentID, "done").(map[string]any)
	if moved["status"] != "done" {
		t.Fatalf("status = %v", moved)
	}

	if _, _, err := e.run("", "tasks", "delete", childID); err == nil {
		t.Fatalf("delete without confirmation should fail")
	}
	e.mustRun("tasks", "delete", childID, "--yes")
	if _, _, err := e.run("", "tasks", "show", childID); err == nil {
		t.Fatalf("deleted task still shown")
	}
}

func TestViewAndNotes(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("tasks", "add", "--title", "Quick fix", "--impact", "high")

	stdout, _, err := e.run("", "view", "--format", "yaml")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	for _, want := range []string{"columns:", "title: To Do", "count: 1", "board: Main Board"} {
		if !strings.Contains(string(stdout), want) {
			t.Errorf("missing %q in:\n%s", want, stdout)
		}
	}

	list := e.mustRun("view", "--list", "--filter", "quickWin").(map[string]any)
	if len(list["tasks"].([]any)) != 1 {
		t.Fatalf("list view = %v", list)
	}
	if _, _, err := e.run("", "view", "--filter", "someday"); err == nil {
		t.Fatalf("unknown filter should fail")
	}

	cats := e.mustRun("view", "categories").([]any)
	if len(cats) != 4 || cats[3].(map[string]any)["label"] != "Slog" {
		t.Fatalf("categories = %v", cats)
	}

	if got := e.mustRun("notes", "set", "call the bank"); got != "call the bank" {
		t.Fatalf("notes set = %v", got)
	}
	if got := e.mustRun("notes", "show"); got != "call the bank" {
		t.Fatalf("notes show = %v", got)
	}
}

func TestLegacyDataIsMigrated(t *testing.T) {
	e := newCLIEnv(t)
	kv, err := sqlite.Open(e.db, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	_ = kv.Save(ctx, "kanban-tasks", []byte(`[{"id":"1","title":"Legacy","status":"done","effort":"low","impact":"high","subtasks":[]}]`))
	_ = kv.Save(ctx, "kanban-notes", []byte("old notes"))
	_ = kv.Close()

	boards := e.mustRun("boards", "list").([]any)
	if len(boards) != 1 {
		t.Fatalf("boards = %v", boards)
	}
	b := boards[0].(map[string]any)
	if b["name"] != "Main Board" || b["tasks"] != float64(1) {
		t.Fatalf("migrated board = %v", b)
	}
	if got := e.mustRun("notes", "show"); got != "old notes" {
		t.Fatalf("notes = %v", got)
	}
}

func TestRejectsUnknownFormatAndBackend(t *testing.T) {
	e := newCLIEnv(t)
	if _, _, err := e.run("", "boards", "list", "--format", "edn"); err == nil {
		t.Fatalf("unknown format should fail")
	}
	if _, _, err := runCLI(t, "", []string{"--backend", "etcd", "boards", "list"}); err == nil {
		t.Fatalf("unknown backend should fail")
	}
}

func TestMemoryBackend(t *testing.T) {
	stdout, _, err := runCLI(t, "", []string{"--backend", "memory", "boards", "list", "--pretty"})
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if !strings.Contains(string(stdout), "\"name\": \"Main Board\"") {
		t.Fatalf("output = %s", stdout)
	}
}
