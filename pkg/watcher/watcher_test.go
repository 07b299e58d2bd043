package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/config"
	jrerrors "github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
)

const validTable = `<jasperReport xmlns="http://jasperreports.sourceforge.net/jasperreports"
	xmlns:c="http://jasperreports.sourceforge.net/jasperreports/components">
	<componentElement>
		<reportElement x="0" y="0" width="100" height="50"/>
		<c:table>
			<c:column width="100" uuid="2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6e">
				<c:detailCell height="20"/>
			</c:column>
		</c:table>
	</componentElement>
</jasperReport>`

const badRow = `<jasperReport xmlns="http://jasperreports.sourceforge.net/jasperreports"
	xmlns:c="http://jasperreports.sourceforge.net/jasperreports/components">
	<componentElement>
		<reportElement x="0" y="0" width="100" height="50"/>
		<c:table>
			<c:detail splitType="Strech"/>
		</c:table>
	</componentElement>
</jasperReport>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// waitEvent skips stale events, such as a re-parse of a half-written file.
func waitEvent(t *testing.T, ch <-chan Event, path string, wantErr bool) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Path == path && (ev.Err != nil) == wantErr {
				return ev
			}
		case <-deadline:
			t.Fatalf("no re-parse of %s within 5s", path)
		}
	}
}

func TestWatcher_ReparseOnChange(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewMemoryStore()
	events := make(chan Event, 64)

	w, err := New(Config{Paths: []string{dir}, Debounce: 20 * time.Millisecond, Recursive: true},
		parser.NewParser(),
		WithValidator(validator.NewValidator()),
		WithRecorder(catalog.NewRecorder(store, nil, nil)),
		WithHandler(func(ev Event) { events <- ev }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("Watch() returned early: %v", err)
	}
	if err := w.Check(ctx); err != nil {
		t.Errorf("Check() while running = %v", err)
	}

	path := filepath.Join(dir, "orders.jrxml")
	writeFile(t, path, validTable)
	ev := waitEvent(t, events, path, false)
	if got := len(ev.Document.Components()); got != 1 {
		t.Errorf("components = %d, want 1", got)
	}
	if ev.Report == nil {
		t.Error("Report = nil, want validator report")
	}

	writeFile(t, path, badRow)
	ev = waitEvent(t, events, path, true)
	if _, ok := jrerrors.As(ev.Err); !ok {
		t.Errorf("re-parse error = %T, want *errors.Error", ev.Err)
	}

	// Files with other extensions are ignored.
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
	if err := w.Check(context.Background()); err != ErrNotRunning {
		t.Errorf("Check() after stop = %v, want ErrNotRunning", err)
	}

	failed, _ := store.Count(context.Background(), catalog.Filter{Path: path, Failed: true})
	if failed < 1 {
		t.Errorf("failed records = %d, want at least 1", failed)
	}
	total, _ := store.Count(context.Background(), catalog.Filter{Path: path})
	if total < 2 {
		t.Errorf("records = %d, want at least 2", total)
	}
	other, _ := store.Count(context.Background(), catalog.Filter{Path: filepath.Join(dir, "notes.txt")})
	if other != 0 {
		t.Errorf("records for notes.txt = %d, want 0", other)
	}
}

func TestWatcher_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jrxml"), validTable)
	writeFile(t, filepath.Join(dir, "b.jrxml"), badRow)
	writeFile(t, filepath.Join(dir, "c.xml"), validTable)

	w, err := New(Config{Paths: []string{dir}}, parser.NewParser())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	events, err := w.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(Scan()) = %d, want 2", len(events))
	}
	if events[0].Err != nil {
		t.Errorf("a.jrxml error = %v", events[0].Err)
	}
	if events[1].Err == nil {
		t.Error("b.jrxml parsed, want error")
	}
}

func TestWatcher_Stop(t *testing.T) {
	w, err := New(Config{Paths: []string{t.TempDir()}}, parser.NewParser())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- w.Watch(context.Background()) }()
	<-w.Ready()

	w.Stop()
	w.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not return after Stop")
	}
}

func TestNew_NoPaths(t *testing.T) {
	if _, err := New(Config{}, parser.NewParser()); err == nil {
		t.Error("New() without paths should fail")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default().Watch
	cfg.Paths = []string{"templates"}
	c := FromConfig(&cfg)
	if c.Debounce != config.DefaultWatchDebounce {
		t.Errorf("Debounce = %v, want %v", c.Debounce, config.DefaultWatchDebounce)
	}
	if len(c.Extensions) != 1 || c.Extensions[0] != ".jrxml" {
		t.Errorf("Extensions = %v, want [.jrxml]", c.Extensions)
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var a, b atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger("a", func() { a.Add(1) })
	}
	d.Trigger("b", func() { b.Add(1) })
	if d.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", d.Pending())
	}

	time.Sleep(200 * time.Millisecond)
	if a.Load() != 1 {
		t.Errorf("a fired %d times, want 1", a.Load())
	}
	if b.Load() != 1 {
		t.Errorf("b fired %d times, want 1", b.Load())
	}

	d.Stop()
	d.Trigger("a", func() { a.Add(1) })
	time.Sleep(60 * time.Millisecond)
	if a.Load() != 1 {
		t.Errorf("trigger after Stop fired")
	}
}
