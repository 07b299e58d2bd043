// Package watcher re-parses JRXML templates when they change on disk.
//
// The watcher uses fsnotify on the configured paths. Each template has its
// own debounce timer, so an editor that writes a file in several steps
// triggers one re-parse. Every re-parse can be linted, recorded in the
// catalog and counted in metrics:
//
//	w, _ := watcher.New(watcher.FromConfig(&cfg.Watch), p,
//		watcher.WithValidator(validator.NewValidator()),
//		watcher.WithRecorder(recorder),
//		watcher.WithMetrics(collector))
//	err := w.Watch(ctx)
package watcher
