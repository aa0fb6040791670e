package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// ChangeKind tells a YAML definition apart from an item script.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

func (k ChangeKind) String() string {
	if k == ChangeScript {
		return "script"
	}
	return "spec"
}

// Change is one file under the watched root that was written, created,
// renamed or removed.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports prefab and script files that changed on disk. A burst of
// writes to one file is reported once, after the file has been quiet for
// the debounce window.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches root and its direct subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	dirs, err := watchDirs(root)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:      fsw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func watchDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("prefabs: watch %s: %w", root, err)
	}
	dirs := []string{root}
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	return dirs, nil
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	d := newDebouncer(watchDebounce)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	reschedule := func() {
		if at, ok := d.next(); ok {
			timer.Reset(time.Until(at))
			return
		}
		timer.Stop()
	}

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if change, ok := classifyEvent(event); ok {
				d.add(change, time.Now())
				reschedule()
			}
		case <-timer.C:
			for _, change := range d.due(time.Now()) {
				select {
				case w.Changes <- change:
				case <-w.closeCh:
					return
				}
			}
			reschedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer holds a change back until its file has been quiet for the
// whole window. Every new event for a path restarts that path's window.
type debouncer struct {
	quiet   time.Duration
	pending map[string]pendingChange
}

type pendingChange struct {
	change Change
	at     time.Time
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{quiet: quiet, pending: make(map[string]pendingChange)}
}

func (d *debouncer) add(c Change, now time.Time) {
	d.pending[c.Path] = pendingChange{change: c, at: now.Add(d.quiet)}
}

// next returns the earliest time a pending change becomes due.
func (d *debouncer) next() (time.Time, bool) {
	var earliest time.Time
	for _, p := range d.pending {
		if earliest.IsZero() || p.at.Before(earliest) {
			earliest = p.at
		}
	}
	return earliest, !earliest.IsZero()
}

// due removes and returns the changes whose window has passed, by path.
func (d *debouncer) due(now time.Time) []Change {
	var out []Change
	for path, p := range d.pending {
		if !p.at.After(now) {
			out = append(out, p.change)
			delete(d.pending, path)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func classifyEvent(event fsnotify.Event) (Change, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return Change{}, false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml":
		return Change{Path: event.Name, Kind: ChangeSpec}, true
	case ".tengo":
		return Change{Path: event.Name, Kind: ChangeScript}, true
	}
	return Change{}, false
}
