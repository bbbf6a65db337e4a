package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/fsutil"
)

const (
	filePrefix = "sitebuilder-"
	fileSuffix = ".json"
	timeLayout = "20060102-150405.000"
)

// Exporter produces a full JSON snapshot of the site builder data.
type Exporter interface {
	Export(ctx context.Context) (string, error)
}

type Options struct {
	Dir     string
	Keep    int
	Timeout time.Duration
	Now     func() time.Time
}

// Scheduler writes periodic snapshots to Dir and keeps only the newest Keep.
type Scheduler struct {
	exporter Exporter
	opts     Options
	cron     *cron.Cron
}

func NewScheduler(exporter Exporter, opts Options) *Scheduler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Scheduler{
		exporter: exporter,
		opts:     opts,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the backup job with a six-field cron spec and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			log.Printf("[backup] failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("backup schedule %q: %w", spec, err)
	}

	s.cron.Start()
	log.Printf("[backup] scheduler started (%s) dir=%s keep=%d", spec, s.opts.Dir, s.opts.Keep)
	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce writes one snapshot and prunes old ones. It returns the file written.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	data, err := s.exporter.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("backup dir: %w", err)
	}

	name := s.nextName()
	if err := fsutil.WriteFileAtomic(name, []byte(data)); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	log.Printf("[backup] wrote %s (%d bytes)", name, len(data))

	if err := Prune(s.opts.Dir, s.opts.Keep); err != nil {
		return name, fmt.Errorf("prune: %w", err)
	}
	return name, nil
}

// Prune deletes all but the newest keep snapshots in dir. keep <= 0 keeps everything.
func Prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	files, err := List(dir)
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// List returns the snapshot files in dir, oldest first.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	// the timestamp layout sorts lexically
	sort.Strings(out)
	return out, nil
}

// nextName picks a file name that sorts after every earlier backup, moving
// forward a millisecond at a time if the current one is taken.
func (s *Scheduler) nextName() string {
	at := s.opts.Now().UTC()
	for {
		name := filepath.Join(s.opts.Dir, filePrefix+at.Format(timeLayout)+fileSuffix)
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return name
		}
		at = at.Add(time.Millisecond)
	}
}
