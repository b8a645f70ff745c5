package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/FroogalTheDragon/devclean/internal/status"
)

// ErrInvalidRoot is returned when the scan root is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid scan root")

// Options tune a scan. Use DefaultOptions as a starting point: the zero
// value bounds the walk to the root directory alone.
type Options struct {
	// MaxDepth bounds the walk in edges from the root; NoDepthLimit for none.
	MaxDepth int

	// IgnorePaths are project roots to leave out, compared after
	// canonicalisation. Paths that do not resolve are ignored.
	IgnorePaths []string

	// ExcludeKinds are project kinds to leave out.
	ExcludeKinds []Kind

	// Workers bounds parallel analysis; <= 0 uses the logical CPU count.
	Workers int

	Progress ProgressFunc
	Logger   logrus.FieldLogger
}

// DefaultOptions returns options for an unbounded scan with no filters.
func DefaultOptions() Options {
	return Options{MaxDepth: NoDepthLimit}
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

func (o Options) report(p Progress) {
	if o.Progress != nil {
		o.Progress(p)
	}
}

// Scan finds every project under root, analyzes the candidates in parallel,
// and returns those with something to clean. Ignored paths and excluded kinds
// are filtered out. The result order is unspecified; see SortBySize.
func Scan(root string, opts Options) ([]ScannedProject, error) {
	log := opts.logger()

	canonicalRoot, err := ValidateRoot(root)
	if err != nil {
		return nil, err
	}
	log.WithField("root", canonicalRoot).Debug("scan started")

	candidates := FindProjectRoots(canonicalRoot, opts.MaxDepth, opts.Progress, log)
	candidates = filterCandidates(candidates, opts, log)
	log.WithField("candidates", len(candidates)).Debug("walk finished")

	analyzed := analyzeAll(candidates, opts, log)

	projects := make([]ScannedProject, 0, len(analyzed))
	for _, p := range analyzed {
		if p.TotalCleanableBytes > 0 {
			projects = append(projects, p)
		}
	}

	opts.report(Progress{Phase: PhaseDone, Candidates: len(candidates), Analyzed: len(analyzed)})
	log.WithField("projects", len(projects)).Debug("scan finished")
	return projects, nil
}

// ValidateRoot checks that root is an existing directory and returns its
// absolute, symlink-free form.
func ValidateRoot(root string) (string, error) {
	canonical, err := canonicalPath(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return canonical, nil
}

func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// filterCandidates applies the ignore-path and exclude-kind filters.
func filterCandidates(candidates []Candidate, opts Options, log logrus.FieldLogger) []Candidate {
	if len(opts.IgnorePaths) == 0 && len(opts.ExcludeKinds) == 0 {
		return candidates
	}

	ignored := make(map[string]bool, len(opts.IgnorePaths))
	for _, p := range opts.IgnorePaths {
		canonical, err := canonicalPath(p)
		if err != nil {
			log.WithError(err).WithField("path", p).Debug("ignore path does not resolve")
			continue
		}
		ignored[canonical] = true
	}
	excluded := make(map[Kind]bool, len(opts.ExcludeKinds))
	for _, k := range opts.ExcludeKinds {
		excluded[k] = true
	}

	out := candidates[:0:0]
	for _, c := range candidates {
		if excluded[c.Kind] {
			continue
		}
		if len(ignored) > 0 {
			if canonical, err := canonicalPath(c.Path); err == nil && ignored[canonical] {
				log.WithField("path", c.Path).Debug("ignoring project")
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// analyzeAll runs AnalyzeProject over the candidates on a bounded pool.
// Projects whose analysis fails are dropped.
func analyzeAll(candidates []Candidate, opts Options, log logrus.FieldLogger) []ScannedProject {
	if len(candidates) == 0 {
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = status.LogicalCPUs()
	}

	var done atomic.Int64
	p := pool.NewWithResults[ScannedProject]().WithErrors().WithMaxGoroutines(workers)
	for _, c := range candidates {
		p.Go(func() (ScannedProject, error) {
			project, err := AnalyzeProject(c.Path, c.Kind)
			opts.report(Progress{
				Phase:      PhaseAnalyze,
				Candidates: len(candidates),
				Analyzed:   int(done.Add(1)),
			})
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"path": c.Path,
					"kind": c.Kind.ID(),
				}).Debug("dropping project")
				return ScannedProject{}, err
			}
			return project, nil
		})
	}

	// Failed analyses are already logged; their results are not collected.
	projects, _ := p.Wait()
	return projects
}
