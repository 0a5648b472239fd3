package poster

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/toothbrush/confluence-poster/config"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// CheckResult is what an online check learned about one configured page.  Nothing is written.
type CheckResult struct {
	Key         string
	Title       string
	Space       string
	Page        Resolution
	LastAuthor  string
	AuthorOK    bool
	ParentTitle string
	Parent      Resolution
	Err         error
}

// Checker resolves configured pages and their parents concurrently.
type Checker struct {
	Wiki           Wiki
	Workers        int
	ExpectedAuthor string
	// Progress receives the progress bar.  Nil disables it.
	Progress io.Writer
}

type checkJob struct {
	key  string
	page config.Page
}

// Check looks up every page in pages.  Lookup failures end up in CheckResult.Err, only a cancelled
// context fails the whole check.  Results are ordered by key.
func (c *Checker) Check(ctx context.Context, pages map[string]config.Page) ([]CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("poster: check failed: %w", err)
	}
	if len(pages) == 0 {
		return []CheckResult{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount := c.Workers
	if workerCount < 1 {
		workerCount = 1
	}

	jobs := make([]checkJob, 0, len(pages))
	for k, p := range pages {
		jobs = append(jobs, checkJob{key: k, page: p})
	}

	jobQueue := make(chan checkJob, len(jobs))
	for _, j := range jobs {
		jobQueue <- j
	}
	close(jobQueue)

	results := make(chan CheckResult, workerCount*3)

	grp, gctx := errgroup.WithContext(ctx)

	workers := int32(workerCount)
	for i := 0; i < workerCount; i++ {
		grp.Go(func() error {
			for {
				select {
				case job, ok := <-jobQueue:
					if !ok {
						// Last one out closes the shop
						if atomic.AddInt32(&workers, -1) == 0 {
							close(results)
						}
						return nil
					}
					select {
					case results <- c.checkPage(gctx, job):
					case <-gctx.Done():
						return context.Cause(gctx)
					}

				case <-gctx.Done():
					return context.Cause(gctx)
				}
			}
		})
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(c.Progress))
	bar := p.AddBar(int64(len(jobs)),
		mpb.PrependDecorators(
			decor.Name("checking:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	collected := make([]CheckResult, 0, len(jobs))
	grp.Go(func() error {
		for {
			select {
			case result, ok := <-results:
				if !ok {
					return nil
				}
				collected = append(collected, result)
				bar.Increment()

			case <-gctx.Done():
				return context.Cause(gctx)
			}
		}
	})

	if err := grp.Wait(); err != nil {
		bar.Abort(false)
		p.Wait()
		return nil, fmt.Errorf("poster: check failed: %w", err)
	}
	p.Wait()

	slices.SortFunc(collected, func(a, b CheckResult) int { return strings.Compare(a.Key, b.Key) })
	return collected, nil
}

func (c *Checker) checkPage(ctx context.Context, job checkJob) CheckResult {
	resolver := &Resolver{Wiki: c.Wiki}
	result := CheckResult{
		Key:         job.key,
		Title:       job.page.Title,
		Space:       job.page.Space,
		ParentTitle: job.page.ParentTitle,
		AuthorOK:    true,
	}

	page, err := resolver.ResolvePage(ctx, job.page.Title, job.page.Space)
	if err != nil {
		result.Err = err
		return result
	}
	result.Page = page

	if page.Found && c.ExpectedAuthor != "" {
		ok, actual, err := resolver.CheckLastAuthor(ctx, page.ID, c.ExpectedAuthor)
		if err != nil {
			result.Err = err
			return result
		}
		result.AuthorOK = ok
		result.LastAuthor = actual
	}

	if job.page.ParentTitle != "" {
		parent, err := resolver.ResolvePage(ctx, job.page.ParentTitle, job.page.Space)
		if err != nil {
			result.Err = err
			return result
		}
		result.Parent = parent
	}

	return result
}
