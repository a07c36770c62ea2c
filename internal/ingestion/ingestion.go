package ingestion

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/sharecgt/internal/domain/models"
	"github.com/guttosm/sharecgt/internal/logger"
)

const maxDefaultParallel = 8

// Source is a named trade file that can be opened for reading.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource reads trades from a file on disk.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (f fileSource) Name() string { return filepath.Base(f.path) }

func (f fileSource) Open() (io.ReadCloser, error) { return os.Open(f.path) }

type multipartSource struct {
	fh *multipart.FileHeader
}

// MultipartSource reads trades from an uploaded form file.
func MultipartSource(fh *multipart.FileHeader) Source {
	return multipartSource{fh: fh}
}

func (m multipartSource) Name() string { return m.fh.Filename }

func (m multipartSource) Open() (io.ReadCloser, error) { return m.fh.Open() }

// DirectorySources returns one Source per .csv file in dir, sorted by name.
func DirectorySources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var out []Source
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		out = append(out, FileSource(filepath.Join(dir, e.Name())))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no .csv files in %s: %w", dir, ErrFileRequired)
	}
	return out, nil
}

// ParseSources parses every source and returns all trades, concatenated in
// source order.
//
// Behavior:
//   - Parses up to parallel sources at a time (0 = min(8, NumCPU)).
//   - The first failing source cancels the rest and its error is returned,
//     prefixed with the source name.
func ParseSources(ctx context.Context, sources []Source, parallel int) ([]models.Trade, error) {
	maxParallel := maxDefaultParallel
	if parallel > 0 {
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}
	if maxParallel > len(sources) {
		maxParallel = len(sources)
	}

	perSource := make([][]models.Trade, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(maxParallel, 1))

	for i, src := range sources {
		i, src := i, src // per-iteration copies; go directive predates Go 1.22 loop semantics
		g.Go(func() error {
			start := time.Now()
			trades, err := parseSource(gctx, src)
			if err != nil {
				logger.L().Error().Str("file", src.Name()).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			perSource[i] = trades
			logger.L().Debug().Int("idx", i+1).Int("total", len(sources)).Str("file", src.Name()).Int("rows", len(trades)).Dur("elapsed", time.Since(start)).Msg("file parsed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, ts := range perSource {
		n += len(ts)
	}
	all := make([]models.Trade, 0, n)
	for _, ts := range perSource {
		all = append(all, ts...)
	}
	return all, nil
}

func parseSource(ctx context.Context, src Source) ([]models.Trade, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = rc.Close() }()

	return ParseTrades(ctx, rc)
}
