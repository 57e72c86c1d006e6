package load

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// All reads every file with get, at most limit files at a time. Results are
// given in the order of files and the first error cancels the remaining reads.
func All[E any](ctx context.Context, files []string, limit int, get func(string) ([]E, error)) ([][]E, error) {
	var (
		res    = make([][]E, len(files))
		g, gtx = errgroup.WithContext(ctx)
	)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := gtx.Err(); err != nil {
				return err
			}
			list, err := get(file)
			if err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}
			log.Debug().Str("file", file).Int("rows", len(list)).Msg("file loaded")
			res[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Merge flattens the results of All.
func Merge[E any](sets [][]E) []E {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	list := make([]E, 0, n)
	for _, s := range sets {
		list = append(list, s...)
	}
	return list
}
