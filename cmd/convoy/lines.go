package convoy

import (
	"bufio"
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ismawno/convoy/pkg/errors"
)

// maxLineSize bounds a single input record
const maxLineSize = 1024 * 1024

// readRecords returns args when given, otherwise every line of in
func readRecords(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var records []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, MsgErrReadInput)
	}
	return records, nil
}

// mapRecords applies fn to every record concurrently. Results keep the input
// order; the first error cancels the remaining work.
func mapRecords[T any](ctx context.Context, records []string, fn func(string) (T, error)) ([]T, error) {
	results := make([]T, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(record)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
