// cmd/cat.go

package main

import (
	"fmt"
	"io"
	"os"

	"AveBuf/pkg/buflist"
	"AveBuf/pkg/utils"
	"github.com/juju/ratelimit"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func catFlags() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "concatenate files and stream them out as one chunked buffer",
		ArgsUsage: "FILE...",
		Action:    cat,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to FILE instead of stdout",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Value: 1 << 20,
				Usage: "size of the read chunks in bytes",
			},
			&cli.Int64Flag{
				Name:  "limit",
				Usage: "limit output bandwidth in bytes per second",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "disable the progress bar",
			},
		},
	}
}

func cat(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("FILE is needed")
	}
	chunkSize := ctx.Int("chunk-size")
	if chunkSize <= 0 {
		return fmt.Errorf("invalid chunk-size %d", chunkSize)
	}

	list := buflist.New()
	defer list.Reset()
	for i := 0; i < ctx.Args().Len(); i++ {
		if err := loadFile(list, ctx.Args().Get(i), chunkSize); err != nil {
			return err
		}
	}
	logger.Debugf("buffered %d bytes in %d chunks", list.Len(), list.NumChunks())

	out, closeOut, err := openOutput(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	w := io.Writer(out)
	if limit := ctx.Int64("limit"); limit > 0 {
		w = newLimitedWriter(w, limit)
	}

	quiet := ctx.Bool("no-progress") || ctx.Bool("quiet") || ctx.String("output") == ""
	progress, bar := utils.NewDynProgressBar("streaming: ", quiet)
	bar.SetTotal(int64(list.Len()), false)
	pw := bar.ProxyWriter(w)
	defer pw.Close()

	if _, err = list.WriteTo(pw); err != nil {
		return errors.Wrap(err, "stream out")
	}
	bar.SetTotal(0, true)
	progress.Wait()
	return nil
}

// loadFile reads a file into the list as a sequence of pooled pages of at
// most chunkSize bytes each.
func loadFile(list *buflist.BufList, name string, chunkSize int) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()
	for {
		page := buflist.NewPooledPage(chunkSize)
		n, err := io.ReadFull(f, page.Data)
		if n > 0 {
			list.PushPage(page.Slice(0, n))
		}
		page.Release()
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
	}
}

func openOutput(ctx *cli.Context) (*os.File, func(), error) {
	name := ctx.String("output")
	if name == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", name)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logger.Errorf("close %s: %s", name, err)
		}
	}, nil
}

type limitedWriter struct {
	io.Writer
	bucket *ratelimit.Bucket
}

// newLimitedWriter caps the write bandwidth at bps bytes per second.
func newLimitedWriter(w io.Writer, bps int64) io.Writer {
	return &limitedWriter{w, ratelimit.NewBucketWithRate(float64(bps), bps)}
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	n, err := l.Writer.Write(p)
	if l.bucket != nil {
		l.bucket.Wait(int64(n))
	}
	return n, err
}
