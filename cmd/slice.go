// cmd/slice.go

package main

import (
	"fmt"
	"io"

	"AveBuf/pkg/buflist"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func sliceFlags() *cli.Command {
	return &cli.Command{
		Name:      "slice",
		Usage:     "extract a byte range from the concatenation of files",
		ArgsUsage: "FILE...",
		Action:    slice,
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "offset",
				Aliases:  []string{"p"},
				Usage:    "byte offset to start from",
				Required: true,
			},
			&cli.Int64Flag{
				Name:    "length",
				Aliases: []string{"l"},
				Value:   -1,
				Usage:   "number of bytes to extract (-1 means to the end)",
			},
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
		},
	}
}

func slice(ctx *cli.Context) error {
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

	cursor := buflist.NewCursor(list)
	if _, err := cursor.Seek(ctx.Int64("offset"), io.SeekStart); err != nil {
		return err
	}
	length := ctx.Int64("length")
	rest := cursor.Size() - cursor.Position()
	if rest < 0 {
		rest = 0
	}
	if length < 0 || length > rest {
		if length > rest {
			logger.Warnf("only %d bytes past offset %d, length truncated", rest, cursor.Position())
		}
		length = rest
	}
	logger.Debugf("extracting %d bytes at offset %d of %d total", length, cursor.Position(), cursor.Size())

	out, closeOut, err := openOutput(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	if _, err := io.CopyN(out, cursor, length); err != nil {
		return errors.Wrap(err, "extract range")
	}
	return nil
}
