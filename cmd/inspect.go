// cmd/inspect.go

package main

import (
	"encoding/json"
	"fmt"

	"AveBuf/pkg/buflist"
	"github.com/urfave/cli/v2"
)

type chunkEntry struct {
	Index  int
	Offset int64
	Size   int
}

type layout struct {
	NumChunks  int
	TotalBytes int
	Chunks     []chunkEntry
}

func printJson(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatalf("json: %s", err)
	}
	fmt.Println(string(output))
}

func inspectFlags() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "show the chunk layout of the concatenation of files",
		ArgsUsage: "FILE...",
		Action:    inspect,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "chunk-size",
				Value: 1 << 20,
				Usage: "size of the read chunks in bytes",
			},
		},
	}
}

func inspect(ctx *cli.Context) error {
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

	info := layout{
		NumChunks:  list.NumChunks(),
		TotalBytes: list.Len(),
		Chunks:     make([]chunkEntry, 0, list.NumChunks()),
	}
	var offset int64
	for i := 0; i < list.NumChunks(); i++ {
		size := len(list.Chunk(i))
		info.Chunks = append(info.Chunks, chunkEntry{Index: i, Offset: offset, Size: size})
		offset += int64(size)
	}
	printJson(&info)
	return nil
}
