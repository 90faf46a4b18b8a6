// cmd/main.go

package main

import (
	"os"

	"AveBuf/pkg/utils"
	"AveBuf/pkg/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = utils.GetLogger("avebuf")

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print only the version",
	}
	app := &cli.App{
		Name:                 "avebuf",
		Usage:                "a tool to stream and slice files as chunked byte buffers",
		Version:              version.Version(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"debug", "v"},
				Usage:   "enable debug log",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only warning and errors",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "enable trace log",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "append logs to FILE instead of stderr",
			},
		},
		Commands: []*cli.Command{
			catFlags(),
			sliceFlags(),
			inspectFlags(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		logger.Fatalf("%s", err)
	}
}

func setLoggerLevel(ctx *cli.Context) {
	if ctx.Bool("trace") {
		utils.SetLogLevel(logrus.TraceLevel)
	} else if ctx.Bool("verbose") {
		utils.SetLogLevel(logrus.DebugLevel)
	} else if ctx.Bool("quiet") {
		utils.SetLogLevel(logrus.WarnLevel)
	} else {
		utils.SetLogLevel(logrus.InfoLevel)
	}
	if file := ctx.String("log"); file != "" {
		utils.SetOutFile(file)
	}
}
