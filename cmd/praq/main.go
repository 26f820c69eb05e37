package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dargueta/praq"
	"github.com/nuclio/logger"
	"github.com/nuclio/zap"
	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "praq",
		Usage: "Compress files using context prediction (LZP)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
				EnvVars: []string{"PRAQ_VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Aliases:   []string{"c"},
				Usage:     "Compress a file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "back end to use: ppp (bitmap blocks) or vlc (MTF + Golomb codes)",
						Value:   "ppp",
						EnvVars: []string{"PRAQ_MODE"},
					},
					newCSVFlag(),
				},
			},
			{
				Name:      "decompress",
				Aliases:   []string{"d"},
				Usage:     "Decompress a file",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags:     []cli.Flag{newCSVFlag()},
			},
		},
	}
}

func newCSVFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "csv",
		Usage: "print statistics as CSV instead of a summary line",
	}
}

func createLogger(context *cli.Context) (logger.Logger, error) {
	level := nucliozap.InfoLevel
	if context.Bool("verbose") {
		level = nucliozap.DebugLevel
	}
	// Logs go to stderr so they don't mix with a CSV report on stdout.
	return nucliozap.NewNuclioZapCmd("praq", level, os.Stderr)
}

// openFiles opens the input and output files named on the command line. The
// caller must close both.
func openFiles(context *cli.Context) (*os.File, *os.File, error) {
	if context.NArg() != 2 {
		return nil, nil, cli.Exit(
			fmt.Sprintf("expected 2 arguments (input and output file), got %d", context.NArg()),
			1,
		)
	}

	sourceFilePath := context.Args().Get(0)
	outputFilePath := context.Args().Get(1)

	sourceFile, err := os.Open(sourceFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"failed to open file for reading: `%v`: %w", sourceFilePath, err)
	}

	outFile, err := os.Create(outputFilePath)
	if err != nil {
		sourceFile.Close()
		return nil, nil, fmt.Errorf(
			"failed to open file for writing: `%v`: %w", outputFilePath, err)
	}
	return sourceFile, outFile, nil
}

func compressFile(context *cli.Context) error {
	mode, err := praq.ParseMode(context.String("mode"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	loggerInstance, err := createLogger(context)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	sourceFile, outFile, err := openFiles(context)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	start := time.Now()
	stats, err := praq.Compress(sourceFile, outFile, mode, &praq.Options{Logger: loggerInstance})
	closeErr := closeOutput(outFile, context.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("error compressing file: %s", err), 2)
	}
	if closeErr != nil {
		return closeErr
	}

	return report(context, stats, time.Since(start))
}

func decompressFile(context *cli.Context) error {
	loggerInstance, err := createLogger(context)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	sourceFile, outFile, err := openFiles(context)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	start := time.Now()
	stats, err := praq.Decompress(sourceFile, outFile, &praq.Options{Logger: loggerInstance})
	closeErr := closeOutput(outFile, context.Args().Get(1))
	if err != nil {
		return cli.Exit(fmt.Sprintf("error expanding file: %s", err), 2)
	}
	if closeErr != nil {
		return closeErr
	}

	return report(context, stats, time.Since(start))
}

// closeOutput closes the file that was just written. If this fails the data
// may not have reached the disk, so it's treated as a write error.
func closeOutput(outFile io.Closer, path string) error {
	err := outFile.Close()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to close output file `%s`: %s", path, err), 2)
	}
	return nil
}

func report(context *cli.Context, stats praq.Stats, elapsed time.Duration) error {
	if context.Bool("csv") {
		return praq.WriteStatsCSV(os.Stdout, stats)
	}

	fmt.Printf(
		"%s (%d) -> %s (%d)",
		context.Args().Get(0),
		stats.BytesRead,
		context.Args().Get(1),
		stats.BytesWritten,
	)
	if stats.Direction == praq.DirectionCompress {
		fmt.Printf(", compression ratio %3.2f%%", stats.Ratio())
	}
	fmt.Printf(" in %3.2f secs.\n", elapsed.Seconds())
	return nil
}
