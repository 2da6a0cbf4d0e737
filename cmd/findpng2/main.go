// Command findpng2 crawls the web starting from a seed URL, following
// hyperlinks from a LIFO frontier (most recently discovered first) until it
// has found a target number of PNG images or exhausted every URL reachable
// from the seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ece252/findpng2/internal/crawler"
	"github.com/ece252/findpng2/internal/platform/htmlparser"
	"github.com/ece252/findpng2/internal/platform/httpclient"
)

const (
	defaultWorkers = 1
	defaultTargetN = 50
	pngOutputFile  = "png_urls.txt"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("findpng2", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: findpng2 [-t N] [-m M] [-v LOGFILE] SEED_URL")
		fs.PrintDefaults()
	}

	threads := fs.Int("t", defaultWorkers, "number of worker threads")
	targetN := fs.Int("m", defaultTargetN, "target count of PNGs to find")
	logFile := fs.String("v", "", "path to a log file of all visited URLs")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	seed := fs.Arg(0)

	if *threads <= 0 {
		fmt.Fprintln(os.Stderr, "findpng2: -t must be > 0")
		return 2
	}
	if *targetN < 0 {
		fmt.Fprintln(os.Stderr, "findpng2: -m must be >= 0")
		return 2
	}

	start := time.Now()

	coord, err := crawler.NewCoordinator(crawler.Config{
		StartURL:   seed,
		NumWorkers: *threads,
		TargetN:    *targetN,
		Fetcher:    httpclient.New(httpclient.Config{}),
		Parser:     parserFunc(htmlparser.ExtractLinks),
		Logger:     log.New(os.Stderr, "", log.LstdFlags),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "findpng2: %v\n", err)
		return 1
	}

	pngs, err := coord.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "findpng2: %v\n", err)
		return 1
	}

	if err := writeLines(pngOutputFile, pngs); err != nil {
		fmt.Fprintf(os.Stderr, "findpng2: writing %s: %v\n", pngOutputFile, err)
		return 1
	}

	if *logFile != "" {
		if err := writeLines(*logFile, coord.VisitedURLs()); err != nil {
			fmt.Fprintf(os.Stderr, "findpng2: writing %s: %v\n", *logFile, err)
			return 1
		}
	}

	elapsed := time.Since(start).Seconds()
	fmt.Printf("findpng2 execution time: %.6f seconds\n", elapsed)
	return 0
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if len(lines) == 0 {
		return nil
	}
	_, err = f.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// parserFunc adapts a plain function to the crawler.Parser interface, the
// same way net/http.HandlerFunc adapts a function to an interface.
type parserFunc func(r io.Reader, baseURL string) ([]string, error)

func (f parserFunc) ExtractLinks(r io.Reader, baseURL string) ([]string, error) {
	return f(r, baseURL)
}
