package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/fatih/color"

	"stegojpeg/pkg/coveranalysis"
	"stegojpeg/pkg/filehandler"
	"stegojpeg/pkg/stego"
	"stegojpeg/pkg/stegocipher"
)

var (
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

// registerCoverAnalyzers populates registry with every analyzer the CLI
// knows about. New analyzers are added here, not at each call site.
func registerCoverAnalyzers(registry *coveranalysis.Registry) {
	registry.Register(coveranalysis.NewVarianceAnalyzer())
}

func main() {
	fmt.Println("stegojpeg v1.0.0")
	fmt.Println("JPEG-robust bit channel for short encrypted payloads")
	fmt.Println("---------------------------------")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hide":
		runHide(os.Args[2:])
	case "extract":
		runExtract(os.Args[2:])
	case "demo":
		runDemo(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  stegojpeg hide -in <cover> -out <stego.jpg> -data <text> [-key <keyfile>] [-quality <1-100>]")
	fmt.Println("  stegojpeg extract -in <stego.jpg> -key <keyfile> [-len <bytes>] [-quality <1-100>]")
	fmt.Println("  stegojpeg demo -in <cover> [-quality <1-100>]")
}

func runHide(args []string) {
	fs := flag.NewFlagSet("hide", flag.ExitOnError)
	in := fs.String("in", "", "path to cover image")
	out := fs.String("out", "", "path to write the stego JPEG")
	data := fs.String("data", "", "plaintext to hide")
	dataFile := fs.String("datafile", "", "path to file containing plaintext to hide")
	keyPath := fs.String("key", "", "path to write/read the base64 key file")
	quality := fs.Int("quality", 85, "JPEG quality (1-100)")
	workers := fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.Parse(args)

	if *in == "" || *out == "" {
		printError("hide requires -in and -out")
		fs.PrintDefaults()
		os.Exit(1)
	}

	coverFile, err := os.Open(*in)
	if err != nil {
		printError("opening cover image: %v", err)
		os.Exit(1)
	}
	defer coverFile.Close()

	cover, _, err := image.Decode(coverFile)
	if err != nil {
		printError("decoding cover image: %v", err)
		os.Exit(1)
	}
	bounds := cover.Bounds()
	_, capBytes := stego.Capacity(bounds.Dx(), bounds.Dy())

	plaintext := []byte(*data)
	if *dataFile != "" {
		size, err := filehandler.GetFileSize(*dataFile)
		if err != nil {
			printError("checking data file: %v", err)
			os.Exit(1)
		}
		if int(size) > capBytes {
			printError("data file is %d bytes, cover has room for ~%d bytes at quality %d", size, capBytes, *quality)
			os.Exit(1)
		}
		content, err := os.ReadFile(*dataFile)
		if err != nil {
			printError("reading data file: %v", err)
			os.Exit(1)
		}
		plaintext = content
	}
	if len(plaintext) == 0 {
		printError("no payload given: pass -data or -datafile")
		os.Exit(1)
	}

	registry := coveranalysis.NewRegistry()
	registerCoverAnalyzers(registry)
	if analyzer := registry.Get("block-variance"); analyzer != nil {
		if suitability, err := analyzer.Analyze(cover); err != nil {
			printWarning("cover suitability check failed: %v", err)
		} else {
			for _, rec := range suitability.Recommendations {
				printWarning("%s", rec)
			}
		}
	}

	key, err := resolveKey(*keyPath, true)
	if err != nil {
		printError("resolving key: %v", err)
		os.Exit(1)
	}

	printInfo("embedding %d bytes at quality %d", len(plaintext), *quality)
	start := time.Now()
	stegoJPEG, report, err := stego.Embed(cover, plaintext, key, stego.Options{Quality: *quality, Workers: *workers})
	if err != nil {
		printError("embed failed: %v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, stegoJPEG, 0644); err != nil {
		printError("writing stego image: %v", err)
		os.Exit(1)
	}

	printSuccess("wrote %s (%d bytes) in %v", *out, len(stegoJPEG), time.Since(start))
	printInfo("capacity used: %d/%d blocks", report.BlocksUsed, report.BlocksAvailable)
	for _, f := range report.Findings {
		printWarning("%s", f.Description)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	in := fs.String("in", "", "path to stego JPEG")
	keyPath := fs.String("key", "", "path to the base64 key file")
	length := fs.Int("len", 0, "expected plaintext length in bytes (0 = trust the recovered frame)")
	quality := fs.Int("quality", 85, "JPEG quality used at embed time")
	workers := fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.Parse(args)

	if *in == "" || *keyPath == "" {
		printError("extract requires -in and -key")
		fs.PrintDefaults()
		os.Exit(1)
	}

	stegoJPEG, err := os.ReadFile(*in)
	if err != nil {
		printError("reading stego image: %v", err)
		os.Exit(1)
	}

	key, err := resolveKey(*keyPath, false)
	if err != nil {
		printError("resolving key: %v", err)
		os.Exit(1)
	}

	var expected *int
	if *length > 0 {
		expected = length
	}

	plaintext, report, err := stego.Extract(stegoJPEG, key, stego.Options{Quality: *quality, Workers: *workers}, expected)
	if err != nil {
		printError("extract failed: %v", err)
		os.Exit(1)
	}

	printSuccess("recovered %d bytes in %v", report.RecoveredBytes, report.Duration)
	fmt.Printf("%s\n", plaintext)
}

func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	in := fs.String("in", "", "path to cover image")
	quality := fs.Int("quality", 85, "JPEG quality (1-100)")
	fs.Parse(args)

	if *in == "" {
		printError("demo requires -in")
		fs.PrintDefaults()
		os.Exit(1)
	}

	coverFile, err := os.Open(*in)
	if err != nil {
		printError("opening cover image: %v", err)
		os.Exit(1)
	}
	defer coverFile.Close()

	cover, _, err := image.Decode(coverFile)
	if err != nil {
		printError("decoding cover image: %v", err)
		os.Exit(1)
	}
	bounds := cover.Bounds()
	channelBits, capBytes := stego.Capacity(bounds.Dx(), bounds.Dy())
	printInfo("cover is %dx%d: %d channel bits, ~%d bytes of usable capacity at quality %d",
		bounds.Dx(), bounds.Dy(), channelBits, capBytes, *quality)

	registry := coveranalysis.NewRegistry()
	registerCoverAnalyzers(registry)
	analyzer := registry.Get("block-variance")
	if analyzer == nil {
		printWarning("no %q analyzer registered, skipping cover suitability check", "block-variance")
	} else if suitability, err := analyzer.Analyze(cover); err != nil {
		printWarning("cover suitability check failed: %v", err)
	} else {
		printInfo("%d/%d blocks are low-variance (%.0f%%)", suitability.FlatBlocks, suitability.TotalBlocks, suitability.FlatFraction*100)
		for _, rec := range suitability.Recommendations {
			printWarning("%s", rec)
		}
	}

	key, err := stegocipher.GenerateKey()
	if err != nil {
		printError("generating key: %v", err)
		os.Exit(1)
	}
	plaintext := []byte("stegojpeg round trip demo payload")

	stegoJPEG, embedReport, err := stego.Embed(cover, plaintext, key, stego.Options{Quality: *quality})
	if err != nil {
		printError("embed failed: %v", err)
		os.Exit(1)
	}
	printSuccess("embedded %d bytes using %d blocks", embedReport.PayloadBytes, embedReport.BlocksUsed)

	expected := len(plaintext)
	got, extractReport, err := stego.Extract(stegoJPEG, key, stego.Options{Quality: *quality}, &expected)
	if err != nil {
		printError("extract failed: %v", err)
		os.Exit(1)
	}

	if string(got) == string(plaintext) {
		printSuccess("round trip OK: recovered %q in %v", got, extractReport.Duration)
	} else {
		printWarning("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

// resolveKey reads a base64 key from path. When generate is true and path
// does not exist, a fresh key is created and written there with 0600
// permissions.
func resolveKey(path string, generate bool) (stegocipher.Key, error) {
	if path == "" {
		if !generate {
			return stegocipher.Key{}, fmt.Errorf("a -key path is required")
		}
		key, err := stegocipher.GenerateKey()
		if err != nil {
			return stegocipher.Key{}, err
		}
		printWarning("no -key given, generated key: %s", key.String())
		return key, nil
	}

	if content, err := filehandler.ReadLines(path); err == nil && len(content) > 0 {
		return stegocipher.ParseKey(content[0])
	}

	if !generate {
		return stegocipher.Key{}, fmt.Errorf("reading key file %s", path)
	}

	key, err := stegocipher.GenerateKey()
	if err != nil {
		return stegocipher.Key{}, err
	}
	if err := os.WriteFile(path, []byte(key.String()+"\n"), 0600); err != nil {
		return stegocipher.Key{}, fmt.Errorf("writing key file: %w", err)
	}
	printInfo("generated key written to %s", path)
	return key, nil
}
