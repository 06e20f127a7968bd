// Command classdeck turns image decks into class-review PDFs and stamps the
// community overlay onto existing documents.
//
//	classdeck build -date 2024-01-15 -class 3 -community "Maple Street" img1.jpg img2.jpg
//	classdeck stamp -community "Maple Street" -out reviewed doc1.pdf doc2.pdf
//	classdeck communities [flags] list|add|update|delete
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"classdeck/compose"
	"classdeck/observability"
	"classdeck/stamp"
	"classdeck/store"
)

const defaultCommunitiesFile = "communities.yaml"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "stamp":
		err = runStamp(os.Args[2:])
	case "communities":
		err = runCommunities(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "classdeck: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: classdeck <build|stamp|communities> [flags]")
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	date := fs.String("date", "", "Date for the output file name (required)")
	class := fs.String("class", "", "Class number for the output file name (required)")
	community := fs.String("community", "", "Community whose description is overlaid (required)")
	communities := fs.String("communities", defaultCommunitiesFile, "Community store file")
	outDir := fs.String("out", ".", "Output directory")
	fullBleed := fs.Bool("full-bleed", false, "Center each image on a full page with no overlay")
	minImages := fs.Int("min-images", 2, "Minimum number of images required")
	verbose := fs.Bool("v", false, "Log progress")
	fs.Parse(args)

	switch {
	case strings.TrimSpace(*date) == "":
		return fmt.Errorf("please enter a date")
	case strings.TrimSpace(*class) == "":
		return fmt.Errorf("please enter a class number")
	case strings.TrimSpace(*community) == "":
		return fmt.Errorf("please select a community")
	}
	images := fs.Args()
	if len(images) < *minImages {
		return fmt.Errorf("please select %d images", *minImages)
	}

	st, err := store.Open(*communities)
	if err != nil {
		return err
	}

	deck := compose.Deck{
		Images:  images,
		Overlay: st.Resolve(strings.TrimSpace(*community)),
		Logger:  logger(*verbose),
	}
	if *fullBleed {
		deck.Variant = compose.FullBleed
	}

	name := fmt.Sprintf("%s_classreview_%s_%s.pdf",
		strings.TrimSpace(*date), strings.TrimSpace(*community), strings.TrimSpace(*class))
	outPath := filepath.Join(*outDir, name)
	if err := deck.WriteFile(context.Background(), outPath); err != nil {
		return err
	}
	fmt.Printf("PDF created: %s\n", outPath)
	return nil
}

func runStamp(args []string) error {
	fs := flag.NewFlagSet("stamp", flag.ExitOnError)
	community := fs.String("community", "", "Community whose description is overlaid (required)")
	communities := fs.String("communities", defaultCommunitiesFile, "Community store file")
	outDir := fs.String("out", ".", "Destination directory (original file names are kept)")
	verbose := fs.Bool("v", false, "Log progress")
	fs.Parse(args)

	if strings.TrimSpace(*community) == "" {
		return fmt.Errorf("please select a community")
	}
	inputs := fs.Args()
	if len(inputs) == 0 {
		return fmt.Errorf("no input documents given")
	}

	st, err := store.Open(*communities)
	if err != nil {
		return err
	}
	overlay := st.Resolve(strings.TrimSpace(*community))

	summary := stamp.AnnotateAll(context.Background(), inputs, *outDir, overlay, logger(*verbose))
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", r.Input, r.Err)
		}
	}
	fmt.Printf("%d of %d documents annotated\n", summary.Succeeded, summary.Attempted)
	if summary.Succeeded < summary.Attempted {
		return fmt.Errorf("%d documents failed", summary.Attempted-summary.Succeeded)
	}
	return nil
}

func runCommunities(args []string) error {
	fs := flag.NewFlagSet("communities", flag.ExitOnError)
	file := fs.String("file", defaultCommunitiesFile, "Community store file")
	name := fs.String("name", "", "Community name")
	desc := fs.String("desc", "", "Community description")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("communities: expected one of list|add|update|delete")
	}
	st, err := store.Open(*file)
	if err != nil {
		return err
	}

	switch fs.Arg(0) {
	case "list":
		for _, n := range st.Names() {
			d, _ := st.Get(n)
			fmt.Printf("%s: %s\n", n, d)
		}
		fmt.Printf("Total communities: %d\n", st.Len())
		return nil
	case "add":
		if err := requireNameDesc(*name, *desc); err != nil {
			return err
		}
		return st.Add(*name, *desc)
	case "update":
		if err := requireNameDesc(*name, *desc); err != nil {
			return err
		}
		return st.Update(*name, *desc)
	case "delete":
		if strings.TrimSpace(*name) == "" {
			return fmt.Errorf("community name is required")
		}
		return st.Delete(*name)
	default:
		return fmt.Errorf("communities: unknown action %q", fs.Arg(0))
	}
}

func requireNameDesc(name, desc string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("community name is required")
	}
	if strings.TrimSpace(desc) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

func logger(verbose bool) observability.Logger {
	if verbose {
		return observability.NewTextLogger(os.Stderr)
	}
	return observability.NopLogger{}
}
