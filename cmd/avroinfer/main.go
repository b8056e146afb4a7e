package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/reoring/avroinfer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "derive":
		deriveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "avroinfer CLI\n\nUsage:\n  avroinfer derive [-mode strict|lenient] [-name record] [-top 3] [-config cfg.yaml] [file ...]\n\nNotes:\n  - Reads sample JSON messages from the given files, or stdin when none.\n  - A file whose top level is a JSON array is split into one message per element.\n  - With a single message the derived schema is printed; with several, ranked\n    batch results are printed (one JSON object per line).")
}

// config mirrors the derive flags; flags given explicitly win over the file.
type config struct {
	Mode string `yaml:"mode"`
	Name string `yaml:"name"`
	Top  int    `yaml:"top"`
}

func deriveCmd(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	var (
		modeFlag   string
		nameFlag   string
		topFlag    int
		configPath string
	)
	fs.StringVar(&modeFlag, "mode", "strict", "conflict policy: strict or lenient")
	fs.StringVar(&nameFlag, "name", "record", "top-level record name for single-message derivation")
	fs.IntVar(&topFlag, "top", 3, "maximum ranked groups to print in strict batch output")
	fs.StringVar(&configPath, "config", "", "optional YAML config file (mode/name/top)")
	_ = fs.Parse(args)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			fatalf("reading config: %v", err)
		}
		var cfg config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fatalf("parsing config: %v", err)
		}
		explicit := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if cfg.Mode != "" && !explicit["mode"] {
			modeFlag = cfg.Mode
		}
		if cfg.Name != "" && !explicit["name"] {
			nameFlag = cfg.Name
		}
		if cfg.Top > 0 && !explicit["top"] {
			topFlag = cfg.Top
		}
	}

	mode, err := avroinfer.ParseMode(modeFlag)
	if err != nil {
		fatalf("%v", err)
	}

	msgs, err := readMessages(fs.Args())
	if err != nil {
		fatalf("%v", err)
	}
	if len(msgs) == 0 {
		fatalf("no input messages")
	}

	ctx := context.Background()
	pretty := isatty.IsTerminal(os.Stdout.Fd())

	if len(msgs) == 1 {
		schema, err := avroinfer.DeriveMessage(ctx, msgs[0], nameFlag, mode)
		if err != nil {
			fatalf("derive: %v", err)
		}
		emit(schema, pretty)
		return
	}

	matches, err := avroinfer.DeriveMultipleMessages(ctx, msgs, mode)
	if err != nil {
		fatalf("derive: %v", err)
	}
	if mode == avroinfer.Strict && topFlag > 0 && topFlag < len(matches) {
		matches = matches[:topFlag]
	}
	for _, m := range matches {
		emit(m.Render(mode == avroinfer.Strict), pretty)
	}
}

// readMessages collects messages from files or stdin, splitting top-level
// JSON arrays into individual messages.
func readMessages(files []string) ([][]byte, error) {
	var msgs [][]byte
	appendDoc := func(data []byte) error {
		split, err := avroinfer.SplitMessages(data)
		if err != nil {
			return err
		}
		msgs = append(msgs, split...)
		return nil
	}
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if err := appendDoc(data); err != nil {
			return nil, err
		}
		return msgs, nil
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := appendDoc(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return msgs, nil
}

// emit prints one JSON text, indented when stdout is a terminal.
func emit(text string, pretty bool) {
	if pretty {
		var buf bytes.Buffer
		if err := j.Indent(&buf, []byte(text), "", "  "); err == nil {
			fmt.Println(buf.String())
			return
		}
	}
	fmt.Println(text)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
