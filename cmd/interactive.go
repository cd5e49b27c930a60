package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bisegni/lcdio/pkg/path"
	"github.com/bisegni/lcdio/pkg/reader"
	"github.com/bisegni/lcdio/pkg/record"
)

// runInteractive loads the whole file once (streams are single-pass)
// and then answers path expressions against every record.
func runInteractive(source any, opts []reader.Option) error {
	s, err := reader.Open(source, opts...)
	if err != nil {
		return err
	}
	var records []*record.Record
	for s.Next() {
		records = append(records, s.Record())
	}
	if err := s.Err(); err != nil {
		s.Close()
		return err
	}
	s.Close()

	fmt.Printf("Loaded %d records. Type a path expression, or 'exit' to leave.\n", len(records))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		indices, err := path.Parse(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		for i, rec := range records {
			val, err := rec.Resolve(indices...)
			if err != nil {
				fmt.Printf("#%d: error: %v\n", i, err)
				continue
			}
			fmt.Printf("#%d: %s\n", i, val)
		}
	}
}
