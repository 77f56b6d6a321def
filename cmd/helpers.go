package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/roomdb/internal/iodb"
	"github.com/gnames/roomdb/pkg/db"
)

// connect configures an operator for cfg.Database. The pool itself is
// created on the first use.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	gn.Info("Using database <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

// confirm asks a yes/no question and reads the answer from r.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s (yes/no): ", question)

	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}

var titleColor = color.New(color.FgGreen, color.Bold)

// title writes a section header.
func title(w io.Writer, s string) {
	fmt.Fprintln(w)
	titleColor.Fprintln(w, s)
	fmt.Fprintln(w, strings.Repeat("-", len(s)))
}
