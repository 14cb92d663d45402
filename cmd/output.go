package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
)

// output holds the flags shared by every report command.
type output struct {
	json  bool
	query string
	raw   bool
}

func (o *output) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the engine result as JSON instead of markdown")
	f.StringVar(&o.query, "q", "", "JSONPath expression selecting part of the JSON result, e.g. '$[0].marketValueBase'. Implies -json.")
	f.BoolVar(&o.raw, "raw", false, "Print the markdown source instead of rendering it for the terminal")
}

// print writes v as JSON when requested, else the markdown report.
func (o *output) print(w io.Writer, v any, markdown func() string) error {
	if o.json || o.query != "" {
		return printJSON(w, v, o.query)
	}
	md := markdown()
	if o.raw {
		_, err := io.WriteString(w, md)
		return err
	}
	return printMarkdown(w, md)
}

// printJSON writes v indented. A non empty query selects part of it first.
func printJSON(w io.Writer, v any, query string) error {
	if query != "" {
		// jsonpath works on generic values, not on structs.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var obj any
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if v, err = jsonpath.Get(query, obj); err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMarkdown renders md for the terminal.
func printMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
