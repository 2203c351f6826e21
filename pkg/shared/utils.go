package shared

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag was set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// PrintResultAsJSON writes v as indented JSON followed by a newline.
func PrintResultAsJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshaling the result data: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
