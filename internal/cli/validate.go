package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/lattice/pkg/schema"
)

// ErrInvalidScenario is returned by Validate after the failures were listed.
var ErrInvalidScenario = errors.New("scenario is invalid")

// Validate checks that the scenario parses and builds, listing every failure
// on out. Nothing is executed.
func Validate(opts RunOptions, out io.Writer) error {
	logger := createLogger(opts)

	if _, err := createProgram(opts, logger); err != nil {
		fmt.Fprintf(out, "%s:\n", opts.File)
		for _, e := range schema.ValidationErrors(err) {
			var ve *schema.ValidationError
			if errors.As(e, &ve) {
				fmt.Fprintf(out, "  - %s\n", ve.Error())
				continue
			}
			fmt.Fprintf(out, "  - %v\n", e)
		}
		return ErrInvalidScenario
	}

	fmt.Fprintln(out, "Scenario is valid! ✅")
	return nil
}
