package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/semval/dv"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/errors"
)

// valueError reports a value that did not parse or failed a constraint.
type valueError struct {
	raw   string
	codes []string
	lines []string
}

func (e *valueError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.raw, strings.Join(e.lines, " "))
}

// messages localizes the error list of v in the configured language.
func (rt *runtime) messages(v dv.Value) []string {
	return msg.Render(rt.env.Localizer, v.Errors(), msg.Plain, rt.env.Config.Language)
}

func (rt *runtime) invalid(raw string, v dv.Value) *valueError {
	return &valueError{raw: raw, codes: v.Errors().Codes(), lines: rt.messages(v)}
}

// RenderError formats err for the terminal. Value errors list each message
// with its code.
func RenderError(err error) string {
	var verr *valueError
	if !errors.As(err, &verr) {
		out := pterm.Red("Error: ") + err.Error()
		if hint := errors.FlattenHints(err); hint != "" {
			out += "\n  " + pterm.Gray("hint: "+hint)
		}
		return out
	}

	var b strings.Builder
	b.WriteString(pterm.Red("Invalid value: ") + pterm.Yellow(verr.raw))
	for i, line := range verr.lines {
		b.WriteString("\n  " + pterm.Gray("•") + " " + line)
		if i < len(verr.codes) {
			b.WriteString(" " + pterm.Gray("("+verr.codes[i]+")"))
		}
	}
	return b.String()
}
