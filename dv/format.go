package dv

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/options"
	"github.com/teranos/semval/dv/property"
	"github.com/teranos/semval/dv/units"
	"github.com/teranos/semval/logger"
)

// Mode selects the output form of a value.
type Mode int

const (
	ShortPlain Mode = iota
	ShortRich
	LongPlain
	LongRich
	// ValueString is the text form that parses back to the same item.
	ValueString
)

func (m Mode) String() string {
	switch m {
	case ShortPlain:
		return "short-plain"
	case ShortRich:
		return "short-rich"
	case LongPlain:
		return "long-plain"
	case LongRich:
		return "long-rich"
	case ValueString:
		return "value"
	}
	return "unknown"
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, bool) {
	for m := ShortPlain; m <= ValueString; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return ShortPlain, false
}

func (m Mode) rich() bool { return m == ShortRich || m == LongRich }

func (m Mode) long() bool { return m == LongPlain || m == LongRich }

// Formatter renders the values it handles. Format is only called with
// valid values.
type Formatter interface {
	Handles(v Value) bool
	Format(ctx context.Context, v Value, mode Mode) string
}

// Dispatcher picks the first formatter that handles a value. The default
// formatter is always consulted last.
type Dispatcher struct {
	env        *Env
	formatters []Formatter
	fallback   Formatter
}

// NewDispatcher returns a dispatcher with the built-in formatters.
func NewDispatcher(env *Env) *Dispatcher {
	d := &Dispatcher{env: env, fallback: defaultFormatter{}}
	d.formatters = []Formatter{
		monolingualFormatter{},
		&recordFormatter{d: d},
		&numberFormatter{env: env},
		&stringFormatter{env: env},
		uriFormatter{},
		importFormatter{},
		pageFormatter{},
		timeFormatter{},
	}
	return d
}

// Register puts f ahead of every formatter registered so far.
func (d *Dispatcher) Register(f Formatter) {
	d.formatters = append([]Formatter{f}, d.formatters...)
}

// Format renders v in mode. Invalid values render as "" in plain modes and
// as an error marker in rich modes.
func (d *Dispatcher) Format(ctx context.Context, v Value, mode Mode) string {
	if !v.IsValid() {
		if !mode.rich() {
			return ""
		}
		return d.errorMarker(v)
	}
	for _, f := range d.formatters {
		if f.Handles(v) {
			return f.Format(ctx, v, mode)
		}
	}
	return d.fallback.Format(ctx, v, mode)
}

func (d *Dispatcher) errorMarker(v Value) string {
	lang := v.base().language()
	lines := msg.Render(d.env.Localizer, v.Errors(), msg.Escaped, lang)
	return `<span class="semval-error">` + strings.Join(lines, " ") + `</span>`
}

func richText(s string, mode Mode) string {
	if mode.rich() {
		return html.EscapeString(s)
	}
	return s
}

type defaultFormatter struct{}

func (defaultFormatter) Handles(Value) bool { return true }

func (defaultFormatter) Format(_ context.Context, v Value, mode Mode) string {
	switch mode {
	case ValueString, LongPlain, LongRich:
		return richText(v.String(), mode)
	}
	return richText(v.Caption(), mode)
}

type stringFormatter struct {
	env *Env
}

func (*stringFormatter) Handles(v Value) bool {
	switch v.(type) {
	case *StringValue, *PatternValue:
		return true
	}
	return false
}

func (f *stringFormatter) Format(_ context.Context, v Value, mode Mode) string {
	text := v.String()
	code := false
	if s, ok := v.(*StringValue); ok {
		code = s.IsCode()
	}
	switch mode {
	case ShortPlain:
		return v.Caption()
	case ShortRich:
		return html.EscapeString(abbreviate(v.Caption(), f.env.Config.MaxShortLength))
	case LongRich:
		if code {
			return "<pre>" + html.EscapeString(text) + "</pre>"
		}
		return html.EscapeString(text)
	}
	return text
}

// abbreviate cuts s to limit runes, marking the cut with an ellipsis.
func abbreviate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimRightFunc(string(r[:limit]), func(c rune) bool { return c == ' ' }) + "…"
}

type numberFormatter struct {
	env *Env
}

func (*numberFormatter) Handles(v Value) bool {
	_, ok := v.(*NumberValue)
	return ok
}

func (f *numberFormatter) Format(ctx context.Context, v Value, mode Mode) string {
	n := v.(*NumberValue)
	if mode == ValueString {
		return n.String()
	}

	precision := f.env.Config.Precision
	format := strings.TrimSpace(n.Options().String(options.OutputFormat))
	unit := n.Unit(ctx)

	switch format {
	case "-":
		return richText(n.String(), mode)
	case "-u":
		return richText(unit, mode)
	case "-n":
		val, ok := n.In(ctx, unit)
		if !ok {
			val = n.Number()
		}
		return formatRaw(val, precision)
	case "":
	default:
		if conv, err := n.converter(ctx); err == nil && conv != nil {
			if canonical, ok := conv.Canonical(format); ok {
				unit = canonical
			}
		}
	}

	lang := n.language()
	main := f.render(ctx, n, unit, lang)
	if !mode.long() {
		return richText(main, mode)
	}

	others := f.conversions(ctx, n, unit, lang)
	if len(others) == 0 {
		return richText(main, mode)
	}
	return richText(main+" ("+strings.Join(others, ", ")+")", mode)
}

// render writes n in unit, grouped for lang.
func (f *numberFormatter) render(ctx context.Context, n *NumberValue, unit, lang string) string {
	val, ok := n.In(ctx, unit)
	if !ok {
		val, unit = n.Number(), ""
	}
	return joinUnit(f.localize(val, lang), unit, n.isPrefix(unit))
}

func (f *numberFormatter) localize(val float64, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	precision := f.env.Config.Precision
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(round(val, precision), number.MaxFractionDigits(precision)))
}

// conversions lists n in every display unit other than skip.
func (f *numberFormatter) conversions(ctx context.Context, n *NumberValue, skip, lang string) []string {
	conv, err := n.converter(ctx)
	if err != nil || conv == nil {
		return nil
	}
	var declared []string
	if n.prop != nil {
		declared, err = property.Texts(ctx, f.env.Store, n.prop, property.DisplayUnitsMeta)
		if err != nil {
			logger.FromContext(ctx, f.env.Logger).Debugw("display units unavailable",
				logger.FieldProperty, n.prop.Key,
				logger.FieldError, err)
		}
	}
	var out []string
	for _, u := range units.DisplayUnits(conv, declared) {
		if u == skip || u == "" {
			continue
		}
		out = append(out, f.render(ctx, n, u, lang))
	}
	return out
}

type monolingualFormatter struct{}

func (monolingualFormatter) Handles(v Value) bool {
	c, ok := v.(*CompositeValue)
	return ok && c.IsMonolingual()
}

func (monolingualFormatter) Format(ctx context.Context, v Value, mode Mode) string {
	c := v.(*CompositeValue)
	if mode == ValueString {
		return c.String()
	}
	text, lang := c.TextAndLanguage(ctx)
	if lang == "" {
		return richText(text, mode)
	}
	return richText(text+" ("+lang+")", mode)
}

type recordFormatter struct {
	d *Dispatcher
}

func (*recordFormatter) Handles(v Value) bool {
	_, ok := v.(*CompositeValue)
	return ok
}

func (f *recordFormatter) Format(ctx context.Context, v Value, mode Mode) string {
	c := v.(*CompositeValue)
	if mode == ValueString {
		return c.String()
	}
	values := c.Values(ctx)
	parts := make([]string, 0, len(values))
	for _, fv := range values {
		if s := f.d.Format(ctx, fv.Value, mode); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}

type uriFormatter struct{}

func (uriFormatter) Handles(v Value) bool {
	_, ok := v.(*URIValue)
	return ok
}

func (uriFormatter) Format(_ context.Context, v Value, mode Mode) string {
	u := v.(*URIValue)
	switch mode {
	case ShortRich, LongRich:
		caption := u.Caption()
		if mode == LongRich {
			caption = u.String()
		}
		return "[" + u.URI().String() + " " + html.EscapeString(caption) + "]"
	case ShortPlain:
		return u.Caption()
	}
	return u.String()
}

type importFormatter struct{}

func (importFormatter) Handles(v Value) bool {
	_, ok := v.(*ImportValue)
	return ok
}

func (importFormatter) Format(_ context.Context, v Value, mode Mode) string {
	iv := v.(*ImportValue)
	if mode.rich() && iv.Import().URI != "" {
		return "[" + iv.TermURI() + " " + html.EscapeString(iv.Caption()) + "]"
	}
	if mode == ShortPlain {
		return iv.Caption()
	}
	return iv.String()
}

type pageFormatter struct{}

func (pageFormatter) Handles(v Value) bool {
	_, ok := v.(*PageValue)
	return ok
}

func (pageFormatter) Format(_ context.Context, v Value, mode Mode) string {
	p := v.(*PageValue)
	title := p.Entity().String()
	switch mode {
	case ShortRich:
		return "[[" + title + "|" + html.EscapeString(p.Caption()) + "]]"
	case LongRich:
		return "[[" + title + "]]"
	case ShortPlain:
		return p.Caption()
	}
	return title
}

type timeFormatter struct{}

func (timeFormatter) Handles(v Value) bool {
	_, ok := v.(*TimeValue)
	return ok
}

func (timeFormatter) Format(_ context.Context, v Value, mode Mode) string {
	t := v.(*TimeValue)
	switch mode {
	case ValueString:
		return t.String()
	case ShortPlain, ShortRich:
		return richText(t.Caption(), mode)
	}
	return richText(t.LongText(), mode)
}
