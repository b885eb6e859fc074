package dv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/semval/dv/msg"
)

type upperFormatter struct{}

func (upperFormatter) Handles(v Value) bool { return v.TypeID() == TypeKeyword }

func (upperFormatter) Format(_ context.Context, v Value, _ Mode) string {
	return strings.ToUpper(v.String())
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestEnv(t, WithConfig(func() Config {
		cfg := DefaultConfig()
		cfg.MaxShortLength = 10
		return cfg
	}()))
	d := env.Dispatcher()

	tests := []struct {
		name   string
		typeID string
		raw    string
		mode   Mode
		want   string
	}{
		{"short plain text", TypeText, "a < b", ShortPlain, "a < b"},
		{"short rich text escapes", TypeText, "a < b", ShortRich, "a &lt; b"},
		{"short rich text abbreviates", TypeText, "the quick brown fox", ShortRich, "the quick…"},
		{"long rich text is whole", TypeText, "the quick brown fox", LongRich, "the quick brown fox"},
		{"code long rich is preformatted", TypeCode, "if a < b {}", LongRich, "<pre>if a &lt; b {}</pre>"},
		{"number grouping", TypeNumber, "1234567.891", ShortPlain, "1,234,567.891"},
		{"number value string", TypeNumber, "1,234,567.891", ValueString, "1234567.891"},
		{"url rich", TypeURL, "https://example.org", ShortRich, "[https://example.org https://example.org]"},
		{"url plain", TypeURL, "https://example.org", LongPlain, "https://example.org"},
		{"email rich", TypeEmail, "jane@example.org", LongRich, "[mailto:jane@example.org jane@example.org]"},
		{"page rich", TypePage, "help:intro", ShortRich, "[[Help:Intro|help:intro]]"},
		{"page long rich", TypePage, "help:intro", LongRich, "[[Help:Intro]]"},
		{"page value string", TypePage, "help:intro", ValueString, "Help:Intro"},
		{"date long", TypeDate, "1969-07-20", LongPlain, "20 July 1969"},
		{"date short keeps caption", TypeDate, "20 Jul 1969", ShortPlain, "20 Jul 1969"},
		{"boolean", TypeBoolean, "Y", LongPlain, "true"},
		{"monolingual", TypeMonolingual, "Carpe diem@la", ShortPlain, "Carpe diem (la)"},
		{"monolingual value string", TypeMonolingual, "Carpe diem@LA", ValueString, "Carpe diem@la"},
		{"invalid plain is empty", TypeNumber, "many", ShortPlain, ""},
		{"invalid rich is marked", TypeNumber, "many", ShortRich, `<span class="semval-error">"many" is not a number.</span>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := parse(env, tt.typeID, tt.raw)
			assert.Equal(t, tt.want, d.Format(ctx, v, tt.mode))
		})
	}

	t.Run("registered formatter wins", func(t *testing.T) {
		d.Register(upperFormatter{})
		assert.Equal(t, "HELLO WORLD", d.Format(ctx, parse(env, TypeKeyword, "Hello World"), ShortPlain))
		assert.Equal(t, "plain", d.Format(ctx, parse(env, TypeText, "plain"), ShortPlain))
	})
}

func TestModeNames(t *testing.T) {
	for m := ShortPlain; m <= ValueString; m++ {
		got, ok := ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("fancy")
	assert.False(t, ok)
}

func TestErrorsAreLocalized(t *testing.T) {
	env, _ := newTestEnv(t)
	v := parse(env, TypeBoolean, "<maybe>")
	lines := msg.Render(env.Localizer, v.Errors(), msg.Plain, "en")
	assert.Equal(t, []string{`"<maybe>" is not a yes/no value.`}, lines)
}
