package dv

import (
	"context"
	"math"
	"strconv"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
	"github.com/teranos/semval/dv/parser"
	"github.com/teranos/semval/dv/units"
	"github.com/teranos/semval/logger"
)

// NumberValue backs number, quantity and temperature types. The item holds
// the value in main units.
type NumberValue struct {
	valueBase
	// unit is the canonical unit the value was entered in.
	unit string
	conv units.Converter
}

func newNumber(b *valueBase) Value {
	v := &NumberValue{valueBase: *b}
	v.self = v
	return v
}

func (v *NumberValue) parseText(ctx context.Context, text string) item.Item {
	lit, ok := parser.ParseNumber(text)
	if !ok {
		v.AddError(msg.New(msg.NotANumber, text))
		return nil
	}

	conv, err := v.converter(ctx)
	if err != nil {
		v.logger(ctx).Warnw("unit table unavailable", logger.FieldProperty, v.prop.Key, logger.FieldError, err)
		v.AddError(msg.New(msg.InternalError, err.Error()))
		return nil
	}
	if conv == nil {
		if lit.Unit != "" {
			v.AddError(msg.New(msg.UnitNotAllowed, lit.Unit))
			return nil
		}
		return item.Number{Value: lit.Value}
	}

	unit, ok := conv.Canonical(lit.Unit)
	if !ok {
		v.AddError(msg.New(msg.UnitNotAllowed, lit.Unit))
		return nil
	}
	main, _ := conv.ToMain(lit.Value, unit)
	v.unit = unit
	return item.Number{Value: main}
}

func (v *NumberValue) loaded(item.Item) {
	v.unit = ""
}

// converter returns the unit converter of this value's type, nil for plain
// numbers.
func (v *NumberValue) converter(ctx context.Context) (units.Converter, error) {
	if v.conv != nil {
		return v.conv, nil
	}
	switch v.typeID {
	case TypeTemperature:
		v.conv = units.TemperatureScale{}
	case TypeQuantity:
		if v.prop == nil || v.env == nil || v.env.Units == nil {
			t, _ := units.BuildTable(nil)
			v.conv = t
			break
		}
		t, err := v.env.Units.Fetch(ctx, v.prop)
		if err != nil {
			return nil, err
		}
		v.conv = t
	}
	return v.conv, nil
}

// Number is the value in main units.
func (v *NumberValue) Number() float64 {
	if n, ok := v.it.(item.Number); ok {
		return n.Value
	}
	return 0
}

// Unit is the unit the value was entered in, or the main unit for loaded
// values.
func (v *NumberValue) Unit(ctx context.Context) string {
	if v.unit != "" {
		return v.unit
	}
	conv, err := v.converter(ctx)
	if err != nil || conv == nil {
		return ""
	}
	return conv.MainUnit()
}

// In converts the value to unit.
func (v *NumberValue) In(ctx context.Context, unit string) (float64, bool) {
	conv, err := v.converter(ctx)
	if err != nil {
		return 0, false
	}
	if conv == nil {
		return v.Number(), unit == ""
	}
	return conv.FromMain(v.Number(), unit)
}

// String writes the value in its entry unit without grouping.
func (v *NumberValue) String() string {
	if v.it == nil {
		return ""
	}
	ctx := context.Background()
	unit := v.Unit(ctx)
	n, ok := v.In(ctx, unit)
	if !ok {
		n, unit = v.Number(), ""
	}
	return joinUnit(formatRaw(n, v.config().Precision), unit, v.isPrefix(unit))
}

func (v *NumberValue) isPrefix(unit string) bool {
	if v.conv == nil {
		return false
	}
	return v.conv.IsPrefix(unit)
}

// round limits n to precision fraction digits.
func round(n float64, precision int) float64 {
	if precision < 0 {
		return n
	}
	p := math.Pow(10, float64(precision))
	return math.Round(n*p) / p
}

func formatRaw(n float64, precision int) string {
	return strconv.FormatFloat(round(n, precision), 'f', -1, 64)
}

func joinUnit(number, unit string, prefix bool) string {
	switch {
	case unit == "":
		return number
	case prefix:
		return unit + " " + number
	}
	return number + " " + unit
}
