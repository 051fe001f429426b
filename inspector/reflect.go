package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetVec
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"vec":   WidgetVec,
	"skip":  WidgetSkip,
}

// Tag is a parsed `inspect:"..."` struct tag.
type Tag struct {
	Widget Widget
	Max    float64 // Scale for bars and vector arrows, 0 = unset
	Format string  // fmt verb string for labels
}

// Scale returns Max, or 1 when unset.
func (t Tag) Scale() float32 {
	if t.Max > 0 {
		return float32(t.Max)
	}
	return 1
}

// ParseTag reads an inspect tag of the form "widget[,max:N][,fmt:VERB]".
// Unknown widgets and options are ignored.
func ParseTag(raw string) Tag {
	var t Tag
	if raw == "" {
		return t
	}
	widget, opts, _ := strings.Cut(raw, ",")
	t.Widget = widgetNames[strings.TrimSpace(widget)]
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				t.Max = m
			}
		case "fmt":
			t.Format = val
		}
	}
	return t
}

// Field is one exported component field and how to draw it.
type Field struct {
	Name  string
	Value any
	Tag
}

var vecType = reflect.TypeFor[r2.Vec]()

// ExtractFields lists the exported fields of a component struct or pointer.
// Untagged embedded structs are flattened into the parent.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}
	return appendFields(nil, v)
}

func appendFields(fields []Field, v reflect.Value) []Field {
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if len(sf.Index) != 1 || !sf.IsExported() {
			continue
		}
		raw, tagged := sf.Tag.Lookup("inspect")
		tag := ParseTag(raw)
		if tag.Widget == WidgetSkip {
			continue
		}
		fv := v.FieldByIndex(sf.Index)
		if sf.Anonymous && fv.Kind() == reflect.Struct && !tagged {
			fields = appendFields(fields, fv)
			continue
		}
		if tag.Widget == WidgetAuto {
			tag.Widget = widgetFor(fv.Type())
		}
		fields = append(fields, Field{Name: sf.Name, Value: fv.Interface(), Tag: tag})
	}
	return fields
}

func widgetFor(t reflect.Type) Widget {
	switch {
	case t == vecType:
		return WidgetVec
	case t.Kind() == reflect.Bool:
		return WidgetBool
	}
	return WidgetLabel
}

// TypeName returns the bare type name of a component, for section headers.
func TypeName(component any) string {
	t := reflect.TypeOf(component)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// FormatValue renders a field value, using format when it is set.
func FormatValue(value any, format string) string {
	if format != "" {
		return fmt.Sprintf(format, value)
	}
	switch v := value.(type) {
	case r2.Vec:
		return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

// Numeric converts any integer or float value to float32.
func Numeric(value any) (float32, bool) {
	v := reflect.ValueOf(value)
	switch {
	case v.CanFloat():
		return float32(v.Float()), true
	case v.CanInt():
		return float32(v.Int()), true
	case v.CanUint():
		return float32(v.Uint()), true
	}
	return 0, false
}
