package cli

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// BindFlags registers a flag for every struct field of the target that has a
// flag tag. Embedded structs are walked recursively. A single letter flag name
// is used as shorthand of the lowercased field name.
func BindFlags(flags *pflag.FlagSet, target any) {
	bindStruct(flags, reflect.ValueOf(target).Elem())
}

func bindStruct(flags *pflag.FlagSet, v reflect.Value) {
	typ := v.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		value := v.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			bindStruct(flags, value)
			continue
		}

		name, ok := field.Tag.Lookup("flag")
		if !ok {
			continue
		}
		usage := field.Tag.Get("usage")
		def := field.Tag.Get("default")

		long, short := name, ""
		if len(name) == 1 {
			long, short = strings.ToLower(field.Name), name
		}

		switch ptr := value.Addr().Interface().(type) {
		case *string:
			flags.StringVarP(ptr, long, short, def, usage)
		case *bool:
			flags.BoolVarP(ptr, long, short, def == "true", usage)
		case *uint32:
			n, _ := strconv.ParseUint(def, 0, 32)
			flags.Uint32VarP(ptr, long, short, uint32(n), usage)
		}
	}
}
