package structpages

import (
	"fmt"
	"reflect"
)

// argRegistry holds the values passed to MountPages, keyed by their type.
type argRegistry map[reflect.Type]reflect.Value

func (args argRegistry) add(v any) error {
	if v == nil {
		return nil
	}
	typ := reflect.TypeOf(v)
	if _, ok := args[typ]; ok {
		return fmt.Errorf("duplicate type %s in args registry", typ)
	}
	args[typ] = reflect.ValueOf(v)
	return nil
}

// get finds a value for typ. A registered *T satisfies both *T and T; a
// registered interface implementation satisfies the interface.
func (args argRegistry) get(typ reflect.Type) (reflect.Value, bool) {
	if v, ok := args[typ]; ok {
		return v, true
	}
	if typ.Kind() != reflect.Ptr {
		if v, ok := args[reflect.PointerTo(typ)]; ok {
			return v.Elem(), true
		}
	}
	if typ.Kind() == reflect.Interface {
		for t, v := range args {
			if t.Implements(typ) {
				return v, true
			}
		}
	}
	return reflect.Value{}, false
}
