package builtins

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/solarbrowser/quanta-go/internal/gc"
	"github.com/solarbrowser/quanta-go/internal/object"
	"github.com/solarbrowser/quanta-go/internal/value"
)

func jsonStringifyFn(t *testing.T, r *Registry, c object.Caller) *object.Object {
	t.Helper()
	jsonObj, ok := r.Global.Get(object.StringKey("JSON"), r.Global, c).(*object.Object)
	if !ok {
		t.Fatalf("JSON global missing")
	}
	fn, ok := jsonObj.Get(object.StringKey("stringify"), jsonObj, c).(*object.Object)
	if !ok || !fn.IsCallable() {
		t.Fatalf("JSON.stringify missing")
	}
	return fn
}

// TestJSONStringifyShapes snapshots JSON.stringify's output shape across a
// plain object, an indented object, and an array — the formatted-output
// surface DESIGN.md documents tidwall/pretty reindenting.
func TestJSONStringifyShapes(t *testing.T) {
	c := &fakeCaller{}
	r := Bootstrap(gc.New(1 << 20))
	stringify := jsonStringifyFn(t, r, c)

	plain := r.GC.Allocate(object.New(r.ObjectProto))
	plain.DefineProperty(object.StringKey("name"), object.DefaultDataProperty(value.String("quanta")))
	plain.DefineProperty(object.StringKey("count"), object.DefaultDataProperty(value.Number(3)))
	plain.DefineProperty(object.StringKey("active"), object.DefaultDataProperty(value.Boolean(true)))

	list := newArrayOf(r, c, []value.Value{value.Number(1), value.Number(2), value.String("three")})

	cases := []struct {
		name string
		args []value.Value
	}{
		{"object_no_indent", []value.Value{plain}},
		{"object_indent_2", []value.Value{plain, value.Undefined, value.Number(2)}},
		{"array", []value.Value{list}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := stringify.Call(c, value.Undefined, tc.args)
			snaps.MatchSnapshot(t, string(value.ToString(out, c)))
		})
	}
}
