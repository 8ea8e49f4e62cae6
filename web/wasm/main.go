//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cwbudde/algo-encoder/internal/webdemo"
)

var (
	engine = webdemo.NewEngine()
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("setPhase", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		engine.SetPhase(args[0].Float())
		return js.Null()
	}))

	api.Set("setSpeed", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		engine.SetSpeed(args[0].Float())
		return js.Null()
	}))

	api.Set("output", export(func(_ []js.Value) any {
		b, err := engine.OutputJSON()
		if err != nil {
			return errorValue(err)
		}
		return string(b)
	}))

	api.Set("edgeTable", export(func(_ []js.Value) any {
		rows, err := engine.EdgeTable()
		if err != nil {
			return errorValue(err)
		}
		return marshal(rows)
	}))

	api.Set("summary", export(func(_ []js.Value) any {
		sum, err := engine.Summary()
		if err != nil {
			return errorValue(err)
		}
		return marshal(sum)
	}))

	js.Global().Set("AlgoEncoderDemo", api)
	select {}
}

func marshal(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return errorValue(err)
	}
	return string(b)
}

func errorValue(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
