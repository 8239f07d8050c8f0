package evaluator

import (
	"github.com/cwbudde/go-script/internal/interp/runtime"
)

// signalKind is the explicit control-flow result the evaluator threads
// through every statement, generalizing the teacher's boolean
// exitSignal/continueSignal/breakSignal fields (§9 design note: "rewrites
// may return a small explicit enum-like result instead of using panics").
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
	signalThrow
)

// signal carries the payload a non-none signal needs: the return value, or
// the value being thrown.
type signal struct {
	kind  signalKind
	value runtime.Value
}

var noSignal = signal{kind: signalNone}

func breakSignal() signal    { return signal{kind: signalBreak} }
func continueSignal() signal { return signal{kind: signalContinue} }
func returnSignal(v runtime.Value) signal {
	return signal{kind: signalReturn, value: v}
}
func throwSignal(v runtime.Value) signal {
	return signal{kind: signalThrow, value: v}
}

func (s signal) isNone() bool { return s.kind == signalNone }
