package activation_test

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/activation"
	"github.com/cwbudde/algo-aliasfree/dsp/tensor"
)

func ExampleNewAntiAlias() {
	act, _ := activation.NewAntiAlias(2)

	x, _ := tensor.New(4, 2, 100)

	y, _ := act.Process(x)

	fmt.Println(y)
	fmt.Println(act.State().Keys())

	// Output:
	// Tensor(4, 2, 100)
	// [act.alpha act.beta down.lowpass.filter up.filter]
}

func ExampleSnakeBeta_ProcessSample() {
	act, _ := activation.NewSnakeBeta(1)

	// With zero parameters the activation is x + sin(x)^2.
	fmt.Printf("%.6f\n", act.ProcessSample(0, 1))

	// Output:
	// 1.708073
}
