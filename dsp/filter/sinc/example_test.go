package sinc_test

import (
	"fmt"

	"github.com/cwbudde/algo-aliasfree/dsp/filter/sinc"
)

func ExampleKaiserSinc() {
	h, _ := sinc.KaiserSinc(0.25, 0.3, 12)

	var sum float64
	for _, v := range h {
		sum += v
	}

	fmt.Printf("taps=%d sum=%.6f center=%.4f\n", len(h), sum, h[5])
	// Output:
	// taps=12 sum=1.000000 center=0.4432
}
