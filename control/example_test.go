package control_test

import (
	"fmt"

	"github.com/plus3/puppet/control"
)

func ExampleResolve() {
	p := control.NewPlayerState(nil)
	in := &control.InputSnapshot{}

	in.Buttons[control.ButtonRight] = true
	control.Resolve(in, &p, control.DefaultSpeed, 1)
	fmt.Println(p.State)

	in.Buttons[control.ButtonRight] = false
	control.Resolve(in, &p, control.DefaultSpeed, 1)
	fmt.Println(p.State)

	in.Keys[control.KeyUp] = true
	control.Resolve(in, &p, control.DefaultSpeed, 1)
	fmt.Println(p.State, p.Translation())
	// Output:
	// special
	// special
	// moving {-0.5 0 0}
}
