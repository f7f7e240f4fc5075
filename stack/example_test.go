//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package stack_test

import (
	"fmt"

	"github.com/christmasqueue/collections/stack"
)

func Example() {
	st := stack.New(3)
	for _, v := range []string{"a", "b", "c", "d"} {
		fmt.Println("push", v, st.TryPush(v))
	}
	fmt.Println(st.Peek(1))
	fmt.Println(st.TryPop())
	fmt.Println(st.IsFull(), st.IsHomogeneous())
	// Output:
	// push a true
	// push b true
	// push c true
	// push d false
	// b true
	// c true
	// false false
}

func ExampleStack_Peek() {
	st := stack.New(2)
	st.TryPush("bottom")
	st.TryPush("top")
	for depth := -1; depth <= 2; depth++ {
		v, ok := st.Peek(depth)
		fmt.Printf("%d: %q %v\n", depth, v, ok)
	}
	// Output:
	// -1: "top" true
	// 0: "top" true
	// 1: "bottom" true
	// 2: "" false
}
