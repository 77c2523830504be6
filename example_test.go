// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide_test

import (
	"fmt"

	"github.com/ibnbob/abide"
)

// This example shows the basic usage of the package: create a manager,
// build a couple of Boolean expressions over shared variables, and check
// that they reduce to the same canonical node.
func Example_basic() {
	m, _ := abide.New(3, abide.Nodesize(512), abide.CacheSize(256))

	a, b, c := m.Var(1), m.Var(2), m.Var(3)

	f := a.And(b).Or(c)
	g := c.Or(a.And(b))

	fmt.Println(f.Equal(g))
	fmt.Println(f.CountNodes())
	// Output:
	// true
	// 3
}
