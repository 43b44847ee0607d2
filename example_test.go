package qdd_test

import (
	"fmt"

	"github.com/quantumdd/qdd"
)

// ExampleNewPackage demonstrates constructing a Package sized for a
// fixed qubit count.
func ExampleNewPackage() {
	pkg, err := qdd.NewPackage(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("qubits: %d\n", pkg.NumQubits())
	// Output:
	// qubits: 2
}

// ExamplePackage_MakeZeroState demonstrates building the |00> state
// and reading its amplitude vector back out.
func ExamplePackage_MakeZeroState() {
	pkg, err := qdd.NewPackage(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	zero, err := pkg.MakeZeroState(2)
	if err != nil {
		fmt.Println(err)
		return
	}

	vec := make([]qdd.ComplexValue, 4)
	pkg.GetVector(zero, 2, vec)
	fmt.Printf("%.0f %.0f %.0f %.0f\n", vec[0].Re, vec[1].Re, vec[2].Re, vec[3].Re)
	// Output:
	// 1 0 0 0
}
