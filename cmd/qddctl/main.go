// Command qddctl drives the qdd core through a handful of built-in
// circuit scenarios (Bell, GHZ, Toffoli) and prints the resulting
// amplitudes. It does not implement a wire format or a general circuit
// description language -- both are out of the core's scope.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/quantumdd/qdd"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "qddctl",
		Short: "Drive the qdd decision-diagram core through scenarios",
	}
	root.AddCommand(newBellCommand())
	root.AddCommand(newGHZCommand())
	root.AddCommand(newToffoliCommand())
	root.AddCommand(newRotateCommand())
	return root
}

func newBellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bell",
		Short: "Build and print a two-qubit Bell state",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := qdd.NewPackage(2)
			if err != nil {
				return err
			}
			state, err := pkg.MakeZeroState(2)
			if err != nil {
				return err
			}
			state, err = applyGate(pkg, state, hadamard(), 2, nil, 0)
			if err != nil {
				return err
			}
			state, err = applyGate(pkg, state, pauliX(), 2, qdd.NewControlSet().AddPositive(0), 1)
			if err != nil {
				return err
			}
			printVector(cmd, pkg, state, 2)
			return nil
		},
	}
}

func newGHZCommand() *cobra.Command {
	var qubits int
	cmd := &cobra.Command{
		Use:   "ghz",
		Short: "Build and print an n-qubit GHZ state",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := qdd.NewPackage(qubits)
			if err != nil {
				return err
			}
			state, err := pkg.MakeZeroState(qubits)
			if err != nil {
				return err
			}
			top := qubits - 1
			state, err = applyGate(pkg, state, hadamard(), qubits, nil, top)
			if err != nil {
				return err
			}
			for target := top - 1; target >= 0; target-- {
				state, err = applyGate(pkg, state, pauliX(), qubits, qdd.NewControlSet().AddPositive(target+1), target)
				if err != nil {
					return err
				}
			}
			printVector(cmd, pkg, state, qubits)
			fmt.Fprintf(cmd.OutOrStdout(), "fidelity(ghz, ghz) = %.6f\n", pkg.Fidelity(state, state))
			return nil
		},
	}
	cmd.Flags().IntVar(&qubits, "qubits", 3, "number of qubits")
	return cmd
}

func newToffoliCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toffoli",
		Short: "Apply a Toffoli gate to |110> and |100>",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, bits := range [][]int{{1, 1, 0}, {1, 0, 0}} {
				pkg, err := qdd.NewPackage(3)
				if err != nil {
					return err
				}
				states := make([]qdd.StateAmplitude, 3)
				for i, b := range bits {
					if b == 1 {
						states[len(bits)-1-i] = qdd.StateOne
					} else {
						states[len(bits)-1-i] = qdd.StateZero
					}
				}
				state, err := pkg.MakeBasisState(3, states)
				if err != nil {
					return err
				}
				controls := qdd.NewControlSet().AddPositive(1).AddPositive(2)
				gate, err := pkg.MakeToffoliDD(3, controls, 0)
				if err != nil {
					return err
				}
				state = pkg.MultiplyMatrixVector(gate, state)
				fmt.Fprintf(cmd.OutOrStdout(), "toffoli(%v) ->\n", bits)
				printVector(cmd, pkg, state, 3)
			}
			return nil
		},
	}
}

func newRotateCommand() *cobra.Command {
	var axis string
	var theta float64
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Apply a single-qubit rotation to |0>",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := qdd.NewPackage(1)
			if err != nil {
				return err
			}
			state, err := pkg.MakeZeroState(1)
			if err != nil {
				return err
			}
			gate, err := pkg.MakeRotationDD(1, 0, axis, theta)
			if err != nil {
				return err
			}
			state = pkg.MultiplyMatrixVector(gate, state)
			printVector(cmd, pkg, state, 1)
			return nil
		},
	}
	cmd.Flags().StringVar(&axis, "axis", qdd.RotationX, "rotation axis: RX, RY, or RZ")
	cmd.Flags().Float64Var(&theta, "theta", math.Pi/2, "rotation angle in radians")
	return cmd
}

func applyGate(pkg *qdd.Package, state qdd.Edge, mat [4]qdd.ComplexValue, n int, controls *qdd.ControlSet, target int) (qdd.Edge, error) {
	gate, err := pkg.MakeGateDD(mat, n, controls, target)
	if err != nil {
		return qdd.Edge{}, err
	}
	return pkg.MultiplyMatrixVector(gate, state), nil
}

func hadamard() [4]qdd.ComplexValue {
	inv := 1 / math.Sqrt2
	return [4]qdd.ComplexValue{{Re: inv}, {Re: inv}, {Re: inv}, {Re: -inv}}
}

func pauliX() [4]qdd.ComplexValue {
	return [4]qdd.ComplexValue{{}, {Re: 1}, {Re: 1}, {}}
}

func printVector(cmd *cobra.Command, pkg *qdd.Package, state qdd.Edge, nqubits int) {
	vec := make([]qdd.ComplexValue, 1<<uint(nqubits))
	pkg.GetVector(state, nqubits, vec)
	for i, amp := range vec {
		fmt.Fprintf(cmd.OutOrStdout(), "|%0*b> %.6f%+.6fi\n", nqubits, i, amp.Re, amp.Im)
	}
}
