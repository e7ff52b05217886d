/*
Package automata is a deterministic finite automaton (DFA) simulator.

An Automaton owns a bounded registry of states, a table of labelled
transitions, an alphabet derived from the symbols those transitions use, a
designated initial state and an execution cursor. Running an input string
walks the transitions symbol by symbol and yields an accept/reject verdict
together with a human-readable trace of every step.

# Concept

The automaton is built incrementally and then executed. Building fixes the
structure; executing only moves the cursor. Every run starts from the initial
state, so results never depend on earlier runs. A symbol outside the alphabet
or a missing transition ends the run early with a rejection; neither is an
error.

Capacities (states, transitions, alphabet symbols, trace records, name length)
are set once at construction through domain.Limits. A limit of zero means
unbounded.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
	)

	func main() {
		a := automata.New()

		q0, _ := a.AddState("q0", false)
		q1, _ := a.AddState("q1", false)
		q2, _ := a.AddState("q2", true)

		_ = a.AddTransition(q0, q1, 'a')
		_ = a.AddTransition(q1, q2, 'b')
		_ = a.AddTransition(q2, q0, 'c')

		if err := a.SetInitialState(q0); err != nil {
			log.Fatal(err)
		}

		res, err := a.ProcessString(context.Background(), "abc")
		if err != nil {
			log.Fatal(err)
		}
		for _, line := range res.Trace.Lines() {
			fmt.Println(line)
		}
	}

The pkg/dsl package offers a fluent builder that resolves states by name, and
pkg/session hosts many named automata behind per-name locks for the HTTP and
MCP adapters.
*/
package automata
