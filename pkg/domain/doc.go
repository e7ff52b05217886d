/*
Package domain contains the core domain models of the automata engine.

It defines the fundamental entities of a deterministic finite automaton, such as States,
Transitions and the Trace produced by one execution. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - State: A named vertex of the automaton, optionally accepting.
  - Transition: An ordered (from, to, symbol) triple.
  - Limits: The configured capacities (states, transitions, alphabet, trace, name length).
  - Trace: The ordered, human-readable log of one execution.
  - ProcessResult: The verdict of one execution together with its Trace.
  - Definition: A read-only snapshot of the automaton used by presentation layers.
*/
package domain
