/*
Package ports defines the driven ports (interfaces) for the automata host.

These interfaces decouple the session manager and the transport adapters from
concrete implementations, so the same host can run against the in-process
automaton and any history backend.

# Key Interfaces

  - Automaton: The build-and-run surface adapters drive (satisfied by *automata.Automaton).
  - HistoryStore: Responsible for persisting run records per automaton (e.g., Memory or Redis).
*/
package ports
