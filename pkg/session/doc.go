/*
Package session hosts named automata for concurrent front-ends.

An automaton is not safe for concurrent use, so the Manager gives every name
its own lock and runs each operation while holding it. Locks are
reference-counted and disappear once no caller holds them. Runs executed
through the Manager are recorded in a ports.HistoryStore.
*/
package session
