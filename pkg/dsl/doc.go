/*
Package dsl provides a fluent builder for constructing automata by state name.

The low-level API in the root package works with state indices, which forces
callers to register states before the transitions that reference them. The
builder removes that ordering constraint: states are declared by name (or
implicitly, as transition targets) and Build registers everything in
declaration order.

Example usage:

	b := dsl.New()
	b.State("q0").Initial().On('a', "q1")
	b.State("q1").On('b', "q2")
	b.State("q2").Accepting().On('c', "q0")

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	res, _ := a.ProcessString(ctx, "ab")
*/
package dsl
