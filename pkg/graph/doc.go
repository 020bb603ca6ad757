/*
Package graph contains the propagation primitives every store is built from.

A graph is a DAG of typed nodes. Values are pushed into a root node with
Launch and travel depth-first, synchronously, until every reachable branch
has either finished or been stopped by a Filter.

# Node Kinds

  - Filter: stops the enclosing Seq when its predicate returns false.
  - Compute: replaces the flowing value with the result of its function.
  - Update: writes the flowing value into a Cell.
  - Run: calls a side-effecting function; the value is unchanged.
  - Multi: forwards the same value to every entry of a FanOut.
  - Single: wraps one node.
  - Seq: runs its steps in order.

A FanOut is the only mutable part of a graph. Entries are addressed by the
Handle returned from Append, so detaching one attachment never disturbs
another, even when the same pipeline was attached twice.

Graphs are not safe for concurrent use.
*/
package graph
