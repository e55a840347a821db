/*
Package custody defines all common interfaces to weave together the various
subpackages of a multi-signatory custody wallet, as well as implementations of
some of the simpler components (when interfaces would be too much overhead).

A wallet holds funds and a queue of transactions. A queued transaction is a
batch of actions that runs only once a quorum of signatories approved it.
The extensions live under x/: x/cash keeps balances, x/wallet keeps the
signatory registry, the queue and the execution engine.

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody
