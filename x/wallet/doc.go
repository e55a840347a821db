/*
Package wallet implements a multi-signatory custody wallet.

A fixed set of signatories controls the wallet. Any signatory may queue a
transaction, an ordered batch of actions. Once the number of approvals from
current signatories reaches the threshold, the batch is executed
atomically: either every action takes effect or none does.

Actions can move value held by the wallet, invoke code bound to an address,
deploy new code units at deterministic addresses and amend the signatory
registry itself. Registry amendments are only reachable through executed
transactions.
*/
package wallet
