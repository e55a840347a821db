/*
Package cash is the custody ledger: it keeps the balance of every address and
moves value between them.

Balances are plain unsigned amounts of a single unit. The wallet execution
engine uses the Controller to move custodied value, and SendMsg lets any
account fund another one, for example the wallet.
*/
package cash
