package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/wallet"
)

// Stack returns the handler of a custody application. Every message must
// be signed. Programs bound to addresses can be invoked by executed wallet
// transactions, it may be nil.
func Stack(programs *wallet.Programs) custody.Handler {
	auth := sigs.Authenticate{}
	ledger := cash.NewController(cash.NewBucket())

	r := NewRouter()
	// A failed send leaves no partial balance update behind.
	cash.RegisterRoutes(decorated(r, utils.NewSavepoint()), auth, ledger)
	wallet.RegisterRoutes(r, auth, wallet.New(ledger, programs))

	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
	).WithHandler(r)
}

// Initializers returns the genesis initializer of all extensions used by
// Stack.
func Initializers() custody.Initializer {
	return ChainInitializers(
		cash.Initializer{},
		wallet.Initializer{},
	)
}

// decorated returns a registry wrapping every registered handler with
// decorators.
func decorated(r custody.Registry, decorators ...custody.Decorator) custody.Registry {
	return decoratedRegistry{Registry: r, chain: ChainDecorators(decorators...)}
}

type decoratedRegistry struct {
	custody.Registry
	chain Decorators
}

func (d decoratedRegistry) Handle(path string, h custody.Handler) {
	d.Registry.Handle(path, d.chain.WithHandler(h))
}
