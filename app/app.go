package app

import (
	"sync"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// App processes messages one at a time against a commit store.
type App struct {
	mu      sync.Mutex
	store   custody.CommitKVStore
	handler custody.Handler
	logger  log.Logger
	sinks   []custody.EventSink
	chainID string
}

// New returns an application delivering messages to handler. The latest
// committed version of the store is loaded.
func New(store custody.CommitKVStore, handler custody.Handler, logger log.Logger) (*App, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = custody.DefaultLogger
	}
	return &App{
		store:   store,
		handler: handler,
		logger:  logger,
		chainID: chainID,
	}, nil
}

// Subscribe registers a sink notified about events of every delivered
// message.
func (a *App) Subscribe(sink custody.EventSink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sinks = append(a.sinks, sink)
}

// ChainID returns the chain id set by the genesis.
func (a *App) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// InitChain stores the genesis state. It can be done only once.
func (a *App) InitChain(gen Genesis, init custody.Initializer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppOptions, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := a.commit(cache); err != nil {
		return err
	}
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Deliver processes a single message. The store is committed if the
// handler succeeds, or if it fails while returning a result describing a
// partial outcome. Events of committed results are published.
func (a *App) Deliver(ctx custody.Context, msg custody.Msg) (*custody.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := msg.Validate(); err != nil {
		return nil, errors.Append(errors.ErrMsg, err)
	}
	version, err := a.store.LatestVersion()
	if err != nil {
		return nil, err
	}
	ctx = custody.WithHeight(ctx, version.Version+1)
	if a.chainID != "" {
		ctx = custody.WithChainID(ctx, a.chainID)
	}
	ctx = custody.WithLogger(ctx, a.logger.With("path", msg.Path()))

	cache := a.store.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, msg)
	if res == nil {
		cache.Discard()
		if err == nil {
			err = errors.Wrap(errors.ErrHuman, "handler returned no result")
		}
		return nil, err
	}
	if cerr := a.commit(cache); cerr != nil {
		return nil, cerr
	}
	for _, ev := range res.Events {
		for _, s := range a.sinks {
			s.Publish(ev)
		}
	}
	return res, err
}

func (a *App) commit(cache custody.KVCacheWrap) error {
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write")
	}
	id, err := a.store.Commit()
	if err != nil {
		return errors.Wrap(err, "commit")
	}
	a.logger.Debug("committed", "version", id.Version, "hash", id.Hash)
	return nil
}

// View calls fn with a consistent snapshot of the committed state.
func (a *App) View(fn func(custody.ReadOnlyKVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cache := a.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// Height returns the last committed version.
func (a *App) Height() (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, err := a.store.LatestVersion()
	if err != nil {
		return 0, err
	}
	return id.Version, nil
}
