package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/wallet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd(conf *config) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet state over HTTP",
		Long: `Serve the wallet state over HTTP. All endpoints are read only.

  GET /transactions/{id}
  GET /registry
  GET /balances/{addr}
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				srv := &http.Server{
					Addr:              addr,
					Handler:           newQueryHandler(a),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				cmd.PrintErrf("listening on %s\n", addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

func newQueryHandler(a *app.App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
		if err != nil {
			writeErr(w, errors.Wrapf(errors.ErrInput, "transaction id: %s", err))
			return
		}
		var view *transactionView
		err = a.View(func(db custody.ReadOnlyKVStore) error {
			var err error
			view, err = loadTransaction(db, id)
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	})
	mux.HandleFunc("GET /registry", func(w http.ResponseWriter, r *http.Request) {
		var reg *wallet.Registry
		err := a.View(func(db custody.ReadOnlyKVStore) error {
			var err error
			reg, err = wallet.GetRegistry(db)
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reg)
	})
	mux.HandleFunc("GET /balances/{addr}", func(w http.ResponseWriter, r *http.Request) {
		addr, err := custody.ParseAddress(r.PathValue("addr"))
		if err != nil {
			writeErr(w, err)
			return
		}
		var amount uint64
		err = a.View(func(db custody.ReadOnlyKVStore) error {
			var err error
			amount, err = loadBalance(db, addr)
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Address custody.Address `json:"address"`
			Amount  uint64          `json:"amount"`
		}{addr, amount})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	// Too late to change the response code.
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.ErrNotFound.Is(err):
		code = http.StatusNotFound
	case errors.ErrInput.Is(err), errors.ErrEmpty.Is(err):
		code = http.StatusBadRequest
	}
	writeJSON(w, code, struct {
		Error string `json:"error"`
	}{err.Error()})
}
