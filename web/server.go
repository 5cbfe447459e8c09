// Package web exposes a journal over a JSON HTTP API, for a browser
// frontend or scripted access.
package web

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	hledger "github.com/chiendo97/hledger-webapp"
)

// Service is the journal surface the handlers need. *hledger.Journal
// implements it; tests substitute a fake.
type Service interface {
	Transactions(ctx context.Context, q hledger.Query) ([]hledger.Transaction, error)
	Transaction(ctx context.Context, index int) (hledger.Transaction, error)
	Accounts(ctx context.Context) ([]string, error)
	Balances(ctx context.Context, opts hledger.ReportOptions) ([]hledger.BalanceRow, []hledger.Amount, error)
	IncomeStatement(ctx context.Context, opts hledger.ReportOptions) (*hledger.CompoundReport, error)
	BalanceSheet(ctx context.Context, opts hledger.ReportOptions) (*hledger.CompoundReport, error)
	RegisterWithTransactions(ctx context.Context, account string, opts hledger.ReportOptions) ([]hledger.Transaction, map[int]string, error)
	AddTransaction(ctx context.Context, in hledger.TransactionInput) error
	UpdateTransaction(ctx context.Context, index int, in hledger.TransactionInput) error
}

var _ Service = (*hledger.Journal)(nil)

// Server serves the journal API on one address.
type Server struct {
	svc  Service
	addr string
}

// New builds a Server for the given journal service.
func New(svc Service, addr string) *Server {
	return &Server{svc: svc, addr: addr}
}

// Router wires all routes and middleware.
func (s *Server) Router() *chi.Mux {
	h := &handler{svc: s.svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.listTransactions)
			r.Post("/", h.addTransaction)
			r.Get("/{index}", h.getTransaction)
			r.Put("/{index}", h.updateTransaction)
		})
		r.Get("/accounts", h.listAccounts)
		r.Get("/balances", h.balances)
		r.Get("/income-statement", h.incomeStatement)
		r.Get("/balance-sheet", h.balanceSheet)
		r.Get("/register", h.register)
	})
	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	log.Printf("listen addr=%q", s.addr)
	return http.ListenAndServe(s.addr, s.Router())
}
