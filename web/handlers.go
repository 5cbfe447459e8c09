package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	hledger "github.com/chiendo97/hledger-webapp"
	"github.com/chiendo97/hledger-webapp/date"
)

type handler struct {
	svc Service
}

// listTransactions serves GET /api/transactions. Optional query parameters:
// month (YYYY-MM) bounds the read, q is an hledger query pattern.
func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	var q hledger.Query
	q.Pattern = r.URL.Query().Get("q")
	if m, ok, err := monthParam(r); err != nil {
		writeError(w, err)
		return
	} else if ok {
		q.Begin, q.End = m.Begin(), m.End()
	}

	txs, err := h.svc.Transactions(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (h *handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, err := h.svc.Transaction(r.Context(), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	var in hledger.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, &hledger.ValidationError{Msg: "invalid request body: " + err.Error()})
		return
	}
	if err := h.svc.AddTransaction(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "created"})
}

func (h *handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in hledger.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, &hledger.ValidationError{Msg: "invalid request body: " + err.Error()})
		return
	}
	if err := h.svc.UpdateTransaction(r.Context(), index, in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "updated"})
}

func (h *handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.Accounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *handler) balances(w http.ResponseWriter, r *http.Request) {
	opts, err := reportOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, totals, err := h.svc.Balances(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows, "totals": totals})
}

func (h *handler) incomeStatement(w http.ResponseWriter, r *http.Request) {
	opts, err := reportOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.svc.IncomeStatement(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	opts, err := reportOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	// a balance sheet is point-in-time: only the end bound applies
	opts.Begin = date.Date{}
	report, err := h.svc.BalanceSheet(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// register serves GET /api/register?account=NAME[&month=YYYY-MM]: the
// account's transactions joined with its running balances.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")
	if account == "" {
		writeError(w, &hledger.ValidationError{Field: "account", Msg: "query parameter is required"})
		return
	}
	opts, err := reportOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	txs, running, err := h.svc.RegisterWithTransactions(r.Context(), account, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account":      account,
		"transactions": txs,
		"running":      running,
	})
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 1 {
		return 0, &hledger.ValidationError{Field: "index", Msg: "must be a positive integer, got " + strconv.Quote(raw)}
	}
	return index, nil
}

func monthParam(r *http.Request) (date.Month, bool, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return date.Month{}, false, nil
	}
	m, err := date.ParseMonth(raw)
	if err != nil {
		return date.Month{}, false, &hledger.ValidationError{Field: "month", Msg: err.Error()}
	}
	return m, true, nil
}

func reportOptions(r *http.Request) (hledger.ReportOptions, error) {
	var opts hledger.ReportOptions
	if m, ok, err := monthParam(r); err != nil {
		return opts, err
	} else if ok {
		opts.Begin, opts.End = m.Begin(), m.End()
	}
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil || depth < 1 {
			return opts, &hledger.ValidationError{Field: "depth", Msg: "must be a positive integer, got " + strconv.Quote(raw)}
		}
		opts.Depth = depth
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the package's error taxonomy onto HTTP statuses: caller
// mistakes are 400, a missing transaction is 404, a misbehaving or
// unparseable engine is 502, and file trouble is 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var verr *hledger.ValidationError
	var eerr *hledger.ExecError
	var derr *hledger.DecodeError
	var aerr *hledger.AmbiguousAmountError
	switch {
	case errors.As(err, &verr), errors.As(err, &aerr):
		status = http.StatusBadRequest
	case errors.Is(err, hledger.ErrTransactionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &eerr), errors.As(err, &derr):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
