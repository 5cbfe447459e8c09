package hledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chiendo97/hledger-webapp/date"
)

// ErrTransactionNotFound is returned when no transaction carries the
// requested index. Match it with errors.Is.
var ErrTransactionNotFound = errors.New("transaction not found")

// DefaultCacheTTL bounds how long parsed reads are served without re-running
// the engine, so that edits made outside this process become visible.
const DefaultCacheTTL = 30 * time.Second

const (
	cacheKeyTransactions = "journal/transactions"
	cacheKeyAccounts     = "journal/accounts"
)

// Query narrows a transaction read. The zero value means the whole journal,
// which is the cacheable case.
type Query struct {
	Pattern string
	Begin   date.Date
	End     date.Date
}

// ReportOptions narrow a balance, statement or register report. Depth 0
// means unlimited.
type ReportOptions struct {
	Depth int
	Begin date.Date
	End   date.Date
	Query string
}

func (o ReportOptions) args() []string {
	var args []string
	if o.Depth > 0 {
		args = append(args, "--depth", fmt.Sprint(o.Depth))
	}
	if !o.Begin.IsZero() {
		args = append(args, "-b", o.Begin.String())
	}
	if !o.End.IsZero() {
		args = append(args, "-e", o.End.String())
	}
	if o.Query != "" {
		args = append(args, o.Query)
	}
	return args
}

// Journal is the entry point of the package: a read/edit facade over one
// hledger journal file. Reads shell out to the engine and decode its JSON
// reports; writes validate, splice the file in place, then invalidate the
// read cache. A Journal is safe for concurrent use.
type Journal struct {
	file       string
	runner     *Runner
	cache      *Cache
	currencies Currencies
	ttl        time.Duration

	// serializes the read-modify-write cycle of file edits
	writeMu sync.Mutex
}

// NewJournal builds a Journal from cfg, filling unset fields with the
// package defaults.
func NewJournal(cfg Config) *Journal {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	currencies := cfg.Currencies
	if currencies.ambiguous == nil {
		currencies = DefaultCurrencies()
	}
	return &Journal{
		file:       cfg.File,
		runner:     &Runner{Bin: cfg.Bin, Timeout: cfg.Timeout},
		cache:      NewCache(),
		currencies: currencies,
		ttl:        ttl,
	}
}

// File returns the journal file the facade reads and edits.
func (j *Journal) File() string { return j.file }

// Currencies returns the ambiguous-commodity table in effect.
func (j *Journal) Currencies() Currencies { return j.currencies }

func (j *Journal) run(ctx context.Context, args ...string) ([]byte, error) {
	return j.runner.Run(ctx, append([]string{"-f", j.file}, args...)...)
}

// readTransactions is the uncached read path, used both to fill the cache
// and whenever a caller needs positions that are current as of now.
func (j *Journal) readTransactions(ctx context.Context, q Query) ([]Transaction, error) {
	args := []string{"print", "-O", "json"}
	if !q.Begin.IsZero() {
		args = append(args, "-b", q.Begin.String())
	}
	if !q.End.IsZero() {
		args = append(args, "-e", q.End.String())
	}
	if q.Pattern != "" {
		args = append(args, q.Pattern)
	}
	out, err := j.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return DecodeTransactions(out, j.currencies)
}

// Transactions returns the journal's transactions, oldest first. The
// unfiltered read is served from the cache within its TTL; filtered reads
// always hit the engine.
func (j *Journal) Transactions(ctx context.Context, q Query) ([]Transaction, error) {
	if q != (Query{}) {
		return j.readTransactions(ctx, q)
	}
	v, err := j.cache.GetOrCompute(cacheKeyTransactions, j.ttl, func() (any, error) {
		return j.readTransactions(ctx, Query{})
	})
	if err != nil {
		return nil, err
	}
	return v.([]Transaction), nil
}

// Transaction returns the transaction with the given engine-assigned index.
func (j *Journal) Transaction(ctx context.Context, index int) (Transaction, error) {
	txs, err := j.Transactions(ctx, Query{})
	if err != nil {
		return Transaction{}, err
	}
	for _, tx := range txs {
		if tx.Index == index {
			return tx, nil
		}
	}
	return Transaction{}, fmt.Errorf("transaction #%d: %w", index, ErrTransactionNotFound)
}

// Accounts returns the declared and posted-to account names, one per line in
// engine order. The result is cached.
func (j *Journal) Accounts(ctx context.Context) ([]string, error) {
	v, err := j.cache.GetOrCompute(cacheKeyAccounts, j.ttl, func() (any, error) {
		out, err := j.run(ctx, "accounts")
		if err != nil {
			return nil, err
		}
		return DecodeAccounts(out), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Balances runs the balance report as an account tree.
func (j *Journal) Balances(ctx context.Context, opts ReportOptions) ([]BalanceRow, []Amount, error) {
	args := append([]string{"bal", "-O", "json", "--tree"}, opts.args()...)
	out, err := j.run(ctx, args...)
	if err != nil {
		return nil, nil, err
	}
	return DecodeBalances(out, j.currencies)
}

// IncomeStatement runs the income statement report.
func (j *Journal) IncomeStatement(ctx context.Context, opts ReportOptions) (*CompoundReport, error) {
	return j.compoundReport(ctx, "is", opts)
}

// BalanceSheet runs the balance sheet report. Balance sheets are point-in-
// time; callers normally leave opts.Begin zero.
func (j *Journal) BalanceSheet(ctx context.Context, opts ReportOptions) (*CompoundReport, error) {
	return j.compoundReport(ctx, "bs", opts)
}

func (j *Journal) compoundReport(ctx context.Context, report string, opts ReportOptions) (*CompoundReport, error) {
	args := append([]string{report, "-O", "json"}, opts.args()...)
	out, err := j.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return DecodeCompoundReport(out, j.currencies)
}

// Register runs the register report for one account query.
func (j *Journal) Register(ctx context.Context, account string, opts ReportOptions) ([]RegisterRow, error) {
	args := []string{"reg", account, "-O", "json"}
	if !opts.Begin.IsZero() {
		args = append(args, "-b", opts.Begin.String())
	}
	if !opts.End.IsZero() {
		args = append(args, "-e", opts.End.String())
	}
	out, err := j.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return DecodeRegister(out, j.currencies)
}

// RegisterWithTransactions fetches the account's transactions and its
// register concurrently, then joins the register's running balances back
// onto the transactions by date and description. The returned map is keyed
// by transaction index; a transaction whose register rows were all elided
// keeps the last balance seen before it.
func (j *Journal) RegisterWithTransactions(ctx context.Context, account string, opts ReportOptions) ([]Transaction, map[int]string, error) {
	var (
		txs    []Transaction
		rows   []RegisterRow
		txErr  error
		regErr error
		wg     sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		txs, txErr = j.Transactions(ctx, Query{Pattern: account, Begin: opts.Begin, End: opts.End})
	}()
	go func() {
		defer wg.Done()
		rows, regErr = j.Register(ctx, account, opts)
	}()
	wg.Wait()
	if txErr != nil {
		return nil, nil, txErr
	}
	if regErr != nil {
		return nil, nil, regErr
	}
	return txs, runningBalances(txs, rows), nil
}

// runningBalances walks transactions and register rows in lockstep. Both
// are in chronological order; a transaction may own several register rows
// (one per matching posting), and the balance after the last of them is the
// balance shown for the transaction.
func runningBalances(txs []Transaction, rows []RegisterRow) map[int]string {
	running := make(map[int]string, len(txs))
	ri := 0
	last := ""
	for _, tx := range txs {
		for ri < len(rows) && rows[ri].Date == tx.Date && rows[ri].Description == tx.Description {
			last = rows[ri].RunningStr
			ri++
		}
		running[tx.Index] = last
	}
	return running
}

// AddTransaction validates in, renders it as a journal block and appends it
// to the journal file. The read cache is invalidated before returning, so a
// read that starts after AddTransaction returns sees the new entry.
func (j *Journal) AddTransaction(ctx context.Context, in TransactionInput) error {
	if err := in.Validate(j.currencies); err != nil {
		return err
	}
	block, err := EncodeTransaction(in, j.currencies)
	if err != nil {
		return err
	}
	j.writeMu.Lock()
	defer j.writeMu.Unlock()
	if err := AppendTransaction(j.file, block); err != nil {
		return err
	}
	j.cache.Invalidate(cacheKeyTransactions, cacheKeyAccounts)
	log.Printf("add-transaction file=%q date=%s", j.file, in.Date)
	return nil
}

// UpdateTransaction replaces the transaction with the given index by the
// rendered form of in. The position to splice is taken from a fresh engine
// read, never from the cache, because a stale line range would corrupt the
// file. Multi-file journals are handled by editing the file the transaction
// was parsed from.
func (j *Journal) UpdateTransaction(ctx context.Context, index int, in TransactionInput) error {
	if err := in.Validate(j.currencies); err != nil {
		return err
	}
	block, err := EncodeTransaction(in, j.currencies)
	if err != nil {
		return err
	}

	j.writeMu.Lock()
	defer j.writeMu.Unlock()

	txs, err := j.readTransactions(ctx, Query{})
	if err != nil {
		return err
	}
	var target *Transaction
	for i := range txs {
		if txs[i].Index == index {
			target = &txs[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("transaction #%d: %w", index, ErrTransactionNotFound)
	}
	pos := target.SourcePos
	if pos.StartLine <= 0 || pos.EndLine < pos.StartLine {
		return &FileError{Path: pos.File, Msg: fmt.Sprintf("transaction #%d has no usable source position", index)}
	}
	file := pos.File
	if file == "" {
		file = j.file
	}
	if err := ReplaceRange(file, pos.StartLine, pos.EndLine, block); err != nil {
		return err
	}
	j.cache.Invalidate(cacheKeyTransactions, cacheKeyAccounts)
	log.Printf("update-transaction file=%q index=%d lines=[%d,%d]", file, index, pos.StartLine, pos.EndLine)
	return nil
}
