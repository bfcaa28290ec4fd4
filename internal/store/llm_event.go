package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var llmEventSelectColumns = []string{
	"id", "sequence", "timestamp", "request_id", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body",
}

// eventRepo implements EventRepo with the ent SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(llmEventsTableName).
		Columns(
			"sequence", "timestamp", "request_id", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
			"request_body", "response_body",
		).
		Values(
			seqNum, time.Now().UTC(), data.RequestID, data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
			data.RequestBody, data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	t := entsql.Table(llmEventsTableName)
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventSelectColumns...).
		From(t).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(llmEventSelectColumns...).
		From(entsql.Table(llmEventsTableName)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStats, error) {
	stats, err := r.usageBy(ctx, "purpose")
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].Purpose, stats[i].Model = stats[i].Model, ""
	}
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStats, error) {
	return r.usageBy(ctx, "model")
}

// usageBy groups the event log on column. The group key is returned in the
// Model field; callers move it where it belongs.
func (r *eventRepo) usageBy(ctx context.Context, column string) ([]UsageStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			column,
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			entsql.Avg("latency_ms"),
		).
		From(entsql.Table(llmEventsTableName)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var stats []UsageStats
	for rows.Next() {
		var (
			st      UsageStats
			in, out sql.NullInt64
			avg     sql.NullFloat64
		)
		if err := rows.Scan(&st.Model, &st.Calls, &in, &out, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.InputTokens = int(in.Int64)
		st.OutputTokens = int(out.Int64)
		st.AvgLatencyMs = int64(avg.Float64 + 0.5)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var e LLMEvent
	err := row.Scan(
		&e.ID, &e.Sequence, &e.Timestamp, &e.RequestID, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	return &e, nil
}
