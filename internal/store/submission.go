package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type submissionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *submissionRepo) Append(ctx context.Context, sub *Submission) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(submissionsTable).
		Columns("sequence", "created_at", "session_id", "dataset", "mode",
			"prompt", "answer", "correct", "score", "total", "feedback").
		Values(seqNum, sub.CreatedAt, sub.SessionID, sub.Dataset, sub.Mode,
			sub.Prompt, sub.Answer, sub.Correct, sub.Score, sub.Total, sub.Feedback).
		Returning("id").
		Query()

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	sub.ID = id
	sub.Sequence = seqNum
	return nil
}

func (r *submissionRepo) Latest(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	t := entsql.Table(submissionsTable)
	sel := selectSubmissions(t).
		OrderBy(entsql.Desc(t.C("id"))).
		Limit(limit)
	return r.query(ctx, sel)
}

func (r *submissionRepo) Since(ctx context.Context, afterID int64) ([]Submission, error) {
	t := entsql.Table(submissionsTable)
	sel := selectSubmissions(t).
		Where(entsql.GT(t.C("id"), afterID)).
		OrderBy(t.C("id"))
	return r.query(ctx, sel)
}

func (r *submissionRepo) Count(ctx context.Context) (int, error) {
	t := entsql.Table(submissionsTable)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(t).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *submissionRepo) Watch(ctx context.Context, afterID int64, interval time.Duration) (<-chan Submission, <-chan error) {
	out := make(chan Submission)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			subs, err := r.Since(ctx, afterID)
			if err != nil {
				if ctx.Err() == nil {
					errc <- err
				}
				return
			}
			for _, s := range subs {
				select {
				case out <- s:
					afterID = s.ID
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc
}

func selectSubmissions(t *entsql.SelectTable) *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select(t.C("id"), t.C("sequence"), t.C("created_at"), t.C("session_id"),
			t.C("dataset"), t.C("mode"), t.C("prompt"), t.C("answer"),
			t.C("correct"), t.C("score"), t.C("total"), t.C("feedback")).
		From(t)
}

func (r *submissionRepo) query(ctx context.Context, sel *entsql.Selector) ([]Submission, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Sequence, &s.CreatedAt, &s.SessionID,
			&s.Dataset, &s.Mode, &s.Prompt, &s.Answer,
			&s.Correct, &s.Score, &s.Total, &s.Feedback); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
