package questoes

import (
	"context"
	"database/sql"
	"encoding/json"
	scraper "concurseiro-backend/lib/scrapers/questoes"
	"concurseiro-backend/lib/timezone"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
	// must match the extractor's prefix length so in-run and in-store
	// dedup agree
	dedupPrefixLen int
}

func NewStore(database *sql.DB, dedupPrefixLen int) Store {
	if dedupPrefixLen == 0 {
		dedupPrefixLen = 100
	}
	return Store{db: database, dedupPrefixLen: dedupPrefixLen}
}

// InsertQuestions writes every record, silently skipping rows whose
// dedup key already exists from a previous run (first occurrence wins,
// matching the in-run policy).
func (s Store) InsertQuestions(ctx context.Context, questions []scraper.Question) (inserted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := timezone.Now().Unix()
	for _, q := range questions {
		alternatives, err := json.Marshal(q.Alternatives)
		if err != nil {
			return inserted, err
		}
		tags, err := json.Marshal(q.Tags)
		if err != nil {
			return inserted, err
		}

		res, err := tx.ExecContext(ctx, `
			insert into questoes (
				dedup_key, body_text, alternatives, correct_answer,
				answer_confidence, explanation, subject, topic,
				agency, year, difficulty, tags, source, scraped_at
			) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			on conflict(dedup_key) do nothing`,
			scraper.DedupKey(q.BodyText, s.dedupPrefixLen),
			q.BodyText, string(alternatives), q.CorrectAnswer,
			string(q.AnswerConfidence), q.Explanation, q.Subject, q.Topic,
			q.Agency, q.Year, string(q.Difficulty), string(tags), q.Source, now,
		)
		if err != nil {
			return inserted, err
		}

		affected, err := res.RowsAffected()
		if err == nil {
			inserted += int(affected)
		}
	}

	return inserted, tx.Commit()
}

func (s Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `select count(*) from questoes`).Scan(&count)
	return count, err
}
