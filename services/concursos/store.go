package concursos

import (
	"context"
	"database/sql"
	"encoding/json"
	scraper "concurseiro-backend/lib/scrapers/concursos"
	"concurseiro-backend/lib/timezone"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// UpsertListings writes every record, overwriting fields of an existing
// row with the same detail_url rather than duplicating it. The pipeline
// never deletes rows.
func (s Store) UpsertListings(ctx context.Context, listings []scraper.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := timezone.Now().Unix()
	for _, l := range listings {
		subjects, err := json.Marshal(l.Subjects)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			insert into concursos (
				detail_url, title, agency, vacancy_text,
				registration_text, exam_date, state_code, subjects, scraped_at
			) values (?, ?, ?, ?, ?, ?, ?, ?, ?)
			on conflict(detail_url) do update set
				title = excluded.title,
				agency = excluded.agency,
				vacancy_text = excluded.vacancy_text,
				registration_text = excluded.registration_text,
				exam_date = excluded.exam_date,
				state_code = excluded.state_code,
				subjects = excluded.subjects,
				scraped_at = excluded.scraped_at`,
			l.DetailUrl, l.Title, l.Agency, l.VacancyText,
			l.RegistrationText, l.ExamDate, l.StateCode, string(subjects), now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) ListListings(ctx context.Context) ([]scraper.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		select detail_url, title, agency, vacancy_text,
		       registration_text, exam_date, state_code, subjects
		from concursos order by title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []scraper.Listing
	for rows.Next() {
		var l scraper.Listing
		var subjects string
		err := rows.Scan(
			&l.DetailUrl, &l.Title, &l.Agency, &l.VacancyText,
			&l.RegistrationText, &l.ExamDate, &l.StateCode, &subjects,
		)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(subjects), &l.Subjects)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}
