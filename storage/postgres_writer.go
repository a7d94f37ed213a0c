package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"ads-unifier/models"
	"ads-unifier/utils"
)

const unifiedTableName = "unified_ads_performance"

// PostgresWriter mirrors the unified table into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + unifiedTableName + ` (
			row_num                        INTEGER      PRIMARY KEY,
			date                           DATE,
			platform                       VARCHAR(20)  NOT NULL,
			campaign_id                    TEXT,
			campaign_name                  TEXT,
			ad_group_id                    TEXT,
			ad_group_name                  TEXT,
			impressions                    NUMERIC,
			clicks                         NUMERIC,
			cost                           NUMERIC(14,2),
			conversions                    NUMERIC,
			fb_video_views                 NUMERIC,
			fb_engagement_rate             NUMERIC,
			fb_reach                       NUMERIC,
			fb_frequency                   NUMERIC,
			google_conversion_value        NUMERIC,
			google_ctr                     NUMERIC,
			google_avg_cpc                 NUMERIC,
			google_quality_score           NUMERIC,
			google_search_impression_share NUMERIC,
			tt_video_views                 NUMERIC,
			tt_video_watch_25              NUMERIC,
			tt_video_watch_50              NUMERIC,
			tt_video_watch_75              NUMERIC,
			tt_video_watch_100             NUMERIC,
			tt_likes                       NUMERIC,
			tt_shares                      NUMERIC,
			tt_comments                    NUMERIC,
			calc_ctr                       NUMERIC(12,6),
			calc_cpc                       NUMERIC(14,2),
			calc_cpa                       NUMERIC(14,2),
			calc_conversion_rate           NUMERIC(12,6)
		);

		CREATE INDEX IF NOT EXISTS idx_unified_ads_date     ON ` + unifiedTableName + `(date);
		CREATE INDEX IF NOT EXISTS idx_unified_ads_platform ON ` + unifiedTableName + `(platform);
		CREATE INDEX IF NOT EXISTS idx_unified_ads_campaign ON ` + unifiedTableName + `(campaign_id);
	`)
	return err
}

// Write replaces the table contents with the given rows inside one transaction.
// row_num keeps the output sort order queryable.
func (pw *PostgresWriter) Write(table *models.UnifiedTable) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM " + unifiedTableName); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(table.Records); i += batchSize {
		end := i + batchSize
		if end > len(table.Records) {
			end = len(table.Records)
		}
		query, args := insertBatch(i, table.Records[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("postgres: insert rows %d-%d: %w", i, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// insertColumns lists the table columns in insert order.
func insertColumns() []string {
	return append([]string{"row_num"}, models.Columns()...)
}

// insertBatch builds a multi-row INSERT for batch, numbering rows from offset.
func insertBatch(offset int, batch []*models.UnifiedRecord) (string, []interface{}) {
	cols := insertColumns()
	width := len(cols)

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, r := range batch {
		base := idx * width
		placeholders := make([]string, width)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, recordArgs(offset+idx, r)...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		unifiedTableName, strings.Join(cols, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}

// recordArgs returns driver values for one row; absent values become NULL.
func recordArgs(rowNum int, r *models.UnifiedRecord) []interface{} {
	args := make([]interface{}, 0, 1+len(models.BaseColumns)+len(models.DerivedColumns))
	args = append(args, rowNum)
	for i := range models.BaseColumns {
		if i < len(r.Base) {
			args = append(args, r.Base[i])
		} else {
			args = append(args, nil)
		}
	}
	for i := range models.DerivedColumns {
		if i < len(r.Derived) {
			args = append(args, r.Derived[i])
		} else {
			args = append(args, nil)
		}
	}
	return args
}
