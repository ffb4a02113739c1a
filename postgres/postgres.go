// Package postgres installs SQL functions that apply the caesar cipher inside
// PostgreSQL, so that queries produce the same output as the Go package.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/paraglidehq/caesar/alphabet"
)

// Config holds the cipher configuration stored in the database.
type Config struct {
	Alphabet string
}

// DefaultConfig returns the configuration matching package caesar.
func DefaultConfig() Config {
	return Config{
		Alphabet: alphabet.Chars,
	}
}

// Size is the number of characters in the configured alphabet.
func (c Config) Size() int { return utf8.RuneCountInString(c.Alphabet) }

// ErrConfigMismatch is returned by Migrate when the stored alphabet differs from the configured one.
var ErrConfigMismatch = errors.New("caesar: database config does not match application config")

// ErrInvalidConfig is returned by Migrate for an empty alphabet.
var ErrInvalidConfig = errors.New("caesar: invalid config")

// Migrate runs the idempotent caesar migration with the given configuration.
// If the database already has a different alphabet, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	if cfg.Size() == 0 {
		return fmt.Errorf("%w: empty alphabet", ErrInvalidConfig)
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _caesar_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			alphabet text NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("caesar: create config table: %w", err)
	}

	var stored string
	err = db.QueryRowContext(ctx, `SELECT alphabet FROM _caesar_config`).Scan(&stored)
	if err == nil {
		if stored != cfg.Alphabet {
			return fmt.Errorf("%w: db has alphabet %q (%d chars), app has %q (%d chars)",
				ErrConfigMismatch, stored, utf8.RuneCountInString(stored), cfg.Alphabet, cfg.Size())
		}
	} else if errors.Is(err, sql.ErrNoRows) {
		_, err = db.ExecContext(ctx, `INSERT INTO _caesar_config (alphabet) VALUES ($1)`, cfg.Alphabet)
		if err != nil {
			return fmt.Errorf("caesar: insert config: %w", err)
		}
	} else {
		return fmt.Errorf("caesar: read config: %w", err)
	}

	if _, err = db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return fmt.Errorf("caesar: run migrations: %w", err)
	}
	return nil
}

// GetConfig reads the caesar configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT alphabet FROM _caesar_config`).Scan(&cfg.Alphabet)
	return cfg, err
}

// Encode runs caesar_encode in the database.
func Encode(ctx context.Context, db *sql.DB, text string, offset int) (string, error) {
	return call(ctx, db, "caesar_encode", text, offset)
}

// Decode runs caesar_decode in the database.
func Decode(ctx context.Context, db *sql.DB, text string, offset int) (string, error) {
	return call(ctx, db, "caesar_decode", text, offset)
}

func call(ctx context.Context, db *sql.DB, fn, text string, offset int) (string, error) {
	var out string
	err := db.QueryRowContext(ctx, "SELECT "+fn+"($1, $2)", text, int64(offset)).Scan(&out)
	if err != nil {
		return "", fmt.Errorf("caesar: %s: %w", fn, err)
	}
	return out, nil
}

// quoteLiteral renders s as a standard-conforming SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func generateSQL(cfg Config) string {
	size := cfg.Size()
	lit := quoteLiteral(cfg.Alphabet)

	return fmt.Sprintf(`
-- Alphabet position, 0-based; -1 when absent
CREATE OR REPLACE FUNCTION caesar_index(c text)
  RETURNS int
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT LEAKPROOF
  AS $fn$
  SELECT CASE WHEN char_length(c) = 1 THEN strpos(%s, c) - 1 ELSE -1 END;
$fn$;

-- Shift every alphabet character by k (already in [0, size)); others become a space
CREATE OR REPLACE FUNCTION caesar_shift(input text, k int)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $fn$
DECLARE
  alphabet text := %s;
  result text := '';
  c text;
  p int;
BEGIN
  FOR i IN 1..char_length(input) LOOP
    c := substring(input FROM i FOR 1);
    p := strpos(alphabet, c);
    IF p = 0 THEN
      result := result || ' ';
    ELSE
      result := result || substring(alphabet FROM ((p - 1 + k) %% %d) + 1 FOR 1);
    END IF;
  END LOOP;
  RETURN result;
END;
$fn$;

CREATE OR REPLACE FUNCTION caesar_encode(input text, shift bigint)
  RETURNS text
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $fn$
  SELECT caesar_shift(input, (((shift %% %d) + %d) %% %d)::int);
$fn$;

CREATE OR REPLACE FUNCTION caesar_decode(input text, shift bigint)
  RETURNS text
  LANGUAGE sql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $fn$
  SELECT caesar_encode(input, -(shift %% %d));
$fn$;
`,
		lit,              // caesar_index alphabet
		lit,              // caesar_shift alphabet
		size,             // caesar_shift wraparound
		size, size, size, // caesar_encode floored modulo
		size,             // caesar_decode
	)
}
