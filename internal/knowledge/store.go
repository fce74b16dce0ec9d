// Package knowledge provides grounding passages for service agents.
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"dialogsynth/internal/logger"
)

// Passage is one retrievable chunk of a knowledge document.
type Passage struct {
	Source string
	Text   string
	Score  int
}

// Retriever returns the passages most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// Store keeps document chunks in SQLite and ranks them by keyword overlap.
type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ Retriever = (*Store)(nil)

// Open opens or creates the store at path.
func Open(path string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db, log: log.Component("knowledge")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS passages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		chunk INTEGER NOT NULL,
		text TEXT NOT NULL,
		text_lower TEXT NOT NULL
	)`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of stored passages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count passages: %w", err)
	}
	return n, nil
}

// EnsurePopulated indexes every .md and .txt file below dir when the store is
// empty and leaves a populated store untouched. It returns the number of
// passages added.
func (s *Store) EnsurePopulated(ctx context.Context, dir string) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithField("passages", n).Info("knowledge store already populated")
		return 0, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
			if !d.IsDir() {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	added := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", f, err)
		}
		source, _ := filepath.Rel(dir, f)
		for i, chunk := range Chunk(string(data)) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO passages (source, chunk, text, text_lower) VALUES (?, ?, ?, ?)`,
				source, i, chunk, strings.ToLower(chunk)); err != nil {
				return 0, fmt.Errorf("insert passage: %w", err)
			}
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit passages: %w", err)
	}
	s.log.WithFields(map[string]interface{}{
		"files":    len(files),
		"passages": added,
	}).Info("knowledge store populated")
	return added, nil
}

// Chunk splits a document into paragraphs separated by blank lines.
func Chunk(doc string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Terms lowercases text and splits it into words of at least three letters
// or digits.
func Terms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Retrieve returns up to k passages sharing the most terms with query. Ties
// keep insertion order. Matching runs against text_lower, which is folded in
// Go because SQLite's LOWER only folds ASCII.
func (s *Store) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	terms := Terms(query)
	if len(terms) == 0 || k <= 0 {
		return nil, nil
	}

	clauses := make([]string, len(terms))
	args := make([]any, len(terms))
	for i, t := range terms {
		clauses[i] = "text_lower LIKE ?"
		args[i] = "%" + t + "%"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, text, text_lower FROM passages WHERE `+strings.Join(clauses, " OR ")+` ORDER BY id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query passages: %w", err)
	}
	defer rows.Close()

	var out []Passage
	for rows.Next() {
		var (
			p     Passage
			lower string
		)
		if err := rows.Scan(&p.Source, &p.Text, &lower); err != nil {
			return nil, err
		}
		for _, t := range terms {
			if strings.Contains(lower, t) {
				p.Score++
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// Format renders passages for a prompt, one block per passage.
func Format(passages []Passage) string {
	if len(passages) == 0 {
		return "No relevant information found."
	}
	var sb strings.Builder
	for i, p := range passages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%s]\n%s", p.Source, p.Text)
	}
	return sb.String()
}
