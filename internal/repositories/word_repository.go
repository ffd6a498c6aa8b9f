package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/vocabstudent/backend/internal/models"
)

// mysqlDuplicateEntry is the MySQL error number of a unique key violation
const mysqlDuplicateEntry = 1062

const wordColumns = `id, term, translation, definition, example, category, level, times_studied, times_correct, last_studied_at, next_review_at, created_at, updated_at`

// wordRepository implements WordRepository
type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWord reads one words row in wordColumns order
func scanWord(s rowScanner) (models.Word, error) {
	var (
		word          models.Word
		category      sql.NullString
		lastStudiedAt sql.NullTime
		nextReviewAt  sql.NullTime
	)
	err := s.Scan(
		&word.ID,
		&word.Term,
		&word.Translation,
		&word.Definition,
		&word.Example,
		&category,
		&word.Level,
		&word.TimesStudied,
		&word.TimesCorrect,
		&lastStudiedAt,
		&nextReviewAt,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return models.Word{}, err
	}

	if category.Valid {
		word.Category = &category.String
	}
	if lastStudiedAt.Valid {
		word.LastStudiedAt = &lastStudiedAt.Time
	}
	if nextReviewAt.Valid {
		word.NextReviewAt = &nextReviewAt.Time
	}
	return word, nil
}

// queryWords runs a words query and scans all rows
func (r *wordRepository) queryWords(ctx context.Context, query string, args ...any) ([]models.Word, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	words := []models.Word{}
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return words, nil
}

// GetAll retrieves all words, newest first
func (r *wordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		ORDER BY created_at DESC, id DESC
	`
	return r.queryWords(ctx, query)
}

// GetByID retrieves a word by its ID
//
// If the word does not exist, models.ErrWordNotFound is returned.
func (r *wordRepository) GetByID(ctx context.Context, id int) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE id = ?
	`

	word, err := scanWord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	return &word, nil
}

// ExistsByTerm checks if a word with the given term exists
//
// "term" must already be lowercased.
func (r *wordRepository) ExistsByTerm(ctx context.Context, term string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM words WHERE term = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, term).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new word and sets its ID
//
// If the term already exists, models.ErrDuplicateWord is returned.
func (r *wordRepository) Create(ctx context.Context, word *models.Word) error {
	query := `
		INSERT INTO words (term, translation, definition, example, category, level, times_studied, times_correct, last_studied_at, next_review_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, insertArgs(word)...)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrDuplicateWord
		}
		return fmt.Errorf("failed to insert word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	word.ID = int(id)

	return nil
}

// CreateBatch inserts several words in one statement and sets their IDs
//
// The whole batch is rejected with models.ErrDuplicateWord if any term already exists.
// IDs rely on InnoDB assigning consecutive auto-increment values to a multi-row insert.
func (r *wordRepository) CreateBatch(ctx context.Context, words []models.Word) error {
	if len(words) == 0 {
		return fmt.Errorf("no words to insert")
	}

	placeholders := make([]string, len(words))
	args := make([]any, 0, len(words)*12)
	for i := range words {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, insertArgs(&words[i])...)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO words (term, translation, definition, example, category, level, times_studied, times_correct, last_studied_at, next_review_at, created_at, updated_at)
		VALUES %s
	`, strings.Join(placeholders, ","))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrDuplicateWord
		}
		return fmt.Errorf("failed to insert words: %w", err)
	}

	firstID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for i := range words {
		words[i].ID = int(firstID) + i
	}
	return nil
}

// Update applies the non-nil fields of a partial update
//
// If the word does not exist, models.ErrWordNotFound is returned.
// If the new term belongs to another word, models.ErrDuplicateWord is returned.
func (r *wordRepository) Update(ctx context.Context, id int, fields *models.UpdateWordRequest) error {
	setParts := []string{}
	args := []any{}

	if fields.Term != nil {
		setParts = append(setParts, "term = ?")
		args = append(args, *fields.Term)
	}
	if fields.Translation != nil {
		setParts = append(setParts, "translation = ?")
		args = append(args, *fields.Translation)
	}
	if fields.Definition != nil {
		setParts = append(setParts, "definition = ?")
		args = append(args, *fields.Definition)
	}
	if fields.Example != nil {
		setParts = append(setParts, "example = ?")
		args = append(args, *fields.Example)
	}
	if fields.Category != nil {
		setParts = append(setParts, "category = ?")
		args = append(args, nullableString(*fields.Category))
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE words SET %s WHERE id = ?", strings.Join(setParts, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrDuplicateWord
		}
		return fmt.Errorf("failed to update word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// MySQL reports 0 affected rows when nothing changed, so check existence
	exists, err := r.existsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrWordNotFound
	}
	return nil
}

// UpdateProgress stores the learning state of a word
//
// If the word does not exist, models.ErrWordNotFound is returned.
func (r *wordRepository) UpdateProgress(ctx context.Context, word models.Word) error {
	query := `
		UPDATE words
		SET level = ?, times_studied = ?, times_correct = ?, last_studied_at = ?, next_review_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		word.Level,
		word.TimesStudied,
		word.TimesCorrect,
		word.LastStudiedAt,
		word.NextReviewAt,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word progress: %w", err)
	}

	return checkAffected(result)
}

// UpdateCategory sets the category of a word
//
// If the word does not exist, models.ErrWordNotFound is returned.
func (r *wordRepository) UpdateCategory(ctx context.Context, id int, category string) error {
	query := `UPDATE words SET category = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, category, id)
	if err != nil {
		return fmt.Errorf("failed to update word category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := r.existsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrWordNotFound
	}
	return nil
}

// Delete removes a word by its ID
//
// If the word does not exist, models.ErrWordNotFound is returned.
func (r *wordRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM words WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	return checkAffected(result)
}

// Search retrieves words whose term or translation contains "query"
//
// Matching is case-insensitive through the column collation.
func (r *wordRepository) Search(ctx context.Context, query string) ([]models.Word, error) {
	pattern := "%" + escapeLike(query) + "%"
	sqlQuery := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE term LIKE ? OR translation LIKE ?
		ORDER BY created_at DESC, id DESC
	`
	return r.queryWords(ctx, sqlQuery, pattern, pattern)
}

// GetByCategory retrieves words of one category
func (r *wordRepository) GetByCategory(ctx context.Context, category string) ([]models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE category = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.queryWords(ctx, query, category)
}

// GetByLevel retrieves words of one mastery level
func (r *wordRepository) GetByLevel(ctx context.Context, level int) ([]models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE level = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.queryWords(ctx, query, level)
}

// GetWithoutCategory retrieves up to "limit" words that have no category yet
func (r *wordRepository) GetWithoutCategory(ctx context.Context, limit int) ([]models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE category IS NULL OR category = ''
		ORDER BY id ASC
		LIMIT ?
	`
	return r.queryWords(ctx, query, limit)
}

func (r *wordRepository) existsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM words WHERE id = ?)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}
	return exists, nil
}

func insertArgs(word *models.Word) []any {
	var category any
	if word.Category != nil {
		category = nullableString(*word.Category)
	}
	return []any{
		word.Term,
		word.Translation,
		word.Definition,
		word.Example,
		category,
		word.Level,
		word.TimesStudied,
		word.TimesCorrect,
		word.LastStudiedAt,
		word.NextReviewAt,
		word.CreatedAt,
		word.UpdatedAt,
	}
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrWordNotFound
	}
	return nil
}

// nullableString stores empty strings as NULL
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
