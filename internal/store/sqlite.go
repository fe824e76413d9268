package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS treks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	slug         TEXT NOT NULL UNIQUE,
	state        TEXT NOT NULL DEFAULT '',
	difficulty   TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	tags         TEXT NOT NULL DEFAULT '[]',
	activities   TEXT NOT NULL DEFAULT '[]',
	description  TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	is_pinned    INTEGER NOT NULL DEFAULT 0,
	pin_priority INTEGER NOT NULL DEFAULT 100,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	mobile     TEXT NOT NULL,
	user_type  TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS blogs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	excerpt     TEXT NOT NULL DEFAULT '',
	author      TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	is_featured INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS faqs (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL,
	ord      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS testimonials (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	author      TEXT NOT NULL,
	quote       TEXT NOT NULL,
	trek_name   TEXT NOT NULL DEFAULT '',
	is_featured INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS banners (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	target_url TEXT NOT NULL DEFAULT '',
	is_active  INTEGER NOT NULL DEFAULT 1,
	ord        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS team_members (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL,
	role      TEXT NOT NULL,
	photo_url TEXT NOT NULL DEFAULT '',
	ord       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_treks_name ON treks(name);
CREATE INDEX IF NOT EXISTS idx_treks_category ON treks(category);
CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs(created_at);
CREATE INDEX IF NOT EXISTS idx_faqs_category_ord ON faqs(category, ord);
CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

const trekColumns = `id, name, slug, state, difficulty, category, tags, activities, description, image_url, is_pinned, pin_priority, created_at`

func scanTrek(row interface{ Scan(...any) error }) (*model.Trek, error) {
	var t model.Trek
	var tagsJSON, activitiesJSON string
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.State, &t.Difficulty, &t.Category,
		&tagsJSON, &activitiesJSON, &t.Description, &t.ImageURL,
		&t.IsPinned, &t.PinPriority, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &t.Tags); err != nil {
		return nil, eris.Wrap(err, "sqlite: decode tags")
	}
	if err := json.Unmarshal([]byte(activitiesJSON), &t.Activities); err != nil {
		return nil, eris.Wrap(err, "sqlite: decode activities")
	}
	return &t, nil
}

func (s *SQLiteStore) collectTreks(rows *sql.Rows) ([]model.Trek, error) {
	defer rows.Close() //nolint:errcheck
	var treks []model.Trek
	for rows.Next() {
		t, err := scanTrek(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan trek")
		}
		treks = append(treks, *t)
	}
	return treks, eris.Wrap(rows.Err(), "sqlite: iterate treks")
}

func (s *SQLiteStore) TreksByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.TrekCandidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state FROM treks WHERE lower(name) LIKE ? ESCAPE '\' ORDER BY id LIMIT ?`,
		escapeLike(prefix)+"%", limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query treks by prefix")
	}
	return collectCandidates(rows)
}

func (s *SQLiteStore) TreksBySearchTerm(ctx context.Context, term string, limit int) ([]model.TrekCandidate, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, state FROM treks
		WHERE lower(name) LIKE ? ESCAPE '\'
		   OR lower(state) LIKE ? ESCAPE '\'
		   OR EXISTS (
			SELECT 1 FROM json_each(treks.tags)
			WHERE lower(json_each.value) LIKE ? ESCAPE '\'
		   )
		ORDER BY id LIMIT ?`,
		pattern, pattern, pattern, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query treks by term")
	}
	return collectCandidates(rows)
}

func collectCandidates(rows *sql.Rows) ([]model.TrekCandidate, error) {
	defer rows.Close() //nolint:errcheck
	var out []model.TrekCandidate
	for rows.Next() {
		var c model.TrekCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.State); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan candidate")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate candidates")
}

func (s *SQLiteStore) GetTrek(ctx context.Context, id int64) (*model.Trek, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+trekColumns+` FROM treks WHERE id = ?`, id,
	)
	t, err := scanTrek(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get trek")
	}
	return t, nil
}

func (s *SQLiteStore) ListFeaturedTreks(ctx context.Context) ([]model.Trek, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+trekColumns+` FROM treks
		ORDER BY CASE WHEN is_pinned = 1 THEN 0 ELSE 1 END, pin_priority, created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list featured treks")
	}
	return s.collectTreks(rows)
}

func (s *SQLiteStore) ListTreks(ctx context.Context, filter TrekFilter) ([]model.Trek, int, error) {
	where := "WHERE 1=1"
	var args []any
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Difficulty != "" {
		where += " AND difficulty = ?"
		args = append(args, filter.Difficulty)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM treks `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: count treks")
	}

	query := `SELECT ` + trekColumns + ` FROM treks ` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: list treks")
	}
	treks, err := s.collectTreks(rows)
	return treks, total, err
}

func (s *SQLiteStore) ListTreksByTag(ctx context.Context, tag string) ([]model.Trek, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+trekColumns+` FROM treks
		WHERE EXISTS (
			SELECT 1 FROM json_each(treks.tags)
			WHERE lower(json_each.value) = lower(?)
		)
		ORDER BY created_at DESC`,
		tag,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list treks by tag")
	}
	return s.collectTreks(rows)
}

func (s *SQLiteStore) TrekCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM treks WHERE category != '' ORDER BY category`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: trek categories")
	}
	defer rows.Close() //nolint:errcheck

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan category")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate categories")
}

func (s *SQLiteStore) RelatedTreks(ctx context.Context, trekID int64, limit int) ([]model.Trek, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+trekColumns+` FROM treks
		WHERE id != ?
		  AND EXISTS (
			SELECT 1 FROM json_each(treks.tags)
			WHERE json_each.value IN (
				SELECT value FROM json_each((SELECT tags FROM treks WHERE id = ?))
			)
		  )
		ORDER BY created_at DESC LIMIT ?`,
		trekID, trekID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: related treks")
	}
	return s.collectTreks(rows)
}

func (s *SQLiteStore) UpsertTrek(ctx context.Context, t *model.Trek) error {
	tagsJSON, err := json.Marshal(t.Tags)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal tags")
	}
	activitiesJSON, err := json.Marshal(t.Activities)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal activities")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO treks (name, slug, state, difficulty, category, tags, activities, description, image_url, is_pinned, pin_priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			difficulty = excluded.difficulty,
			category = excluded.category,
			tags = excluded.tags,
			activities = excluded.activities,
			description = excluded.description,
			image_url = excluded.image_url,
			is_pinned = excluded.is_pinned,
			pin_priority = excluded.pin_priority
		RETURNING id`,
		t.Name, t.Slug, t.State, t.Difficulty, t.Category,
		string(tagsJSON), string(activitiesJSON), t.Description, t.ImageURL,
		t.IsPinned, t.PinPriority, t.CreatedAt,
	).Scan(&t.ID)
	return eris.Wrap(err, "sqlite: upsert trek")
}

func (s *SQLiteStore) CreateContact(ctx context.Context, c *model.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, mobile, user_type, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Mobile, c.UserType, c.Message, c.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert contact")
}

func (s *SQLiteStore) ListContacts(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, mobile, user_type, message, created_at FROM contacts ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close() //nolint:errcheck

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &c.UserType, &c.Message, &c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "sqlite: iterate contacts")
}

func (s *SQLiteStore) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, question, answer, ord FROM faqs ORDER BY category, ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list faqs")
	}
	defer rows.Close() //nolint:errcheck

	var faqs []model.FAQ
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Category, &f.Question, &f.Answer, &f.Order); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan faq")
		}
		faqs = append(faqs, f)
	}
	return faqs, eris.Wrap(rows.Err(), "sqlite: iterate faqs")
}

const blogColumns = `id, title, slug, excerpt, author, image_url, is_featured, created_at`

func (s *SQLiteStore) collectBlogs(rows *sql.Rows) ([]model.Blog, error) {
	defer rows.Close() //nolint:errcheck
	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Author, &b.ImageURL, &b.IsFeatured, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan blog")
		}
		blogs = append(blogs, b)
	}
	return blogs, eris.Wrap(rows.Err(), "sqlite: iterate blogs")
}

func (s *SQLiteStore) ListBlogs(ctx context.Context, limit, offset int) ([]model.Blog, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: count blogs")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, eris.Wrap(err, "sqlite: list blogs")
	}
	blogs, err := s.collectBlogs(rows)
	return blogs, total, err
}

func (s *SQLiteStore) ListFeaturedBlogs(ctx context.Context, limit int) ([]model.Blog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE is_featured = 1 ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list featured blogs")
	}
	return s.collectBlogs(rows)
}

func (s *SQLiteStore) ListTestimonials(ctx context.Context, featuredOnly bool, limit int) ([]model.Testimonial, error) {
	query := `SELECT id, author, quote, trek_name, is_featured FROM testimonials`
	if featuredOnly {
		query += ` WHERE is_featured = 1`
	}
	query += ` ORDER BY id LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list testimonials")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Testimonial
	for rows.Next() {
		var tm model.Testimonial
		if err := rows.Scan(&tm.ID, &tm.Author, &tm.Quote, &tm.TrekName, &tm.IsFeatured); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan testimonial")
		}
		out = append(out, tm)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate testimonials")
}

func (s *SQLiteStore) ListBanners(ctx context.Context) ([]model.HomepageBanner, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, image_url, target_url, is_active, ord FROM banners WHERE is_active = 1 ORDER BY ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list banners")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.HomepageBanner
	for rows.Next() {
		var b model.HomepageBanner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.TargetURL, &b.IsActive, &b.Order); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan banner")
		}
		out = append(out, b)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate banners")
}

func (s *SQLiteStore) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, photo_url, ord FROM team_members ORDER BY ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list team members")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.PhotoURL, &m.Order); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan team member")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate team members")
}
