package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS treks (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	slug         TEXT NOT NULL UNIQUE,
	state        TEXT NOT NULL DEFAULT '',
	difficulty   TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	tags         JSONB NOT NULL DEFAULT '[]',
	activities   JSONB NOT NULL DEFAULT '[]',
	description  TEXT NOT NULL DEFAULT '',
	image_url    TEXT NOT NULL DEFAULT '',
	is_pinned    BOOLEAN NOT NULL DEFAULT FALSE,
	pin_priority INTEGER NOT NULL DEFAULT 100,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	mobile     TEXT NOT NULL,
	user_type  TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS blogs (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	excerpt     TEXT NOT NULL DEFAULT '',
	author      TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	is_featured BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS faqs (
	id       BIGSERIAL PRIMARY KEY,
	category TEXT NOT NULL,
	question TEXT NOT NULL,
	answer   TEXT NOT NULL,
	ord      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS testimonials (
	id          BIGSERIAL PRIMARY KEY,
	author      TEXT NOT NULL,
	quote       TEXT NOT NULL,
	trek_name   TEXT NOT NULL DEFAULT '',
	is_featured BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS banners (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	target_url TEXT NOT NULL DEFAULT '',
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	ord        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS team_members (
	id        BIGSERIAL PRIMARY KEY,
	name      TEXT NOT NULL,
	role      TEXT NOT NULL,
	photo_url TEXT NOT NULL DEFAULT '',
	ord       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_treks_name ON treks (lower(name) text_pattern_ops);
CREATE INDEX IF NOT EXISTS idx_treks_category ON treks (category);
CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs (created_at);
CREATE INDEX IF NOT EXISTS idx_faqs_category_ord ON faqs (category, ord);
CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) TreksByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.TrekCandidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, state FROM treks WHERE lower(name) LIKE $1 ESCAPE '\' ORDER BY id LIMIT $2`,
		escapeLike(prefix)+"%", limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query treks by prefix")
	}
	return collectPgCandidates(rows)
}

func (s *PostgresStore) TreksBySearchTerm(ctx context.Context, term string, limit int) ([]model.TrekCandidate, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, state FROM treks
		WHERE lower(name) LIKE $1 ESCAPE '\'
		   OR lower(state) LIKE $1 ESCAPE '\'
		   OR EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(tags) AS tag
			WHERE lower(tag) LIKE $1 ESCAPE '\'
		   )
		ORDER BY id LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query treks by term")
	}
	return collectPgCandidates(rows)
}

func collectPgCandidates(rows pgx.Rows) ([]model.TrekCandidate, error) {
	defer rows.Close()
	var out []model.TrekCandidate
	for rows.Next() {
		var c model.TrekCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.State); err != nil {
			return nil, eris.Wrap(err, "postgres: scan candidate")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate candidates")
}

const pgTrekColumns = `id, name, slug, state, difficulty, category, tags, activities, description, image_url, is_pinned, pin_priority, created_at`

func scanPgTrek(row pgx.Row) (*model.Trek, error) {
	var t model.Trek
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.State, &t.Difficulty, &t.Category,
		&t.Tags, &t.Activities, &t.Description, &t.ImageURL,
		&t.IsPinned, &t.PinPriority, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectPgTreks(rows pgx.Rows) ([]model.Trek, error) {
	defer rows.Close()
	var treks []model.Trek
	for rows.Next() {
		t, err := scanPgTrek(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan trek")
		}
		treks = append(treks, *t)
	}
	return treks, eris.Wrap(rows.Err(), "postgres: iterate treks")
}

func (s *PostgresStore) GetTrek(ctx context.Context, id int64) (*model.Trek, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgTrekColumns+` FROM treks WHERE id = $1`, id,
	)
	t, err := scanPgTrek(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get trek")
	}
	return t, nil
}

func (s *PostgresStore) ListFeaturedTreks(ctx context.Context) ([]model.Trek, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pgTrekColumns+` FROM treks
		ORDER BY CASE WHEN is_pinned THEN 0 ELSE 1 END, pin_priority, created_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list featured treks")
	}
	return collectPgTreks(rows)
}

func (s *PostgresStore) ListTreks(ctx context.Context, filter TrekFilter) ([]model.Trek, int, error) {
	where := "WHERE 1=1"
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += " AND category = $1"
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		if len(args) == 1 {
			where += " AND difficulty = $1"
		} else {
			where += " AND difficulty = $2"
		}
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM treks `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "postgres: count treks")
	}

	query := `SELECT ` + pgTrekColumns + ` FROM treks ` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, eris.Wrap(err, "postgres: list treks")
	}
	treks, err := collectPgTreks(rows)
	return treks, total, err
}

// placeholder renders a positional pgx parameter like $3.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (s *PostgresStore) ListTreksByTag(ctx context.Context, tag string) ([]model.Trek, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pgTrekColumns+` FROM treks
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(tags) AS t
			WHERE lower(t) = lower($1)
		)
		ORDER BY created_at DESC`,
		tag,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list treks by tag")
	}
	return collectPgTreks(rows)
}

func (s *PostgresStore) TrekCategories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT category FROM treks WHERE category != '' ORDER BY category`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: trek categories")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "postgres: scan category")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate categories")
}

func (s *PostgresStore) RelatedTreks(ctx context.Context, trekID int64, limit int) ([]model.Trek, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pgTrekColumns+` FROM treks
		WHERE id != $1
		  AND tags ?| ARRAY(
			SELECT jsonb_array_elements_text(tags) FROM treks WHERE id = $1
		  )
		ORDER BY created_at DESC LIMIT $2`,
		trekID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: related treks")
	}
	return collectPgTreks(rows)
}

func (s *PostgresStore) UpsertTrek(ctx context.Context, t *model.Trek) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO treks (name, slug, state, difficulty, category, tags, activities, description, image_url, is_pinned, pin_priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			state = EXCLUDED.state,
			difficulty = EXCLUDED.difficulty,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			activities = EXCLUDED.activities,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			is_pinned = EXCLUDED.is_pinned,
			pin_priority = EXCLUDED.pin_priority
		RETURNING id`,
		t.Name, t.Slug, t.State, t.Difficulty, t.Category,
		t.Tags, t.Activities, t.Description, t.ImageURL,
		t.IsPinned, t.PinPriority, t.CreatedAt,
	).Scan(&t.ID)
	return eris.Wrap(err, "postgres: upsert trek")
}

func (s *PostgresStore) CreateContact(ctx context.Context, c *model.Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, name, email, mobile, user_type, message, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Email, c.Mobile, c.UserType, c.Message, c.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert contact")
}

func (s *PostgresStore) ListContacts(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, mobile, user_type, message, created_at FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Mobile, &c.UserType, &c.Message, &c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: iterate contacts")
}

func (s *PostgresStore) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, category, question, answer, ord FROM faqs ORDER BY category, ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list faqs")
	}
	defer rows.Close()

	var faqs []model.FAQ
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Category, &f.Question, &f.Answer, &f.Order); err != nil {
			return nil, eris.Wrap(err, "postgres: scan faq")
		}
		faqs = append(faqs, f)
	}
	return faqs, eris.Wrap(rows.Err(), "postgres: iterate faqs")
}

const pgBlogColumns = `id, title, slug, excerpt, author, image_url, is_featured, created_at`

func collectPgBlogs(rows pgx.Rows) ([]model.Blog, error) {
	defer rows.Close()
	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Author, &b.ImageURL, &b.IsFeatured, &b.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan blog")
		}
		blogs = append(blogs, b)
	}
	return blogs, eris.Wrap(rows.Err(), "postgres: iterate blogs")
}

func (s *PostgresStore) ListBlogs(ctx context.Context, limit, offset int) ([]model.Blog, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, 0, eris.Wrap(err, "postgres: count blogs")
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgBlogColumns+` FROM blogs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, eris.Wrap(err, "postgres: list blogs")
	}
	blogs, err := collectPgBlogs(rows)
	return blogs, total, err
}

func (s *PostgresStore) ListFeaturedBlogs(ctx context.Context, limit int) ([]model.Blog, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgBlogColumns+` FROM blogs WHERE is_featured ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list featured blogs")
	}
	return collectPgBlogs(rows)
}

func (s *PostgresStore) ListTestimonials(ctx context.Context, featuredOnly bool, limit int) ([]model.Testimonial, error) {
	query := `SELECT id, author, quote, trek_name, is_featured FROM testimonials`
	if featuredOnly {
		query += ` WHERE is_featured`
	}
	query += ` ORDER BY id LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list testimonials")
	}
	defer rows.Close()

	var out []model.Testimonial
	for rows.Next() {
		var tm model.Testimonial
		if err := rows.Scan(&tm.ID, &tm.Author, &tm.Quote, &tm.TrekName, &tm.IsFeatured); err != nil {
			return nil, eris.Wrap(err, "postgres: scan testimonial")
		}
		out = append(out, tm)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate testimonials")
}

func (s *PostgresStore) ListBanners(ctx context.Context) ([]model.HomepageBanner, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, image_url, target_url, is_active, ord FROM banners WHERE is_active ORDER BY ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list banners")
	}
	defer rows.Close()

	var out []model.HomepageBanner
	for rows.Next() {
		var b model.HomepageBanner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.TargetURL, &b.IsActive, &b.Order); err != nil {
			return nil, eris.Wrap(err, "postgres: scan banner")
		}
		out = append(out, b)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate banners")
}

func (s *PostgresStore) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, role, photo_url, ord FROM team_members ORDER BY ord`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list team members")
	}
	defer rows.Close()

	var out []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.PhotoURL, &m.Order); err != nil {
			return nil, eris.Wrap(err, "postgres: scan team member")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate team members")
}
