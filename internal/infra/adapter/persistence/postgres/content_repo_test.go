package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"content-hub/internal/domain/entity"
	pg "content-hub/internal/infra/adapter/persistence/postgres"
	"content-hub/internal/repository"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var contentCols = []string{
	"id", "title", "type", "credits", "creator_id",
	"category_id", "topic_id", "created_at", "updated_at",
}

func contentRows(cs ...*entity.Content) *sqlmock.Rows {
	rows := sqlmock.NewRows(contentCols)
	for _, c := range cs {
		var creator any = c.CreatorID
		if c.CreatorID == "" {
			creator = nil
		}
		rows.AddRow(c.ID, c.Title, c.Type, c.Credits, creator,
			c.CategoryID, c.TopicID, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func sampleContent(id string, at time.Time) *entity.Content {
	return &entity.Content{
		ID: id, Title: "Intro", Type: "VIDEO", Credits: "alice",
		CreatorID: "u1", CategoryID: "cat1", TopicID: "top1",
		CreatedAt: at, UpdatedAt: at,
	}
}

/* ─────────────────────────── 1. Create ─────────────────────────── */

func TestContentRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	c := sampleContent("c1", now)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contents")).
		WithArgs(c.ID, c.Title, c.Type, c.Credits, sqlmock.AnyArg(),
			c.CategoryID, c.TopicID, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewContentRepo(db)
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_Create_ForeignKeyViolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contents")).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	repo := pg.NewContentRepo(db)
	err := repo.Create(context.Background(), sampleContent("c1", time.Now()))
	if !errors.Is(err, entity.ErrCreationFailed) {
		t.Fatalf("err=%v, want ErrCreationFailed", err)
	}
}

func TestContentRepo_Create_DuplicateID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contents")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contents_pkey"})

	repo := pg.NewContentRepo(db)
	err := repo.Create(context.Background(), sampleContent("c1", time.Now()))
	if !errors.Is(err, entity.ErrCreationFailed) {
		t.Fatalf("err=%v, want ErrCreationFailed", err)
	}
}

func TestContentRepo_Create_Unavailable(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contents")).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	repo := pg.NewContentRepo(db)
	err := repo.Create(context.Background(), sampleContent("c1", time.Now()))
	if !errors.Is(err, entity.ErrStorageUnavailable) {
		t.Fatalf("err=%v, want ErrStorageUnavailable", err)
	}
}

/* ─────────────────────────── 2. Get ─────────────────────────── */

func TestContentRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := sampleContent("c1", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("c1").
		WillReturnRows(contentRows(want))

	repo := pg.NewContentRepo(db)
	got, err := repo.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_Get_NullCreator(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	c := sampleContent("c1", time.Now())
	c.CreatorID = ""
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).WillReturnRows(contentRows(c))

	got, err := pg.NewContentRepo(db).Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.CreatorID != "" {
		t.Errorf("CreatorID = %q, want empty", got.CreatorID)
	}
}

func TestContentRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := pg.NewContentRepo(db)
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

/* ─────────────────────────── 3. List / Search ─────────────────────────── */

func TestContentRepo_List_UsesSearchPath(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM contents ORDER BY created_at ASC, id ASC")).
		WillReturnRows(contentRows(sampleContent("c1", now), sampleContent("c2", now)))

	repo := pg.NewContentRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_Search_WithFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	topic := "top1"
	title := "abc"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE topic_id = $1 AND title ILIKE $2 AND created_at >= $3 AND created_at <= $4 ORDER BY created_at DESC")).
		WithArgs("top1", "%abc%", from, to).
		WillReturnRows(contentRows(sampleContent("c1", from)))

	repo := pg.NewContentRepo(db)
	got, err := repo.Search(context.Background(), repository.ContentSearchFilters{
		TopicID: &topic, Title: &title, From: &from, To: &to, Order: repository.SortDesc,
	})
	if err != nil {
		t.Fatalf("Search err=%v", err)
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("Search got=%v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_Search_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM contents").WillReturnError(errors.New("boom"))

	_, err := pg.NewContentRepo(db).Search(context.Background(), repository.ContentSearchFilters{})
	if err == nil {
		t.Fatal("expected error")
	}
}

/* ─────────────────────────── 4. CountByCategory ─────────────────────────── */

func TestContentRepo_CountByCategory(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY category_id")).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "count"}).
			AddRow("cat1", int64(3)).
			AddRow("cat2", int64(1)))

	got, err := pg.NewContentRepo(db).CountByCategory(context.Background(), nil)
	if err != nil {
		t.Fatalf("CountByCategory err=%v", err)
	}
	want := []entity.CategoryCount{{CategoryID: "cat1", Count: 3}, {CategoryID: "cat2", Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContentRepo_CountByCategory_Topic(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	topic := "top1"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE topic_id = $1 GROUP BY category_id")).
		WithArgs("top1").
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "count"}))

	got, err := pg.NewContentRepo(db).CountByCategory(context.Background(), &topic)
	if err != nil {
		t.Fatalf("CountByCategory err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got=%v, want empty", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. Update ─────────────────────────── */

func TestContentRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	created := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	updated := sampleContent("c1", created)
	updated.Title = "Renamed"
	updated.UpdatedAt = created.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE contents SET title = $1")).
		WithArgs("Renamed", "c1").
		WillReturnRows(contentRows(updated))

	title := "Renamed"
	got, err := pg.NewContentRepo(db).Update(context.Background(), "c1", repository.ContentPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestContentRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE contents")).
		WillReturnRows(sqlmock.NewRows(contentCols))

	_, err := pg.NewContentRepo(db).Update(context.Background(), "missing", repository.ContentPatch{})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestContentRepo_Update_ForeignKey(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE contents")).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	cat := "ghost"
	_, err := pg.NewContentRepo(db).Update(context.Background(), "c1", repository.ContentPatch{CategoryID: &cat})
	if !errors.Is(err, entity.ErrUpdateFailed) {
		t.Fatalf("err=%v, want ErrUpdateFailed", err)
	}
}

/* ─────────────────────────── 6. Delete ─────────────────────────── */

func TestContentRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contents")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := pg.NewContentRepo(db).Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestContentRepo_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contents")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewContentRepo(db).Delete(context.Background(), "missing")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestContentRepo_Delete_Failed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contents")).
		WillReturnError(errors.New("disk full"))

	err := pg.NewContentRepo(db).Delete(context.Background(), "c1")
	if !errors.Is(err, entity.ErrDeletionFailed) {
		t.Fatalf("err=%v, want ErrDeletionFailed", err)
	}
}
