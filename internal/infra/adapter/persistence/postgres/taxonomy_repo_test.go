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
)

/* ─────────────────────────── Category ─────────────────────────── */

func TestCategoryRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories")).
		WithArgs("cat1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "cover_image", "created_at", "updated_at"}).
			AddRow("cat1", "Videos", "VIDEO", nil, now, now))

	got, err := pg.NewCategoryRepo(db).Get(context.Background(), "cat1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	want := &entity.Category{ID: "cat1", Name: "Videos", Type: entity.ContentTypeVideo, CreatedAt: now, UpdatedAt: now}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryRepo_Create_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"})

	err := pg.NewCategoryRepo(db).Create(context.Background(), &entity.Category{ID: "c", Name: "Videos", Type: entity.ContentTypeVideo})
	if !errors.Is(err, entity.ErrAlreadyExists) {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}
}

func TestCategoryRepo_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM unnest($1::text[]) AS u(id)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ghost"))

	missing, err := pg.NewCategoryRepo(db).Missing(context.Background(), []string{"cat1", "ghost"})
	if err != nil {
		t.Fatalf("Missing err=%v", err)
	}
	if diff := cmp.Diff([]string{"ghost"}, missing); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryRepo_Missing_EmptyInputSkipsQuery(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	missing, err := pg.NewCategoryRepo(db).Missing(context.Background(), nil)
	if err != nil || len(missing) != 0 {
		t.Fatalf("Missing err=%v missing=%v", err, missing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCategoryRepo_Delete_Referenced(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories")).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := pg.NewCategoryRepo(db).Delete(context.Background(), "cat1")
	if !errors.Is(err, entity.ErrDeletionFailed) {
		t.Fatalf("err=%v, want ErrDeletionFailed", err)
	}
}

func TestCategoryRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewCategoryRepo(db).Update(context.Background(), &entity.Category{ID: "x", Name: "n", Type: entity.ContentTypeText})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

/* ─────────────────────────── Topic ─────────────────────────── */

func TestTopicRepo_SearchByName(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE name ILIKE $1")).
		WithArgs("%tec%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("t1", "Tech", now, now))

	got, err := pg.NewTopicRepo(db).SearchByName(context.Background(), "tec")
	if err != nil {
		t.Fatalf("SearchByName err=%v", err)
	}
	if len(got) != 1 || got[0].Name != "Tech" {
		t.Fatalf("got=%v", got)
	}
}

func TestTopicRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("FROM topics")).WillReturnError(sql.ErrNoRows)

	_, err := pg.NewTopicRepo(db).Get(context.Background(), "ghost")
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestTopicRepo_Update_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE topics")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := pg.NewTopicRepo(db).Update(context.Background(), &entity.Topic{ID: "t1", Name: "Tech"})
	if !errors.Is(err, entity.ErrAlreadyExists) {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}
}

/* ─────────────────────────── User ─────────────────────────── */

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "user_type", "created_at", "updated_at"}).
			AddRow("u1", "alice", "a@example.com", "$2a$10$hash", "CREATOR", now, now))

	got, err := pg.NewUserRepo(db).GetByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail err=%v", err)
	}
	if got.UserType != entity.UserTypeCreator || got.Username != "alice" {
		t.Fatalf("got=%+v", got)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := pg.NewUserRepo(db).Create(context.Background(), &entity.User{ID: "u1", Username: "alice", Email: "a@example.com"})
	if !errors.Is(err, entity.ErrAlreadyExists) {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}
}
