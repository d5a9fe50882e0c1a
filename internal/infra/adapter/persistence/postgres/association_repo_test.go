package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"content-hub/internal/domain/entity"
	pg "content-hub/internal/infra/adapter/persistence/postgres"
	"content-hub/internal/infra/db"
)

/* ─────────────────────────── 1. IsAssociated ─────────────────────────── */

func TestAssociationRepo_IsAssociated(t *testing.T) {
	for _, want := range []bool{true, false} {
		sqlDB, mock, _ := sqlmock.New()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
			WithArgs("cat1", "top1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(want))

		repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
		got, err := repo.IsAssociated(context.Background(), "cat1", "top1")
		if err != nil {
			t.Fatalf("IsAssociated err=%v", err)
		}
		if got != want {
			t.Errorf("IsAssociated = %v, want %v", got, want)
		}
		_ = sqlDB.Close()
	}
}

func TestAssociationRepo_IsAssociated_Error(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnError(&pgconn.PgError{Code: "08006"})

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	_, err := repo.IsAssociated(context.Background(), "cat1", "top1")
	if !errors.Is(err, entity.ErrStorageUnavailable) {
		t.Fatalf("err=%v, want ErrStorageUnavailable", err)
	}
}

/* ─────────────────────────── 2. ReplaceAssociations ─────────────────────────── */

func TestAssociationRepo_Replace(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM topics WHERE id = $1 FOR UPDATE")).
		WithArgs("top1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("top1"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category_topics WHERE topic_id = $1")).
		WithArgs("top1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("SELECT DISTINCT c, $1 FROM unnest($2::text[])")).
		WithArgs("top1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	err := repo.ReplaceAssociations(context.Background(), "top1", []string{"a", "b", "a"})
	if err != nil {
		t.Fatalf("ReplaceAssociations err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAssociationRepo_Replace_EmptyClears(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("top1"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category_topics")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	if err := repo.ReplaceAssociations(context.Background(), "top1", nil); err != nil {
		t.Fatalf("ReplaceAssociations err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAssociationRepo_Replace_TopicMissing(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	err := repo.ReplaceAssociations(context.Background(), "ghost", []string{"a"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAssociationRepo_Replace_UnknownCategoryRollsBack(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("top1"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category_topics")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO category_topics")).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	err := repo.ReplaceAssociations(context.Background(), "top1", []string{"ghost"})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 3. ListCategoryIDs ─────────────────────────── */

func TestAssociationRepo_ListCategoryIDs(t *testing.T) {
	sqlDB, mock, _ := sqlmock.New()
	defer func() { _ = sqlDB.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM category_topics")).
		WithArgs("top1").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow("a").AddRow("b"))

	repo := pg.NewAssociationRepo(sqlDB, db.NewTxManager(sqlDB))
	ids, err := repo.ListCategoryIDs(context.Background(), "top1")
	if err != nil {
		t.Fatalf("ListCategoryIDs err=%v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids=%v", ids)
	}
}
