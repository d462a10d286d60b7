package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"plantnet/pkg/utils"

	"github.com/pashagolub/pgxmock/v3"
)

func TestMigrateRunsEveryStatement(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	for _, stmt := range schema {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	if err := Migrate(context.Background(), mock); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrateStopsOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	boom := errors.New("permission denied")
	mock.ExpectExec(regexp.QuoteMeta(schema[0])).WillReturnError(boom)

	if err := Migrate(context.Background(), mock); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestConnString(t *testing.T) {
	got := ConnString(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "pw",
		Name:     "plantnet",
		SSLMode:  "disable",
	})
	want := "host=db port=5432 user=app password=pw dbname=plantnet sslmode=disable"
	if got != want {
		t.Errorf("ConnString = %q, want %q", got, want)
	}
}
