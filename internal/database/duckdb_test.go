package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
)

var errRollback = errors.New("rollback")

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, Config{Threads: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	var n int
	if err := conn.GetContext(ctx, &n, "SELECT 40 + 2"); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "CREATE TABLE t (v INTEGER)"); err != nil {
		t.Fatalf("create: %v", err)
	}

	err = Transaction(ctx, conn, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return errRollback
	})
	if err != errRollback {
		t.Fatalf("Transaction error = %v, want errRollback", err)
	}

	var n int
	if err := conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM t"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows after rollback = %d, want 0", n)
	}
}
