package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                   { return nil }
func (nopStmt) NumInput() int                                  { return -1 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return []string{} }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerTestDriverOnce sync.Once

func ensureTestDriverRegistered() {
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
}

func withTestDriver(t *testing.T) func() {
	t.Helper()
	ensureTestDriverRegistered()
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbtest", dsn)
	}
	return func() {
		openDB = prev
	}
}

func resetSingleton() {
	singletonMu.Lock()
	singletonDB = nil
	singletonInFly = false
	singletonMu.Unlock()
}

func TestOptionsFor(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		env     map[string]string
		want    Options
	}{
		{
			name:    "lambda preset",
			profile: ProfileLambda,
			want:    Preset(ProfileLambda),
		},
		{
			name:    "unknown profile falls back to server",
			profile: Profile("batch"),
			want:    Preset(ProfileServer),
		},
		{
			name:    "env overrides server",
			profile: ProfileServer,
			env: map[string]string{
				"DB_MAX_OPEN_CONNS":     "7",
				"DB_MAX_IDLE_CONNS":     "3",
				"DB_CONN_MAX_LIFETIME":  "20m",
				"DB_CONN_MAX_IDLE_TIME": "45s",
				"DB_PING_TIMEOUT":       "1s",
			},
			want: Options{MaxOpenConns: 7, MaxIdleConns: 3, ConnMaxLifetime: 20 * time.Minute, ConnMaxIdleTime: 45 * time.Second, PingTimeout: time.Second},
		},
		{
			name:    "invalid values keep the preset",
			profile: ProfileSQLite,
			env: map[string]string{
				"DB_MAX_OPEN_CONNS": "many",
				"DB_PING_TIMEOUT":   "-2s",
			},
			want: Preset(ProfileSQLite),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME", "DB_PING_TIMEOUT"} {
				t.Setenv(key, tt.env[key])
			}
			if got := OptionsFor(tt.profile); got != tt.want {
				t.Fatalf("OptionsFor(%q) = %+v, want %+v", tt.profile, got, tt.want)
			}
		})
	}
}

func TestConnectAppliesPoolLimits(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	opts := Preset(ProfileServer)
	opts.MaxOpenConns = 7
	db, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()
	if got := db.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}

	if _, err := Connect(context.Background(), " ", opts); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestGetSingleton(t *testing.T) {
	var calls int32
	prev := openDB
	ensureTestDriverRegistered()
	openDB = func(name, dsn string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, driver.ErrBadConn
		}
		return sql.Open("dbtest", dsn)
	}
	defer func() { openDB = prev }()
	resetSingleton()
	defer resetSingleton()

	if _, err := GetSingleton(context.Background(), "ignored", Preset(ProfileLambda)); err == nil {
		t.Fatalf("expected first call to fail")
	}
	first, err := GetSingleton(context.Background(), "ignored", Preset(ProfileLambda))
	if err != nil || first == nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	second, err := GetSingleton(context.Background(), "ignored", Preset(ProfileLambda))
	if err != nil {
		t.Fatalf("GetSingleton: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same pool on later calls")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 opens, got %d", got)
	}
}
