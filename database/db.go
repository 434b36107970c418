package database

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/tcdirect/direct/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once
var connErr error

type Datasource struct {
	Conn *sqlx.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
// A failed first connect is remembered and returned on every later call.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	once.Do(func() {
		con, err := ConnectDB(configuration.DataSource)
		if err != nil {
			connErr = err
			return
		}
		instance = &Datasource{Conn: con}
	})
	if connErr != nil {
		return nil, connErr
	}
	return instance, nil
}

// ConnectDB opens the read replica and pings it, retrying with exponential backoff.
// The service never writes, so no schema is created here.
func ConnectDB(cfg config.DataSourceConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Dns)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	tries := cfg.ConnectTries
	if tries < 1 {
		tries = 1
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 30 * time.Second

	err = backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logrus.Warnf("database connection error ❌: %v", err)
			return err
		}
		return nil
	}, backoff.WithMaxRetries(policy, uint64(tries-1)))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// namedQuery expands :name parameters and IN lists, then rebinds for the connection's driver.
func (d Datasource) namedQuery(query string, params map[string]interface{}) (string, []interface{}, error) {
	q, args, err := sqlx.Named(query, params)
	if err != nil {
		return "", nil, err
	}
	q, args, err = sqlx.In(q, args...)
	if err != nil {
		return "", nil, err
	}
	return d.Conn.Rebind(q), args, nil
}
