package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/fatali-fataliyev/budget_ledger/logging"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/mysql/*.sql
var mysqlMigrationsFS embed.FS

const (
	mysqlPingAttempts = 15
	mysqlPingInterval = 3 * time.Second
)

type MySQLConfig struct {
	User    string
	Pass    string
	Host    string
	Port    string
	Name    string
	FullDSN string
}

// --- INIT START --- //

// InitMySQL connects to the server, creates the database when it is missing
// and applies pending migrations.
func InitMySQL(cfg MySQLConfig) (*sql.DB, error) {
	dbCfg, err := mysqlConfigFrom(cfg)
	if err != nil {
		return nil, err
	}
	dbname := dbCfg.DBName

	adminCfg := dbCfg.Clone()
	adminCfg.DBName = ""

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %w", err)
	}
	defer adminDb.Close()

	connected := false
	for i := 0; i < mysqlPingAttempts; i++ {
		if err := adminDb.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/%d)", i+1, mysqlPingAttempts)
		time.Sleep(mysqlPingInterval)
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	var dbnameExistence string
	checkDbnameExistQuery := "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = adminDb.QueryRow(checkDbnameExistQuery, dbname).Scan(&dbnameExistence)
	if err == sql.ErrNoRows {
		logging.Logger.Infof("Database '%s' does not exist, creating...", dbname)
		createDbSql := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
		if _, err := adminDb.Exec(createDbSql); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}

	logging.Logger.Info("Running migrations...")
	if err := RunMySQLMigrations(dbCfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logging.Logger.Info("Connecting to database...")
	db, err := sql.Open("mysql", dbCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}
	logging.Logger.Info("Connected to database successfully")
	return db, nil
}

// mysqlConfigFrom builds the driver config from FULL_DSN when present, and
// from the separate DB_* values otherwise.
func mysqlConfigFrom(cfg MySQLConfig) (*mysql.Config, error) {
	if cfg.FullDSN != "" {
		parsed, err := mysql.ParseDSN(cfg.FullDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse FULL_DSN: %w", err)
		}
		if parsed.DBName == "" {
			parsed.DBName = defaultDBName(cfg.Name)
		}
		parsed.ParseTime = true
		return parsed, nil
	}

	if cfg.User == "" || cfg.Pass == "" || cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("missing required DB environment variables")
	}
	dbCfg := mysql.NewConfig()
	dbCfg.User = cfg.User
	dbCfg.Passwd = cfg.Pass
	dbCfg.Net = "tcp"
	dbCfg.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	dbCfg.DBName = defaultDBName(cfg.Name)
	dbCfg.ParseTime = true
	return dbCfg, nil
}

func defaultDBName(name string) string {
	if name == "" {
		return "budget_ledger"
	}
	return name
}

// RunMySQLMigrations applies the embedded schema to the database named in dbCfg.
func RunMySQLMigrations(dbCfg *mysql.Config) error {
	migrateCfg := dbCfg.Clone()
	// Schema files hold more than one statement each.
	migrateCfg.MultiStatements = true

	// A separate handle keeps the migrator from closing the main connection.
	migrateDB, err := sql.Open("mysql", migrateCfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := migratemysql.WithInstance(migrateDB, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("create mysql driver: %w", err)
	}

	d, err := mysqlMigrationSource()
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", d, "mysql", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	logging.Logger.Info("all migrations applied successfully")
	return nil
}

func mysqlMigrationSource() (source.Driver, error) {
	d, err := iofs.New(mysqlMigrationsFS, "migrations/mysql")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}
	return d, nil
}

// --- INIT END --- //

type MySQLStorage struct {
	sqlStorage
}

func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{sqlStorage{db: db, storageType: "MySQL"}}
}
