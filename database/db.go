package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/google/uuid"

	"github.com/mkroghdk/vejbill/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	err = createRuleGroupTable(db)
	if err != nil {
		return nil, err
	}
	err = createBillingRecordTable(db)
	if err != nil {
		return nil, err
	}
	err = createSyncStateTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func GenerateUUIDWithSuffix(module string) string {
	// Generate a new UUID
	id := uuid.New()

	// Convert the UUID to a string
	uuidStr := id.String()

	// Add the module suffix
	idWithSuffix := fmt.Sprintf("%s_%s", module, uuidStr)

	return idWithSuffix
}

// createBillingRecordTable creates a PostgreSQL table for the BillingRecord struct.
// Dates are written on insert only; updates never touch start_date/end_date.
func createBillingRecordTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS billing_records (
			id SERIAL PRIMARY KEY,
			detail_id BIGINT NOT NULL UNIQUE,
			case_id BIGINT NOT NULL,
			applicant TEXT,
			address TEXT,
			permit_number TEXT,
			cvr_number TEXT,
			category TEXT,
			unit_price NUMERIC(12,2),
			length_m NUMERIC(12,2),
			start_date DATE,
			end_date DATE,
			attention TEXT,
			invoiced BOOLEAN NOT NULL DEFAULT FALSE,
			queued_for_invoicing BOOLEAN NOT NULL DEFAULT FALSE,
			do_not_invoice BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	log.Println(err)
	return err
}

// createRuleGroupTable creates a PostgreSQL table for the configured billing
// category fragments, one row per fragment.
func createRuleGroupTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rule_fragments (
			id SERIAL PRIMARY KEY,
			equipment_type BIGINT NOT NULL,
			fragment TEXT NOT NULL,
			start_date_from DATE NOT NULL,
			end_date_from DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	log.Println(err)
	return err
}

// createSyncStateTable creates a PostgreSQL table recording when the last
// full batch run finished.
func createSyncStateTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_state (
			name TEXT PRIMARY KEY,
			synced_at TIMESTAMP NOT NULL
		)
	`)
	log.Println(err)
	return err
}
