//go:build integration

package database

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/repositories"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/clients/postgres"
	"github.com/petmily/vetpricediscovery/backend/pkg/config"
)

// PriceRecordAdapterIntegrationTestSuite exercises the adapter against a
// real Postgres instance. Run with: go test -tags=integration ./...
type PriceRecordAdapterIntegrationTestSuite struct {
	suite.Suite
	client  *postgres.Client
	adapter repositories.PriceRecordRepository
	db      *sql.DB
}

// SetupSuite runs once before the suite
func (suite *PriceRecordAdapterIntegrationTestSuite) SetupSuite() {
	cfg := &config.DatabaseConfig{
		Host:     getTestEnv("TEST_DB_HOST", "localhost"),
		Port:     5432,
		User:     getTestEnv("TEST_DB_USER", "postgres"),
		Password: getTestEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getTestEnv("TEST_DB_NAME", "vet_price_discovery_test"),
		SSLMode:  "disable",
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(suite.T(), err, "Failed to create postgres client")

	suite.client = client
	suite.db = client.DB()
	suite.adapter = NewPriceRecordAdapter(client)

	suite.createSchema()
}

// TearDownSuite runs once after the suite
func (suite *PriceRecordAdapterIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.client.Close()
	}
}

// SetupTest runs before each test
func (suite *PriceRecordAdapterIntegrationTestSuite) SetupTest() {
	_, err := suite.db.Exec("TRUNCATE price_records")
	require.NoError(suite.T(), err)
}

func (suite *PriceRecordAdapterIntegrationTestSuite) createSchema() {
	_, err := suite.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_records (
			id TEXT PRIMARY KEY,
			species TEXT NOT NULL,
			procedure_label TEXT NOT NULL,
			category_label TEXT,
			region TEXT,
			price DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	require.NoError(suite.T(), err)
}

func (suite *PriceRecordAdapterIntegrationTestSuite) insertRecord(id, species, procedureLabel, categoryLabel, region string, price float64) {
	_, err := suite.db.Exec(
		"INSERT INTO price_records (id, species, procedure_label, category_label, region, price, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		id, species, procedureLabel, categoryLabel, region, price, time.Now(),
	)
	require.NoError(suite.T(), err)
}

func (suite *PriceRecordAdapterIntegrationTestSuite) TestFetchByLabel_MatchesEitherLabel() {
	suite.insertRecord("r-1", "dog", "스케일링", "dental", "서울", 300000)
	suite.insertRecord("r-2", "dog", "치석제거", "스케일링 패키지", "부산", 250000)
	suite.insertRecord("r-3", "dog", "혈액검사", "blood test", "서울", 90000)

	records, err := suite.adapter.FetchByLabel(context.Background(), repositories.PriceRecordFilter{
		Species:   entities.SpeciesDog,
		LabelText: "스케일링",
		Limit:     10,
	})
	require.NoError(suite.T(), err)
	suite.Len(records, 2)
}

func (suite *PriceRecordAdapterIntegrationTestSuite) TestFetchByLabel_FiltersSpecies() {
	suite.insertRecord("r-1", "dog", "스케일링", "dental", "서울", 300000)
	suite.insertRecord("r-2", "cat", "스케일링", "dental", "서울", 320000)

	records, err := suite.adapter.FetchByLabel(context.Background(), repositories.PriceRecordFilter{
		Species:   entities.SpeciesCat,
		LabelText: "스케일링",
		Limit:     10,
	})
	require.NoError(suite.T(), err)
	suite.Len(records, 1)
	suite.Equal(entities.SpeciesCat, records[0].Species)
}

func (suite *PriceRecordAdapterIntegrationTestSuite) TestFetchByLabel_DropsUnusablePrices() {
	suite.insertRecord("r-1", "dog", "스케일링", "dental", "서울", 300000)
	suite.insertRecord("r-2", "dog", "스케일링", "dental", "서울", 0)
	suite.insertRecord("r-3", "dog", "스케일링", "dental", "서울", -5000)

	records, err := suite.adapter.FetchByLabel(context.Background(), repositories.PriceRecordFilter{
		Species:   entities.SpeciesDog,
		LabelText: "스케일링",
		Limit:     10,
	})
	require.NoError(suite.T(), err)
	suite.Len(records, 1)
}

func TestPriceRecordAdapterIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PriceRecordAdapterIntegrationTestSuite))
}

func getTestEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
