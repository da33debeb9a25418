package database

import (
	"lms_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_MigratesSchema(t *testing.T) {
	db, err := OpenSQLite("file:migrate_test?mode=memory&cache=shared")
	require.NoError(t, err)

	for _, table := range []string{"users", "categories", "courses", "modules", "sub_modules", "lessons", "quizzes", "enrollments", "lesson_completions", "quiz_results", "enrollment_analytics"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestMysqlDSN(t *testing.T) {
	dsn := mysqlDSN(&config.DatabaseConfig{
		User: "lms", Password: "pw", Host: "db", Port: 3306, DBName: "lms", Charset: "utf8mb4", ParseTime: true,
	})
	assert.Equal(t, "lms:pw@tcp(db:3306)/lms?charset=utf8mb4&parseTime=true&loc=Local", dsn)
}

func TestInitDB_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "oracle"
	_, err := InitDB(cfg)
	assert.Error(t, err)
}
