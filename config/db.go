package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	sqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the datasource of one component ("inventory" or "order").
// Each component owns its own database; env vars are prefixed with the component name.
func NewDB(component string) (*gorm.DB, error) {
	logMode := logger.Warn
	if GetEnv("GORM_LOG", "") == "info" {
		logMode = logger.Info
	}
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)
	cfg := &gorm.Config{Logger: gormLogger}

	switch driver := GetEnv("DB_DRIVER", "mysql"); driver {
	case "mysql":
		return gorm.Open(mysql.Open(MySQLDSN(component)), cfg)
	case "sqlite":
		prefix := strings.ToUpper(component) + "_"
		return gorm.Open(sqlite.Open(GetEnv(prefix+"SQLITE_PATH", component+".db")), cfg)
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", driver)
	}
}

// MySQLDSN builds the DSN for component from <COMPONENT>_MYSQL_DSN or its parts.
func MySQLDSN(component string) string {
	prefix := strings.ToUpper(component) + "_"
	if dsn := os.Getenv(prefix + "MYSQL_DSN"); dsn != "" {
		return dsn
	}
	cfg := sqlmysql.NewConfig()
	cfg.User = GetEnv(prefix+"MYSQL_USER", "root")
	cfg.Passwd = os.Getenv(prefix + "MYSQL_PASS")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(GetEnv(prefix+"MYSQL_HOST", "localhost"), GetEnv(prefix+"MYSQL_PORT", "3306"))
	cfg.DBName = GetEnv(prefix+"MYSQL_DB", component+"_service")
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
