//go:build !no_postgres

package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
)

// postgres / postgresql / pg 是同一个方言的别名.
func init() {
	factory := func(dsn string) gorm.Dialector { return postgres.Open(dsn) }

	RegisterDialectorFactory(configs.PostgreSQL, factory)
	RegisterDialectorFactory(configs.Postgres, factory)
	RegisterDialectorFactory(configs.Pg, factory)
}
