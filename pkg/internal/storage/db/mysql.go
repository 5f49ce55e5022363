//go:build !no_mysql

package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yeisme/sitevault/pkg/configs"
)

// MariaDB 走同一个 mysql 方言.
func init() {
	factory := func(dsn string) gorm.Dialector { return mysql.Open(dsn) }

	RegisterDialectorFactory(configs.MySQL, factory)
	RegisterDialectorFactory(configs.MariaDB, factory)
}
