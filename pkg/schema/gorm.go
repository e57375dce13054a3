package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Alias{},
		&Redirect{},
		&Aimai{},
		&Metadata{},
	}
}

// Generators returns all schema models as DDL generators.
func Generators() []DDLGenerator {
	return []DDLGenerator{
		Alias{},
		Redirect{},
		Aimai{},
		Metadata{},
	}
}

// TableNames returns names of all tables in the order of AllModels.
func TableNames() []string {
	gens := Generators()
	res := make([]string, len(gens))
	for i, v := range gens {
		res[i] = v.TableName()
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
