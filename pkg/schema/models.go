// Package schema provides table models for dictionaries stored in SQL
// databases. The same models serve SQLite (DDL from `ddl` tags) and
// PostgreSQL (GORM AutoMigrate).
package schema

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Alias is one surface form of a canonical title.
type Alias struct {
	// TitleID is UUID v5 generated from the title.
	TitleID string `db:"title_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;primaryKey"`

	// Title is the canonical page title.
	Title string `db:"title" ddl:"TEXT NOT NULL" gorm:"type:text;not null;index"`

	// Alias is a surface form referring to Title.
	Alias string `db:"alias" ddl:"TEXT NOT NULL" gorm:"type:text;primaryKey"`
}

// Redirect marks a page ID as a redirect page.
type Redirect struct {
	// PageID is the ID of the redirect page.
	PageID int `db:"page_id" ddl:"INTEGER NOT NULL" gorm:"primaryKey;autoIncrement:false"`

	// Title is the title of the redirect page itself.
	Title string `db:"title" ddl:"TEXT NOT NULL" gorm:"type:text;primaryKey"`
}

// Aimai marks a page ID as a disambiguation page.
type Aimai struct {
	// PageID is the ID of the disambiguation page.
	PageID int `db:"page_id" ddl:"INTEGER NOT NULL" gorm:"primaryKey;autoIncrement:false"`

	// Member is a title listed by the page. An empty member marks a page
	// that lists nothing.
	Member string `db:"member" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:text;primaryKey"`
}

// Metadata keeps information about the build that produced the stored
// dictionary.
type Metadata struct {
	Key   string `db:"key" ddl:"TEXT PRIMARY KEY" gorm:"type:text;primaryKey"`
	Value string `db:"value" ddl:"TEXT" gorm:"type:text"`
}
