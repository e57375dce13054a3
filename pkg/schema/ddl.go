package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags. Columns
// in pk form a composite primary key.
func generateDDL(model any, tableName string, pk ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	if len(pk) > 0 {
		columns = append(columns,
			fmt.Sprintf("    PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Alias DDL methods
func (a Alias) TableDDL() string {
	return generateDDL(a, a.TableName(), "title_id", "alias")
}

func (a Alias) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_aliases_title ON aliases(title);",
	}
}

func (a Alias) TableName() string {
	return "aliases"
}

// Redirect DDL methods
func (r Redirect) TableDDL() string {
	return generateDDL(r, r.TableName(), "page_id", "title")
}

func (r Redirect) IndexDDL() []string {
	return []string{}
}

func (r Redirect) TableName() string {
	return "redirects"
}

// Aimai DDL methods
func (a Aimai) TableDDL() string {
	return generateDDL(a, a.TableName(), "page_id", "member")
}

func (a Aimai) IndexDDL() []string {
	return []string{}
}

func (a Aimai) TableName() string {
	return "aimai"
}

// Metadata DDL methods
func (m Metadata) TableDDL() string {
	return generateDDL(m, m.TableName())
}

func (m Metadata) IndexDDL() []string {
	return []string{}
}

func (m Metadata) TableName() string {
	return "metadata"
}
