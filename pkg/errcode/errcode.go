package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Dump errors
	DumpOpenError
	DumpLocaleError
	DumpReadError

	// Table errors
	TableReadError

	// Build errors
	BuildCancelledError
	BuildNoPagesError

	// Store errors
	StoreFormatError
	StoreSaveError
	StoreLoadError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBTableCheckError
	DBTruncateError
	SchemaGORMConnectionError
	SchemaMigrateError
	SchemaCollationError

	// Emit errors
	EmitSourceError
	EmitWriteError
)
