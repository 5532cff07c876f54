package domain

import "errors"

// Классы ошибок ядра (маппятся на HTTP коды в транспорте)
var (
	ErrBadParams        = errors.New("bad_params")           // 400
	ErrConflict         = errors.New("conflict")             // 409: имя файла уже занято
	ErrNotFound         = errors.New("not_found")            // 404: песни с таким id нет
	ErrMetadataParse    = errors.New("metadata_parse")       // 422: теги не читаются
	ErrDatabase         = errors.New("database_failure")     // 500: каталог отверг запрос
	ErrObjectStore      = errors.New("object_store_failure") // 502: S3 вернул ошибку
	ErrTransaction      = errors.New("transaction_failure")  // 500: commit/компенсация не прошли, нужен sync
	ErrMethodNotAllowed = errors.New("method_not_allowed")   // 405
	ErrUnexpected       = errors.New("unexpected")           // 500
)
