package store

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id_usuario         TEXT PRIMARY KEY,
		nombre             TEXT,
		preferencias_json  TEXT,
		fecha_registro     INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dominio_usuario (
		id_usuario     TEXT NOT NULL,
		concepto_id    TEXT NOT NULL,
		prob_maestria  REAL DEFAULT 0.0,
		intentos       INTEGER DEFAULT 0,
		PRIMARY KEY (id_usuario, concepto_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sesiones (
		sesion_id     TEXT PRIMARY KEY,
		id_usuario    TEXT NOT NULL,
		objetivo      TEXT NOT NULL,
		mundo         TEXT,
		grado         TEXT,
		tema          TEXT,
		estado        TEXT DEFAULT 'activa',
		fecha_inicio  INTEGER NOT NULL,
		fecha_fin     INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS historial_respuestas (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		sesion_id       TEXT,
		id_usuario      TEXT NOT NULL,
		concepto_id     TEXT NOT NULL,
		item_id         TEXT NOT NULL,
		correcta        INTEGER NOT NULL CHECK(correcta IN (0,1)),
		opcion_elegida  TEXT,
		dificultad_item TEXT,
		pistas_usadas   INTEGER DEFAULT 0,
		timestamp       INTEGER NOT NULL,
		tiempo_ms       INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hist_user_concept
		ON historial_respuestas(id_usuario, concepto_id)`,
	`CREATE TABLE IF NOT EXISTS eventos_llm (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		proveedor      TEXT NOT NULL,
		modelo         TEXT,
		proposito      TEXT,
		tokens_entrada INTEGER DEFAULT 0,
		tokens_salida  INTEGER DEFAULT 0,
		latencia_ms    INTEGER DEFAULT 0,
		exito          INTEGER NOT NULL CHECK(exito IN (0,1)),
		error          TEXT,
		timestamp      INTEGER NOT NULL
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
