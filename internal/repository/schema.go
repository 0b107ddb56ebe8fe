package repository

import "fmt"

// Schema returns idempotent DDL for the candle and event tables of database.
func Schema(database, candleTable, eventTable string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    bucket DateTime64(3, 'UTC'),
    symbol LowCardinality(String),
    tf LowCardinality(String),
    open Float64,
    high Float64,
    low Float64,
    close Float64,
    volume Float64
) ENGINE = ReplacingMergeTree
ORDER BY (symbol, tf, bucket)`, database, candleTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    as_of DateTime64(3, 'UTC'),
    symbol_a LowCardinality(String),
    symbol_b LowCardinality(String),
    tf LowCardinality(String),
    window_size UInt32,
    horizon UInt32,
    regression_threshold Float64,
    distance_threshold Float64,
    kind LowCardinality(String),
    trigger_index UInt32,
    point_index UInt32,
    ts DateTime64(3, 'UTC'),
    entry_distance Float64,
    exit_distance Float64,
    resolution_offset UInt16
) ENGINE = ReplacingMergeTree(as_of)
ORDER BY (symbol_a, symbol_b, tf, window_size, horizon, regression_threshold, distance_threshold, ts)`, database, eventTable),
	}
}

// QualifiedTable joins database and table.
func QualifiedTable(database, table string) string {
	return database + "." + table
}
