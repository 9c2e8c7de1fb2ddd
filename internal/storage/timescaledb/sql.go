package timescaledb

const createTableSQL = `
CREATE TABLE IF NOT EXISTS weather_data (
    id BIGSERIAL PRIMARY KEY,
    timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    temperature NUMERIC(5,2) NOT NULL,
    humidity NUMERIC(5,2) NOT NULL,
    pressure NUMERIC(6,2) NOT NULL,
    wind_speed NUMERIC(5,2) NOT NULL,
    wind_direction VARCHAR(3) NOT NULL,
    weather_condition TEXT NOT NULL
);`

const createTimestampIndexSQL = `CREATE INDEX IF NOT EXISTS idx_weather_data_timestamp ON weather_data (timestamp DESC);`

const createExtensionSQL = `CREATE EXTENSION IF NOT EXISTS timescaledb;`

const createHypertableSQL = `SELECT create_hypertable('weather_data', 'timestamp', if_not_exists => true, migrate_data => true);`
