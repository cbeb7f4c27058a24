package schema

const schema = `CREATE TABLE snapshots (
	name TEXT,
	payload TEXT,
	updatedAt TIMESTAMP
)`

const dropSchema = `DROP TABLE snapshots`
